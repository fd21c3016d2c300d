package check

// IsURL reports whether s is an absolute http, https or ftp URL.
func IsURL(s string) bool { return urlPattern.MatchString(s) }

// IsEmail reports whether s is a plain local-part@domain address.
func IsEmail(s string) bool { return emailPattern.MatchString(s) }

// IsPhone reports whether s is an 11-digit mobile number starting 13–19.
func IsPhone(s string) bool { return phonePattern.MatchString(s) }

// IsExternal reports whether path points outside the application: a web,
// mail or telephone link. Only the prefix is inspected.
func IsExternal(path string) bool { return externalPattern.MatchString(path) }

// IsLowerCase reports whether s is non-empty and made of a–z only.
func IsLowerCase(s string) bool { return allBytes(s, isLower) }

// IsUpperCase reports whether s is non-empty and made of A–Z only.
func IsUpperCase(s string) bool { return allBytes(s, isUpper) }

// IsAlphabetic reports whether s is non-empty and made of ASCII letters only.
func IsAlphabetic(s string) bool {
	return allBytes(s, func(c byte) bool { return isLower(c) || isUpper(c) })
}

func allBytes(s string, fn func(byte) bool) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !fn(s[i]) {
			return false
		}
	}
	return true
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
