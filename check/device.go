package check

import "strings"

// IsAndroid reports whether the user agent describes an Android device.
func IsAndroid(ua string) bool {
	return strings.Contains(ua, "Android") || strings.Contains(ua, "Adr")
}

// IsIOS reports whether the user agent describes an iPhone, iPad or iPod.
func IsIOS(ua string) bool { return iosPattern.MatchString(ua) }
