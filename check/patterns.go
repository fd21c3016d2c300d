package check

import "regexp"

const (
	// jsSpace is the ECMAScript \s set; Go's \s is ASCII only.
	jsSpace = `\t\n\v\f\r \x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`
	// jsDot matches what an ECMAScript "." matches without the s flag.
	jsDot = `[^\n\r\x{2028}\x{2029}]`
)

var (
	// The top-level label list is fixed; any two-letter label is accepted as a country code.
	urlPattern = regexp.MustCompile(`^(https?|ftp)://([a-zA-Z0-9.-]+(:[a-zA-Z0-9.&%$-]+)*@)*` +
		`((25[0-5]|2[0-4][0-9]|1[0-9]{2}|[1-9][0-9]?)(\.(25[0-5]|2[0-4][0-9]|1[0-9]{2}|[1-9]?[0-9])){3}` +
		`|([a-zA-Z0-9-]+\.)*[a-zA-Z0-9-]+\.(com|edu|gov|int|mil|net|org|biz|arpa|info|name|pro|aero|coop|museum|[a-zA-Z]{2}))` +
		`(:[0-9]+)*(/($|[a-zA-Z0-9.,?'\\+&%$#=~_-]+))*$`)

	emailPattern = regexp.MustCompile(`^(([^<>()\[\]\\.,;:` + jsSpace + `@"]+(\.[^<>()\[\]\\.,;:` + jsSpace + `@"]+)*)|("` + jsDot + `+"))` +
		`@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)

	phonePattern    = regexp.MustCompile(`^1[3-9][0-9]{9}$`)
	externalPattern = regexp.MustCompile(`^(https?:|mailto:|tel:)`)
	iosPattern      = regexp.MustCompile(`\(i[^;]+;( U;)? CPU` + jsDot + `+Mac OS X`)
)
