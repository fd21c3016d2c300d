package style

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultScreenW = 1280
	defaultScreenH = 800
)

func mediaRuleActive(prelude string, opts *Options) bool {
	if strings.TrimSpace(prelude) == "" {
		return true
	}
	for _, raw := range strings.Split(prelude, ",") {
		query := strings.ToLower(strings.TrimSpace(raw))
		if query == "" {
			continue
		}
		if mediaQueryMatches(query, opts) {
			return true
		}
	}
	return false
}

// mediaQueryMatches evaluates one comma-separated query. "not" negates the
// whole query.
func mediaQueryMatches(query string, opts *Options) bool {
	negate := false
	if rest, ok := strings.CutPrefix(query, "not "); ok {
		negate = true
		query = strings.TrimSpace(rest)
	} else if rest, ok := strings.CutPrefix(query, "only "); ok {
		query = strings.TrimSpace(rest)
	}

	mediaType, features := "", query
	if parts := strings.Fields(query); len(parts) > 0 && !strings.HasPrefix(parts[0], "(") {
		mediaType = parts[0]
		features = strings.TrimSpace(strings.TrimPrefix(query, mediaType))
		features = strings.TrimSpace(strings.TrimPrefix(features, "and "))
	}

	matched := true
	switch mediaType {
	case "print", "speech", "aural", "braille", "embossed", "tty", "tv":
		matched = false
	}
	if matched {
		matched = evaluateMediaFeatures(features, opts)
	}
	return matched != negate
}

func evaluateMediaFeatures(expr string, opts *Options) bool {
	width, height := 0, 0
	if opts != nil {
		width, height = opts.ScreenW, opts.ScreenH
	}
	if width <= 0 {
		width = defaultScreenW
	}
	if height <= 0 {
		height = defaultScreenH
	}

	for _, clause := range strings.Split(expr, " and ") {
		c := strings.TrimSpace(clause)
		if c == "" {
			continue
		}
		if strings.HasPrefix(c, "(") && strings.HasSuffix(c, ")") {
			c = strings.TrimSpace(c[1 : len(c)-1])
		}
		parts := strings.SplitN(c, ":", 2)
		feature := strings.TrimSpace(parts[0])
		value := ""
		if len(parts) == 2 {
			value = strings.TrimSpace(parts[1])
		}

		switch feature {
		case "orientation":
			orientation := "portrait"
			if width > height {
				orientation = "landscape"
			}
			if value != "" && value != orientation {
				return false
			}
		case "min-width":
			if px, ok := cssLengthToPx(value, width); ok && width < px {
				return false
			}
		case "max-width":
			if px, ok := cssLengthToPx(value, width); ok && width > px {
				return false
			}
		case "min-height":
			if px, ok := cssLengthToPx(value, height); ok && height < px {
				return false
			}
		case "max-height":
			if px, ok := cssLengthToPx(value, height); ok && height > px {
				return false
			}
		}
	}
	return true
}

func cssLengthToPx(val string, base int) (int, bool) {
	v := strings.ToLower(strings.TrimSpace(val))
	unit := ""
	for _, u := range []string{"px", "rem", "em", "vw", "vh", "%"} {
		if strings.HasSuffix(v, u) {
			unit = u
			v = strings.TrimSpace(strings.TrimSuffix(v, u))
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	switch unit {
	case "em", "rem":
		return int(f*16.0 + 0.5), true
	case "%", "vw", "vh":
		return int(float64(base) * f / 100.0), true
	default:
		return int(f + 0.5), true
	}
}

func resolveAbsURL(base, href string) string {
	hu, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == "" {
		if hu.IsAbs() {
			return hu.String()
		}
		return ""
	}
	bu, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return bu.ResolveReference(hu).String()
}
