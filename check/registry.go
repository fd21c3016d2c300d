package check

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// Predicate classifies a single string.
type Predicate func(string) bool

// maxSuggestDistance bounds how far a misspelt name may be from a registered one.
const maxSuggestDistance = 3

var registry = map[string]Predicate{
	"url":        IsURL,
	"lower-case": IsLowerCase,
	"upper-case": IsUpperCase,
	"alphabetic": IsAlphabetic,
	"email":      IsEmail,
	"phone":      IsPhone,
	"external":   IsExternal,
	"android":    IsAndroid,
	"ios":        IsIOS,
}

// Lookup returns the string predicate registered under name.
func Lookup(name string) (Predicate, bool) {
	p, ok := registry[name]
	return p, ok
}

// Names lists the registered predicate names in order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Suggest returns the registered name closest to name, or "" when nothing
// is close enough. Ties go to the alphabetically first name.
func Suggest(name string) string {
	if name == "" {
		return ""
	}
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, candidate := range Names() {
		d := levenshtein.ComputeDistance(name, candidate)
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
