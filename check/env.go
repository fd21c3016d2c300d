package check

import (
	"math"
	"reflect"
)

// Element is a rendered surface with scroll metrics, measured in CSS pixels.
type Element interface {
	ScrollTop() float64
	ClientHeight() float64
	ScrollHeight() float64
}

// StyleFunc resolves the computed value of a CSS property for an element.
// It must accept a nil element.
type StyleFunc func(el Element, property string) string

// Env is the read-only environment a page runs in.
type Env struct {
	// UserAgent is the navigator user-agent string.
	UserAgent string
	// Style resolves computed styles. A nil Style resolves every property to "".
	Style StyleFunc
}

// IsAndroidDevice reports whether the environment's user agent is Android.
func (e Env) IsAndroidDevice() bool { return IsAndroid(e.UserAgent) }

// IsIOSDevice reports whether the environment's user agent is iOS.
func (e Env) IsIOSDevice() bool { return IsIOS(e.UserAgent) }

// IsScrolledToBottom reports whether el cannot scroll any further down: its
// vertical overflow is hidden, its content fits, or the scroll offset reaches
// the end of the content.
//
// A nil element reads as all-zero metrics and therefore counts as scrolled to
// the bottom. NaN metrics read as zero; negative and infinite values are used
// as reported.
func (e Env) IsScrolledToBottom(el Element) bool {
	var top, client, height float64
	if isNilElement(el) {
		el = nil
	} else {
		top = metric(el.ScrollTop())
		client = metric(el.ClientHeight())
		height = metric(el.ScrollHeight())
	}
	return e.computed(el, "overflow-y") == "hidden" ||
		height <= client ||
		math.Ceil(top)+client >= height
}

func (e Env) computed(el Element, property string) string {
	if e.Style == nil {
		return ""
	}
	return e.Style(el, property)
}

// metric maps NaN readings to zero.
func metric(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func isNilElement(el Element) bool {
	if el == nil {
		return true
	}
	v := reflect.ValueOf(el)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}
