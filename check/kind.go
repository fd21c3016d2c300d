package check

import "reflect"

// IsString reports whether v holds a string, including named string types.
// Typed Go code never needs this; it exists for values arriving as any,
// such as decoded JSON.
func IsString(v any) bool {
	if v == nil {
		return false
	}
	return reflect.TypeOf(v).Kind() == reflect.String
}

// IsArray reports whether v holds an ordered list: a slice or an array.
// A typed nil slice still counts.
func IsArray(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}
