package check

import "testing"

type label string

func TestIsString(t *testing.T) {
	t.Parallel()
	s := "x"
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"string", "x", true},
		{"empty string", "", true},
		{"named string", label("x"), true},
		{"int", 1, false},
		{"nil", nil, false},
		{"pointer", &s, false},
		{"slice", []string{"x"}, false},
	}
	for _, tc := range tests {
		if got := IsString(tc.in); got != tc.want {
			t.Errorf("%s: IsString(%v) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestIsArray(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"slice", []int{1, 2}, true},
		{"array", [2]int{}, true},
		{"nil slice", []string(nil), true},
		{"any slice", []any{"a", 1}, true},
		{"nil", nil, false},
		{"string", "abc", false},
		{"map", map[string]int{}, false},
	}
	for _, tc := range tests {
		if got := IsArray(tc.in); got != tc.want {
			t.Errorf("%s: IsArray(%v) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}
