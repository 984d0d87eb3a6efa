package domain

import "testing"

func TestParseCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want Category
		ok   bool
	}{
		{"", CategoryOther, true},
		{"Other", CategoryOther, true},
		{"Technology", CategoryTechnology, true},
		{"Food", CategoryFood, true},
		{"technology", "", false},
		{"Knitting", "", false},
	}
	for _, tc := range tests {
		got, ok := ParseCategory(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseCategory(%q) = %q, %v; want %q, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}
