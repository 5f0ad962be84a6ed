package slug_test

import (
	"testing"

	"apnea/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"CO₂ Tolerance":          "co2-tolerance",
		"Mental + Technique":     "mental-plus-technique",
		"Recovery & Flexibility": "recovery-and-flexibility",
		"  My Profile  ":         "my-profile",
		"???":                    "untitled",
	}
	for in, want := range cases {
		if got := slug.Make(in); got != want {
			t.Fatalf("slug.Make(%q) = %q, want %q", in, got, want)
		}
	}
}
