package duration_test

import (
	"errors"
	"testing"

	"apnea/internal/platform/duration"
	apperrors "apnea/internal/platform/errors"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	cases := map[int]string{0: "00:00", 45: "00:45", 84: "01:24", 240: "04:00", 3725: "62:05", -3: "00:00"}
	for in, want := range cases {
		if got := duration.Format(in); got != want {
			t.Fatalf("Format(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	cases := map[string]int{"150": 150, "2:30": 150, " 04:00 ": 240, "1:02:30": 3750}
	for in, want := range cases {
		got, err := duration.Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("Parse(%q) = %d, want %d", in, got, want)
		}
	}
	for _, bad := range []string{"", "abc", "1:75", "-5", "1:2:3:4"} {
		if _, err := duration.Parse(bad); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("Parse(%q) expected ErrInvalidInput, got %v", bad, err)
		}
	}
}
