// Package duration formats and parses the MM:SS clock strings shown next to
// phases and hold times.
package duration

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "apnea/internal/platform/errors"
)

// Format renders seconds as MM:SS. Minutes are not wrapped into hours.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Parse accepts "150", "2:30" or "1:02:30".
func Parse(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty duration", apperrors.ErrInvalidInput)
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: duration %q", apperrors.ErrInvalidInput, s)
	}
	total := 0
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: duration %q", apperrors.ErrInvalidInput, s)
		}
		if i > 0 && n >= 60 {
			return 0, fmt.Errorf("%w: duration %q", apperrors.ErrInvalidInput, s)
		}
		total = total*60 + n
	}
	return total, nil
}
