package slug

import (
	"regexp"
	"strings"
)

var (
	nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)
	symbols     = strings.NewReplacer("₂", "2", "+", " plus ", "&", " and ")
)

// Make lowercases input and joins its alphanumeric runs with dashes.
// Session type names such as "CO₂ Tolerance" or "Mental + Technique" keep
// their meaning: "co2-tolerance", "mental-plus-technique".
func Make(input string) string {
	s := symbols.Replace(strings.ToLower(strings.TrimSpace(input)))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled"
	}
	return s
}
