package generator

import (
	"strings"
	"unicode"
)

var quoteStripper = strings.NewReplacer(`"`, "", "“", "", "”", "")

// Normalize lower-cases line, removes double quotes (straight and curly),
// drops leading whitespace and any trailing run of periods and whitespace.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(line string) string {
	s := strings.ToLower(line)
	s = quoteStripper.Replace(s)
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	s = strings.TrimRightFunc(s, func(r rune) bool {
		return r == '.' || unicode.IsSpace(r)
	})
	return s
}

// ParseLines splits a model answer into normalized, non-empty captions.
func ParseLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if n := Normalize(line); n != "" {
			out = append(out, n)
		}
	}
	return out
}
