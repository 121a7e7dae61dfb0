package matcher

import "strings"

// Matches reports whether every term occurs as a literal, case-sensitive
// substring of specs. An empty term list matches everything.
func Matches(specs string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(specs, term) {
			return false
		}
	}
	return true
}
