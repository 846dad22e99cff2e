package quiz

import "strings"

// Allowed1963Punct is the punctuation kept by Filter1963, space included.
const Allowed1963Punct = " .,!?:;'\"()-/\\&@#$%*+=<>[]{}_–—"

// Filter1963 rewrites text the way a 1963 terminal would accept it: A-Z,
// digits and basic punctuation pass, lowercase letters are upper-cased and
// everything else is dropped. It returns the text and the number of dropped
// characters.
func Filter1963(text string) (string, int) {
	var b strings.Builder
	b.Grow(len(text))
	removed := 0
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case strings.ContainsRune(Allowed1963Punct, r):
			b.WriteRune(r)
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		default:
			removed++
		}
	}
	return b.String(), removed
}
