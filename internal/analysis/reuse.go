package analysis

import (
	"regexp"
	"unicode"
)

var (
	shortDigits = regexp.MustCompile(`^[0-9]{1,4}$`)
	yearSuffix  = regexp.MustCompile(`^[^\p{L}\p{N}]?(?:19[0-9]{2}|20[0-9]{2}|[0-9]{2})[^\p{L}\p{N}]?$`)
	anyDigits   = regexp.MustCompile(`^[0-9]+$`)
)

// reuseTemplate reports whether head+tail is a stock construction, where head is
// the dictionary word as typed and tail is everything after it.
type reuseTemplate func(head []rune, tail string) bool

var reuseTemplates = []reuseTemplate{
	// word123
	func(_ []rune, tail string) bool { return shortDigits.MatchString(tail) },
	// word2024, word-99, word2024!
	func(_ []rune, tail string) bool { return yearSuffix.MatchString(tail) },
	// Word123
	func(head []rune, tail string) bool {
		if !anyDigits.MatchString(tail) || !unicode.IsUpper(head[0]) {
			return false
		}
		for _, r := range head[1:] {
			if !unicode.IsLower(r) {
				return false
			}
		}
		return true
	},
}

// reuseRisk flags common passwords and passwords that are a found dictionary word
// followed by a template suffix. No history is consulted.
func reuseRisk(pw, lowered, normalized []rune, words []string, common bool) bool {
	if common {
		return true
	}
	for _, w := range words {
		n := len([]rune(w))
		if n == 0 || n > len(pw) {
			continue
		}
		if string(lowered[:n]) != w && string(normalized[:n]) != w {
			continue
		}
		head, tail := pw[:n], string(pw[n:])
		for _, matches := range reuseTemplates {
			if matches(head, tail) {
				return true
			}
		}
	}
	return false
}
