package analysis

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/5w1tchy/passcheck-api/internal/reference"
)

// leet undoes the usual digit/symbol-for-letter substitutions.
var leet = map[rune]rune{
	'0': 'o', '1': 'i', '3': 'e', '4': 'a', '5': 's', '7': 't',
	'@': 'a', '$': 's', '!': 'i',
}

// lowerRunes lower-cases rune by rune so indexes line up with the input.
func lowerRunes(in []rune) []rune {
	out := make([]rune, len(in))
	for i, r := range in {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// lightNormalize folds accents and leet substitutions one rune at a time, so a
// match at index i in the result is a match at index i in the password.
func lightNormalize(lowered []rune) []rune {
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out := make([]rune, len(lowered))
	for i, r := range lowered {
		if l, ok := leet[r]; ok {
			out[i] = l
			continue
		}
		out[i] = r
		if r < utf8.RuneSelf {
			continue
		}
		folded, _, err := transform.String(fold, string(r))
		if err != nil {
			continue
		}
		if fr := []rune(folded); len(fr) == 1 {
			out[i] = unicode.ToLower(fr[0])
		}
	}
	return out
}

// matchWords lists every dictionary word found in either rune slice, ordered by
// start index with longer words first at the same index, without duplicates.
func matchWords(lowered, normalized []rune, words *reference.WordSet, minLen int) []string {
	found := []string{}
	maxLen := words.MaxLen()
	if minLen < 1 {
		minLen = 1
	}
	seen := make(map[string]struct{})
	for i := range lowered {
		for n := min(maxLen, len(lowered)-i); n >= minLen; n-- {
			plain := string(lowered[i : i+n])
			folded := string(normalized[i : i+n])
			for _, cand := range [2]string{plain, folded} {
				if _, dup := seen[cand]; dup {
					continue
				}
				if words.Has(cand) {
					seen[cand] = struct{}{}
					found = append(found, cand)
				}
			}
		}
	}
	return found
}
