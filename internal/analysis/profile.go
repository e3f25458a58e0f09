package analysis

import "unicode"

// Profile counts each character class. Upper+Lower+Digits+Symbols == Length.
type Profile struct {
	Length  int
	Upper   int
	Lower   int
	Digits  int
	Symbols int
}

// ProfileOf classifies each rune, first match wins: upper, lower, digit, symbol.
func ProfileOf(runes []rune) Profile {
	p := Profile{Length: len(runes)}
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			p.Upper++
		case unicode.IsLower(r):
			p.Lower++
		case unicode.IsDigit(r):
			p.Digits++
		default:
			p.Symbols++
		}
	}
	return p
}

func (p Profile) classes() [4]bool {
	return [4]bool{p.Upper > 0, p.Lower > 0, p.Digits > 0, p.Symbols > 0}
}
