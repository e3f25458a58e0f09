package analysis

import "math"

// SymbolAlphabet is the 32-character space credited to the symbol class. Any rune
// that is not a letter or digit counts towards it.
const SymbolAlphabet = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

const (
	upperSpace  = 26
	lowerSpace  = 26
	digitSpace  = 10
	symbolSpace = len(SymbolAlphabet)
)

// AlphabetSize sums the cardinality of every class present in p.
func AlphabetSize(p Profile) int {
	size := 0
	spaces := [4]int{upperSpace, lowerSpace, digitSpace, symbolSpace}
	for i, present := range p.classes() {
		if present {
			size += spaces[i]
		}
	}
	return size
}

// EntropyBits estimates length*log2(alphabet) assuming uniform random choice from the
// detected classes. Crack-time thresholds are calibrated against this estimate.
func EntropyBits(p Profile) float64 {
	if p.Length == 0 {
		return 0
	}
	size := max(1, AlphabetSize(p))
	return float64(p.Length) * math.Log2(float64(size))
}
