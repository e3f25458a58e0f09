// Package analysis scores password strength. Analyze is a pure function of the
// password and the shared reference data; it keeps no state between calls and
// never stores or logs its input.
package analysis

import (
	"os"
	"strconv"

	"github.com/5w1tchy/passcheck-api/internal/reference"
)

// Result is built fresh for every call and not modified afterwards.
type Result struct {
	Length          int       `json:"length"`
	Upper           int       `json:"upper"`
	Lower           int       `json:"lower"`
	Number          int       `json:"number"`
	Symbol          int       `json:"symbol"`
	Complexity      int       `json:"complexity"`
	Entropy         float64   `json:"entropy"`
	EntropyScore    int       `json:"entropy_score"`
	Common          bool      `json:"common"`
	Patterns        []Pattern `json:"patterns"`
	DictionaryWords []string  `json:"dictionary_words"`
	ReuseRisk       bool      `json:"reuse_risk"`
	Strength        int       `json:"strength"`
	Rating          Rating    `json:"rating"`
	CrackTime       CrackTime `json:"crack_time"`
	Recommendations []string  `json:"recommendations"`
}

type Options struct {
	// MinWordLength is the shortest dictionary word reported.
	MinWordLength int
}

func DefaultOptions() Options {
	return Options{MinWordLength: 4}
}

// LoadOptionsFromEnv reads ANALYSIS_MIN_WORD_LENGTH, falling back to defaults.
func LoadOptionsFromEnv() Options {
	opts := DefaultOptions()
	if v := os.Getenv("ANALYSIS_MIN_WORD_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.MinWordLength = n
		}
	}
	return opts
}

// Analyzer is safe for concurrent use; it only reads ref.
type Analyzer struct {
	ref       *reference.Data
	opts      Options
	detectors []detector
}

func New(ref *reference.Data, opts Options) *Analyzer {
	if opts.MinWordLength < 1 {
		opts.MinWordLength = DefaultOptions().MinWordLength
	}
	return &Analyzer{ref: ref, opts: opts, detectors: detectorsFor(ref.Keyboard)}
}

// Analyze runs every stage in order: profile, complexity, entropy, patterns,
// dictionary, reuse, then scoring and recommendations.
func (a *Analyzer) Analyze(password string) Result {
	pw := []rune(password)
	profile := ProfileOf(pw)
	cx := ComplexityOf(profile)
	bits := EntropyBits(profile)

	res := Result{
		Length:          profile.Length,
		Upper:           profile.Upper,
		Lower:           profile.Lower,
		Number:          profile.Digits,
		Symbol:          profile.Symbols,
		Complexity:      cx.Score,
		Entropy:         bits,
		EntropyScore:    EntropyScore(bits),
		Patterns:        []Pattern{},
		DictionaryWords: []string{},
		Strength:        cx.BasicStrength,
		CrackTime:       CrackTimeFor(bits),
	}

	if len(pw) > 0 {
		lowered := lowerRunes(pw)
		normalized := lightNormalize(lowered)

		res.Common = a.ref.Common.Has(string(lowered))
		res.Patterns = detectPatterns(pw, a.detectors)
		res.DictionaryWords = matchWords(lowered, normalized, a.ref.Dictionary, a.opts.MinWordLength)
		res.ReuseRisk = reuseRisk(pw, lowered, normalized, res.DictionaryWords, res.Common)
	}

	res.Rating = RatingFor(res.Strength)
	res.Recommendations = recommend(res)
	return res
}
