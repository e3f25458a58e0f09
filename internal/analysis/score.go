package analysis

import "math"

// CrackTime is a coarse guess-time bucket derived from entropy alone.
type CrackTime string

const (
	Instant   CrackTime = "INSTANT"
	Seconds   CrackTime = "SECONDS"
	Minutes   CrackTime = "MINUTES"
	Hours     CrackTime = "HOURS"
	Days      CrackTime = "DAYS"
	Years     CrackTime = "YEARS"
	Centuries CrackTime = "CENTURIES"
)

// Upper bounds are inclusive.
var crackTimeBounds = []struct {
	maxBits float64
	bucket  CrackTime
}{
	{28, Instant},
	{35, Seconds},
	{45, Minutes},
	{55, Hours},
	{65, Days},
	{75, Years},
}

func CrackTimeFor(bits float64) CrackTime {
	for _, b := range crackTimeBounds {
		if bits <= b.maxBits {
			return b.bucket
		}
	}
	return Centuries
}

// Rating is the three-band reading of strength.
type Rating string

const (
	Weak   Rating = "weak"
	Fair   Rating = "fair"
	Strong Rating = "strong"
)

func RatingFor(strength int) Rating {
	switch {
	case strength < 30:
		return Weak
	case strength < 70:
		return Fair
	default:
		return Strong
	}
}

// EntropyScore is entropy as a 0..100 percentage, one point per bit.
func EntropyScore(bits float64) int {
	return min(100, int(math.Floor(bits)))
}

const lowEntropyBits = 40

const (
	MsgReady      = "Password analysis ready. Enter a password to begin."
	MsgExcellent  = "Password strength: excellent. This password meets all security criteria."
	MsgMinLength  = "Increase length to at least 8 characters."
	MsgLonger     = "Consider using 12+ characters for better security."
	MsgUpper      = "Add uppercase letters for complexity."
	MsgLower      = "Add lowercase letters for complexity."
	MsgDigits     = "Include numbers to improve strength."
	MsgSymbols    = "Add symbols for maximum security."
	MsgCommon     = "Avoid common passwords; they are too easy to guess."
	MsgPatterns   = "Avoid patterns like sequences or keyboard walks."
	MsgDictionary = "Avoid using dictionary words without modification."
	MsgReuse      = "Avoid reusing passwords across different sites."
	MsgRandomness = "Increase randomness for better entropy."
)

// recommend checks each condition in a fixed order and appends its message.
func recommend(r Result) []string {
	if r.Length == 0 {
		return []string{MsgReady}
	}
	checks := []struct {
		hit bool
		msg string
	}{
		{r.Length < 8, MsgMinLength},
		{r.Length >= 8 && r.Length < longPassword, MsgLonger},
		{r.Upper == 0, MsgUpper},
		{r.Lower == 0, MsgLower},
		{r.Number == 0, MsgDigits},
		{r.Symbol == 0, MsgSymbols},
		{r.Common, MsgCommon},
		{len(r.Patterns) > 0, MsgPatterns},
		{len(r.DictionaryWords) > 0, MsgDictionary},
		{r.ReuseRisk, MsgReuse},
		{r.Entropy < lowEntropyBits, MsgRandomness},
	}
	out := []string{}
	for _, c := range checks {
		if c.hit {
			out = append(out, c.msg)
		}
	}
	if len(out) == 0 {
		return []string{MsgExcellent}
	}
	return out
}
