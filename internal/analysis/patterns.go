package analysis

import "github.com/5w1tchy/passcheck-api/internal/reference"

// Pattern labels a low-effort construction found in a password.
type Pattern string

const (
	RepeatedCharacters   Pattern = "repeated_characters"
	SequentialAscending  Pattern = "sequential_ascending"
	SequentialDescending Pattern = "sequential_descending"
	KeyboardWalk         Pattern = "keyboard_walk"
)

// minRun is the shortest run any detector reports.
const minRun = 3

// detector flags a pattern when at least minRun consecutive runes are pairwise linked.
type detector struct {
	pattern Pattern
	linked  func(prev, next rune) bool
}

// detectorsFor returns the closed detector set in reporting order.
func detectorsFor(kb reference.Adjacency) []detector {
	return []detector{
		{RepeatedCharacters, func(a, b rune) bool { return a == b }},
		{SequentialAscending, func(a, b rune) bool { return b == a+1 }},
		{SequentialDescending, func(a, b rune) bool { return b == a-1 }},
		{KeyboardWalk, kb.Adjacent},
	}
}

func detectPatterns(runes []rune, detectors []detector) []Pattern {
	found := make([]Pattern, 0, len(detectors))
	for _, d := range detectors {
		if hasRun(runes, d.linked) {
			found = append(found, d.pattern)
		}
	}
	return found
}

func hasRun(runes []rune, linked func(prev, next rune) bool) bool {
	run := 1
	for i := 1; i < len(runes); i++ {
		if !linked(runes[i-1], runes[i]) {
			run = 1
			continue
		}
		run++
		if run >= minRun {
			return true
		}
	}
	return false
}
