package analysis

const (
	longPassword     = 12
	pointsPerChar    = 3
	maxLengthPoints  = 40
	classPoints      = 10
	complexityWeight = 5
	maxStrength      = 100
)

// Complexity is the 0..5 class score and the 0..100 strength derived from it.
type Complexity struct {
	Score         int
	BasicStrength int
}

// ComplexityOf counts the present classes plus a bonus bit for length >= 12, then
// scores length, classes and complexity additively.
func ComplexityOf(p Profile) Complexity {
	if p.Length == 0 {
		return Complexity{}
	}
	score := 0
	points := min(maxLengthPoints, p.Length*pointsPerChar)
	for _, present := range p.classes() {
		if present {
			score++
			points += classPoints
		}
	}
	if p.Length >= longPassword {
		score++
	}
	points += score * complexityWeight
	return Complexity{Score: score, BasicStrength: min(maxStrength, points)}
}

// Strength recomputes the final strength from a profile; it always equals
// ComplexityOf(p).BasicStrength.
func Strength(p Profile) int {
	return ComplexityOf(p).BasicStrength
}
