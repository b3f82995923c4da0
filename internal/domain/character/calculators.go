package character

// ACCalculator derives armor class from a character record.
// The dnd5e calculators package provides the rules implementation.
type ACCalculator interface {
	// Calculate computes the armor class from stats, armor tags and equipped shields
	Calculate(char *Character) int
}
