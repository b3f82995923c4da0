// Package calculators implements the D&D 5e character statistic rules:
// ability modifiers, proficiency bonus, skill bonuses, armor class and
// hit points. Every function is pure; identical inputs always produce
// identical outputs and nothing is validated or cached.
package calculators

import (
	"github.com/KirkDiggler/dnd-companion/internal/domain/character"
)

// AbilityModifier returns floor((score - 10) / 2).
// Odd scores below 10 round towards negative infinity, so 7 gives -2.
func AbilityModifier(score int) int {
	return floorDiv(score-10, 2)
}

// AllModifiers applies AbilityModifier to each of the six scores
func AllModifiers(scores character.AbilityScores) character.AbilityModifiers {
	return character.AbilityModifiers{
		Strength:     AbilityModifier(scores.Strength),
		Dexterity:    AbilityModifier(scores.Dexterity),
		Constitution: AbilityModifier(scores.Constitution),
		Intelligence: AbilityModifier(scores.Intelligence),
		Wisdom:       AbilityModifier(scores.Wisdom),
		Charisma:     AbilityModifier(scores.Charisma),
	}
}

// ProficiencyBonus returns ceil(level / 4) + 1.
// Levels outside 1-20 extrapolate through the same formula.
func ProficiencyBonus(level int) int {
	return ceilDiv(level, 4) + 1
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
