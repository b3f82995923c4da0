package calculators

import "strings"

// DefaultHitDie is used for any class name missing from the table
const DefaultHitDie = 8

// HitDie returns the hit die size for a class. Names are matched
// case-insensitively; unknown classes get DefaultHitDie.
func HitDie(className string) int {
	switch strings.ToLower(className) {
	case "barbarian":
		return 12
	case "fighter", "paladin", "ranger":
		return 10
	case "cleric", "druid", "monk", "rogue", "warlock", "bard":
		return 8
	case "sorcerer", "wizard":
		return 6
	default:
		return DefaultHitDie
	}
}

// MaxHitPoints returns fixedHP unchanged when it is positive. Otherwise it is
// conMod*level + (die/2 + 1) + (die/2)*(level-1): the full die at first level
// plus half the die for each level after that.
func MaxHitPoints(constitutionModifier, level int, className string, fixedHP int) int {
	if fixedHP > 0 {
		return fixedHP
	}

	die := HitDie(className)
	return constitutionModifier*level + floorDiv(die, 2) + 1 + (die/2)*(level-1)
}
