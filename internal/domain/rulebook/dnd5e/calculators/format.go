package calculators

import "strconv"

// ScoreTier is a display band for a raw ability score
type ScoreTier string

const (
	ScoreTierLegendary    ScoreTier = "legendary"
	ScoreTierExceptional  ScoreTier = "exceptional"
	ScoreTierStrong       ScoreTier = "strong"
	ScoreTierAboveAverage ScoreTier = "above_average"
	ScoreTierAverage      ScoreTier = "average"
	ScoreTierWeak         ScoreTier = "weak"
)

// FormattedModifier renders the score's modifier with an explicit sign, "+3" or "-1"
func FormattedModifier(score int) string {
	modifier := AbilityModifier(score)
	if modifier >= 0 {
		return "+" + strconv.Itoa(modifier)
	}
	return strconv.Itoa(modifier)
}

// ScoreTierFor places a score on the display ladder
func ScoreTierFor(score int) ScoreTier {
	switch {
	case score >= 18:
		return ScoreTierLegendary
	case score >= 16:
		return ScoreTierExceptional
	case score >= 14:
		return ScoreTierStrong
	case score >= 12:
		return ScoreTierAboveAverage
	case score >= 10:
		return ScoreTierAverage
	default:
		return ScoreTierWeak
	}
}

// Color returns the embed color used to emphasize the tier
func (t ScoreTier) Color() int {
	switch t {
	case ScoreTierLegendary:
		return 0x9333ea // purple
	case ScoreTierExceptional:
		return 0x2563eb // blue
	case ScoreTierStrong:
		return 0x16a34a // green
	case ScoreTierAboveAverage:
		return 0xca8a04 // yellow
	case ScoreTierAverage:
		return 0xea580c // orange
	default:
		return 0xdc2626 // red
	}
}
