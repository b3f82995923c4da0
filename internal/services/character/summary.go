package character

import (
	"github.com/KirkDiggler/dnd-companion/internal/domain/character"
	"github.com/KirkDiggler/dnd-companion/internal/domain/rulebook/dnd5e/calculators"
)

// HealthStatus bands the current hit point percentage
type HealthStatus string

const (
	HealthHealthy        HealthStatus = "healthy"
	HealthLightlyWounded HealthStatus = "lightly_wounded"
	HealthWounded        HealthStatus = "wounded"
	HealthCritical       HealthStatus = "critical"
)

// HealthStatusFor bands an HP percentage. Boundaries fall to the lower band,
// so exactly 75 is lightly wounded.
func HealthStatusFor(percentage float64) HealthStatus {
	switch {
	case percentage > 75:
		return HealthHealthy
	case percentage > 50:
		return HealthLightlyWounded
	case percentage > 25:
		return HealthWounded
	default:
		return HealthCritical
	}
}

// Summary is the dashboard card of one character
type Summary struct {
	ID                   string
	Name                 string
	ClassName            string
	SpecieName           string
	Level                int
	ProficiencyBonus     int
	ConstitutionModifier int
	ArmorClass           int
	CurrentHP            int
	MaxHP                int
	HPPercentage         float64
	Health               HealthStatus
}

// Summarize derives the dashboard card of a character. A character with no
// maximum hit points reports 0% and critical health.
func Summarize(char *character.Character) *Summary {
	summary := &Summary{
		ID:                   char.ID,
		Name:                 char.Name,
		ClassName:            char.Class.Name,
		SpecieName:           char.Specie.Name,
		Level:                char.Level,
		ProficiencyBonus:     calculators.ProficiencyBonus(char.Level),
		ConstitutionModifier: calculators.AbilityModifier(char.Stats.Constitution.Value),
		ArmorClass:           calculators.ArmorClassFromCharacter(char),
		CurrentHP:            char.HP.Current,
		MaxHP:                char.HP.Max,
	}

	if char.HP.Max > 0 {
		summary.HPPercentage = float64(char.HP.Current) / float64(char.HP.Max) * 100
	}
	summary.Health = HealthStatusFor(summary.HPPercentage)

	return summary
}
