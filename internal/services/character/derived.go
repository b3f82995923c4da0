package character

import (
	"strings"

	"github.com/KirkDiggler/dnd-companion/internal/domain/character"
	"github.com/KirkDiggler/dnd-companion/internal/domain/rulebook/dnd5e/calculators"
	"github.com/KirkDiggler/dnd-companion/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-companion/internal/errors"
)

const (
	minLevel = 1
	maxLevel = 20
)

// DeriveOptions controls ApplyDerivedStats
type DeriveOptions struct {
	// FixedHP replaces the hit point formula when positive
	FixedHP int

	// New resets current hit points to the maximum
	New bool

	ACCalculator character.ACCalculator
}

// ApplyDerivedStats writes every derived value back onto the record: stat
// modifiers, skill entries, armor class, initiative and maximum hit points.
// Current hit points are clamped to the new maximum unless the character is new,
// in which case they start at the maximum.
func ApplyDerivedStats(char *character.Character, opts *DeriveOptions) {
	if opts == nil {
		opts = &DeriveOptions{}
	}
	calculator := opts.ACCalculator
	if calculator == nil {
		calculator = calculators.NewDnD5eACCalculator()
	}

	modifiers := calculators.AllModifiers(char.Scores())
	pb := calculators.ProficiencyBonus(char.Level)

	for _, attr := range shared.Attributes {
		char.Stats.Get(attr).Modifier = modifiers.Get(attr)
	}

	for _, skill := range shared.Skills {
		entry := char.Skill(skill)
		ability := calculators.SkillAbility(skill)
		entry.Stats = string(ability)
		entry.StatsModifier = modifiers.Get(ability)
		entry.Modifier = calculators.SkillBonus(skill, modifiers, entry.Proficient, pb)
	}

	char.ArmorClass = calculator.Calculate(char)
	char.Initiative = modifiers.Dexterity
	char.HP.Max = calculators.MaxHitPoints(modifiers.Constitution, char.Level, char.Class.Name, opts.FixedHP)

	if opts.New || char.HP.Current > char.HP.Max {
		char.HP.Current = char.HP.Max
	}
}

// Validate checks the fields the API requires before a save
func Validate(char *character.Character) error {
	switch {
	case strings.TrimSpace(char.Name) == "":
		return dnderr.Validation("name is required").WithMeta("field", "name")
	case strings.TrimSpace(char.Class.Name) == "":
		return dnderr.Validation("class is required").WithMeta("field", "class")
	case char.Level < minLevel || char.Level > maxLevel:
		return dnderr.Validationf("level must be between %d and %d", minLevel, maxLevel).
			WithMeta("field", "level")
	}
	return nil
}
