package character

import (
	"github.com/KirkDiggler/dnd-companion/internal/domain/character"
	"github.com/KirkDiggler/dnd-companion/internal/domain/rulebook/dnd5e/calculators"
	"github.com/KirkDiggler/dnd-companion/internal/domain/shared"
)

// Sheet is the fully derived character sheet
type Sheet struct {
	Character        *character.Character
	Modifiers        character.AbilityModifiers
	Abilities        []*AbilityLine
	ProficiencyBonus int
	Skills           []*SkillLine
	Initiative       int
	ArmorClass       int
	MaxHP            int
}

// AbilityLine is one ability row of the sheet
type AbilityLine struct {
	Attribute   shared.Attribute
	Score       int
	Modifier    int
	Formatted   string
	Tier        calculators.ScoreTier
	SavingThrow bool
}

// SkillLine is one skill row of the sheet
type SkillLine struct {
	Skill      shared.Skill
	Ability    shared.Attribute
	Proficient bool
	Expertise  bool
	Bonus      int
}

// BuildSheet derives every sheet value from the raw record. Stored modifiers
// on the record are ignored and recomputed.
func BuildSheet(char *character.Character) *Sheet {
	scores := char.Scores()
	modifiers := calculators.AllModifiers(scores)
	pb := calculators.ProficiencyBonus(char.Level)

	sheet := &Sheet{
		Character:        char,
		Modifiers:        modifiers,
		Abilities:        make([]*AbilityLine, 0, len(shared.Attributes)),
		ProficiencyBonus: pb,
		Skills:           make([]*SkillLine, 0, len(shared.Skills)),
		Initiative:       modifiers.Dexterity,
		ArmorClass:       calculators.ArmorClassFromCharacter(char),
		MaxHP: calculators.MaxHitPoints(
			modifiers.Constitution, char.Level, char.Class.Name, char.HP.Max),
	}

	for _, attr := range shared.Attributes {
		score := scores.Get(attr)
		stat := char.Stats.Get(attr)
		sheet.Abilities = append(sheet.Abilities, &AbilityLine{
			Attribute:   attr,
			Score:       score,
			Modifier:    modifiers.Get(attr),
			Formatted:   calculators.FormattedModifier(score),
			Tier:        calculators.ScoreTierFor(score),
			SavingThrow: stat != nil && stat.SavingThrows,
		})
	}

	for _, skill := range shared.Skills {
		var proficient, expertise bool
		if entry, ok := char.Skills[skill]; ok && entry != nil {
			proficient = entry.Proficient
			expertise = entry.Expertise
		}
		sheet.Skills = append(sheet.Skills, &SkillLine{
			Skill:      skill,
			Ability:    calculators.SkillAbility(skill),
			Proficient: proficient,
			Expertise:  expertise,
			Bonus:      calculators.SkillBonus(skill, modifiers, proficient, pb),
		})
	}

	return sheet
}
