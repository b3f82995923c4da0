package calculators

import (
	"github.com/KirkDiggler/dnd-companion/internal/domain/character"
	"github.com/KirkDiggler/dnd-companion/internal/domain/shared"
)

// SkillAbility returns the ability a skill reads from.
// The mapping is fixed; an unknown skill maps to AttributeNone.
func SkillAbility(skill shared.Skill) shared.Attribute {
	switch skill {
	case shared.SkillAthletics:
		return shared.AttributeStrength
	case shared.SkillAcrobatics, shared.SkillSleightOfHand, shared.SkillStealth:
		return shared.AttributeDexterity
	case shared.SkillArcana, shared.SkillHistory, shared.SkillInvestigation,
		shared.SkillNature, shared.SkillReligion:
		return shared.AttributeIntelligence
	case shared.SkillAnimalHandling, shared.SkillInsight, shared.SkillMedicine,
		shared.SkillPerception, shared.SkillSurvival:
		return shared.AttributeWisdom
	case shared.SkillDeception, shared.SkillIntimidation, shared.SkillPerformance,
		shared.SkillPersuasion:
		return shared.AttributeCharisma
	default:
		return shared.AttributeNone
	}
}

// SkillBonus returns the mapped ability modifier plus the proficiency bonus
// when proficient. Expertise is not applied here.
func SkillBonus(skill shared.Skill, modifiers character.AbilityModifiers, proficient bool, proficiencyBonus int) int {
	bonus := modifiers.Get(SkillAbility(skill))
	if proficient {
		bonus += proficiencyBonus
	}
	return bonus
}
