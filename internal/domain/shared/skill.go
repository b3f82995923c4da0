package shared

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Skill is one of the eighteen skill keys used by the companion API.
type Skill string

const (
	SkillAcrobatics     Skill = "acrobatics"
	SkillAnimalHandling Skill = "animalHandling"
	SkillArcana         Skill = "arcana"
	SkillAthletics      Skill = "athletics"
	SkillDeception      Skill = "deception"
	SkillHistory        Skill = "history"
	SkillInsight        Skill = "insight"
	SkillIntimidation   Skill = "intimidation"
	SkillInvestigation  Skill = "investigation"
	SkillMedicine       Skill = "medicine"
	SkillNature         Skill = "nature"
	SkillPerception     Skill = "perception"
	SkillPerformance    Skill = "performance"
	SkillPersuasion     Skill = "persuasion"
	SkillReligion       Skill = "religion"
	SkillSleightOfHand  Skill = "sleightOfHand"
	SkillStealth        Skill = "stealth"
	SkillSurvival       Skill = "survival"
)

// Skills lists every skill in sheet order
var Skills = []Skill{
	SkillAcrobatics,
	SkillAnimalHandling,
	SkillArcana,
	SkillAthletics,
	SkillDeception,
	SkillHistory,
	SkillInsight,
	SkillIntimidation,
	SkillInvestigation,
	SkillMedicine,
	SkillNature,
	SkillPerception,
	SkillPerformance,
	SkillPersuasion,
	SkillReligion,
	SkillSleightOfHand,
	SkillStealth,
	SkillSurvival,
}

// DisplayName returns the human readable skill name
func (s Skill) DisplayName() string {
	switch s {
	case SkillAnimalHandling:
		return "Animal Handling"
	case SkillSleightOfHand:
		return "Sleight of Hand"
	case "":
		return ""
	default:
		return cases.Title(language.English, cases.NoLower).String(string(s))
	}
}
