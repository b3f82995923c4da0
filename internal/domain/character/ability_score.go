package character

import (
	"fmt"

	"github.com/KirkDiggler/dnd-companion/internal/domain/shared"
)

// AbilityScores holds a raw score for each of the six abilities
type AbilityScores struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// Get returns the score for an attribute, 0 for an unknown attribute
func (a AbilityScores) Get(attr shared.Attribute) int {
	switch attr {
	case shared.AttributeStrength:
		return a.Strength
	case shared.AttributeDexterity:
		return a.Dexterity
	case shared.AttributeConstitution:
		return a.Constitution
	case shared.AttributeIntelligence:
		return a.Intelligence
	case shared.AttributeWisdom:
		return a.Wisdom
	case shared.AttributeCharisma:
		return a.Charisma
	default:
		return 0
	}
}

// AbilityModifiers holds the derived modifier for each of the six abilities
type AbilityModifiers struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// Get returns the modifier for an attribute, 0 for an unknown attribute
func (m AbilityModifiers) Get(attr shared.Attribute) int {
	switch attr {
	case shared.AttributeStrength:
		return m.Strength
	case shared.AttributeDexterity:
		return m.Dexterity
	case shared.AttributeConstitution:
		return m.Constitution
	case shared.AttributeIntelligence:
		return m.Intelligence
	case shared.AttributeWisdom:
		return m.Wisdom
	case shared.AttributeCharisma:
		return m.Charisma
	default:
		return 0
	}
}

// AbilityScore is a single stat block entry as stored by the API
type AbilityScore struct {
	Value        int  `json:"value"`
	Modifier     int  `json:"modifier"`
	SavingThrows bool `json:"savingThrows"`
}

func (a *AbilityScore) String() string {
	return fmt.Sprintf("%d (%+d)", a.Value, a.Modifier)
}

// Stats is the six ability stat block of a character
type Stats struct {
	Strength     AbilityScore `json:"strength"`
	Dexterity    AbilityScore `json:"dexterity"`
	Constitution AbilityScore `json:"constitution"`
	Intelligence AbilityScore `json:"intelligence"`
	Wisdom       AbilityScore `json:"wisdom"`
	Charisma     AbilityScore `json:"charisma"`
}

// Get returns a pointer to the stat entry for an attribute, nil when unknown
func (s *Stats) Get(attr shared.Attribute) *AbilityScore {
	switch attr {
	case shared.AttributeStrength:
		return &s.Strength
	case shared.AttributeDexterity:
		return &s.Dexterity
	case shared.AttributeConstitution:
		return &s.Constitution
	case shared.AttributeIntelligence:
		return &s.Intelligence
	case shared.AttributeWisdom:
		return &s.Wisdom
	case shared.AttributeCharisma:
		return &s.Charisma
	default:
		return nil
	}
}

// Scores extracts the raw ability scores
func (s *Stats) Scores() AbilityScores {
	return AbilityScores{
		Strength:     s.Strength.Value,
		Dexterity:    s.Dexterity.Value,
		Constitution: s.Constitution.Value,
		Intelligence: s.Intelligence.Value,
		Wisdom:       s.Wisdom.Value,
		Charisma:     s.Charisma.Value,
	}
}

// SkillEntry is the per skill record stored on a character.
// Expertise is carried as data only; nothing requires it to imply Proficient.
type SkillEntry struct {
	Stats         string `json:"stats"`
	StatsModifier int    `json:"statsModifier"`
	Proficient    bool   `json:"proficient"`
	Expertise     bool   `json:"expertise"`
	Modifier      int    `json:"modifier"`
}
