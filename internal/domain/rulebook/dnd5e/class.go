package rulebook

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/dnd-companion/internal/domain/shared"
)

// Class is a character class as listed by the reference catalog
type Class struct {
	Key                string             `json:"key"`
	Name               string             `json:"name"`
	Description        string             `json:"description,omitempty"`
	HitDie             int                `json:"hit_die"`
	PrimaryAbility     string             `json:"primary_ability,omitempty"`
	SavingThrows       []shared.Attribute `json:"saving_throws,omitempty"`
	ArmorProficiencies []string           `json:"armor_proficiencies,omitempty"`
	Features           []string           `json:"features,omitempty"`
}

// GetPrimaryAbility returns the primary ability for the class
func (c *Class) GetPrimaryAbility() string {
	if c.PrimaryAbility != "" {
		return c.PrimaryAbility
	}

	switch c.Key {
	case "barbarian":
		return "Strength"
	case "bard":
		return "Charisma"
	case "cleric":
		return "Wisdom"
	case "druid":
		return "Wisdom"
	case "fighter":
		return "Strength or Dexterity"
	case "monk":
		return "Dexterity and Wisdom"
	case "paladin":
		return "Strength and Charisma"
	case "ranger":
		return "Dexterity and Wisdom"
	case "rogue":
		return "Dexterity"
	case "sorcerer":
		return "Charisma"
	case "warlock":
		return "Charisma"
	case "wizard":
		return "Intelligence"
	default:
		return ""
	}
}

// HitDieLabel renders the hit die as "d10", empty when unknown
func (c *Class) HitDieLabel() string {
	if c.HitDie <= 0 {
		return ""
	}
	return "d" + strconv.Itoa(c.HitDie)
}

// Matches reports whether term appears in the name or description, ignoring case.
// An empty term matches every class.
func (c *Class) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.Description), term)
}
