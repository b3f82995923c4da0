package character

import (
	"time"

	"github.com/KirkDiggler/dnd-companion/internal/domain/account"
	"github.com/KirkDiggler/dnd-companion/internal/domain/shared"
)

// Character is the character document served by the companion API
type Character struct {
	ID                      string                       `json:"_id,omitempty"`
	Name                    string                       `json:"name"`
	Level                   int                          `json:"level"`
	Class                   Class                        `json:"class"`
	SubClass                string                       `json:"subClass,omitempty"`
	Specie                  Specie                       `json:"specie"`
	Background              Background                   `json:"background"`
	Alignment               string                       `json:"alignment,omitempty"`
	Experience              int                          `json:"experience"`
	HP                      HitPoints                    `json:"hp"`
	ArmorClass              int                          `json:"armorClass"`
	Initiative              int                          `json:"initiative"`
	Speed                   int                          `json:"speed"`
	Stats                   Stats                        `json:"stats"`
	Skills                  map[shared.Skill]*SkillEntry `json:"skills"`
	Proficiencies           Proficiencies                `json:"proficiencies"`
	PersonalCharacteristics *PersonalCharacteristics     `json:"personalCharacteristics,omitempty"`
	Feats                   []string                     `json:"feats"`
	Inventory               Inventory                    `json:"inventory"`
	Backstory               string                       `json:"backstory,omitempty"`
	User                    *account.User                `json:"userId,omitempty"`
	CreatedAt               *time.Time                   `json:"createdAt,omitempty"`
}

// Class is the class block embedded in a character
type Class struct {
	ID                       string   `json:"_id,omitempty"`
	Name                     string   `json:"name"`
	PrimaryAbility           string   `json:"primaryAbility,omitempty"`
	HPDice                   string   `json:"hpDice,omitempty"`
	SavingThrowProficiencies []string `json:"savingThrowProficiencies,omitempty"`
	WeaponProficiencies      []string `json:"weaponProficiencies,omitempty"`
	ToolProficiencies        []string `json:"toolProficiencies,omitempty"`
	ArmorProficiencies       []string `json:"armorProficiencies,omitempty"`
	StartingGear             string   `json:"startingGear,omitempty"`
	Description              string   `json:"description,omitempty"`
	Features                 []string `json:"features,omitempty"`
}

// Specie is the species (race) block embedded in a character
type Specie struct {
	ID           string   `json:"_id,omitempty"`
	Name         string   `json:"name"`
	CreatureType string   `json:"creatureType,omitempty"`
	Size         string   `json:"size,omitempty"`
	Speed        Speed    `json:"speed"`
	Languages    []string `json:"languages,omitempty"`
	Traits       []string `json:"traits,omitempty"`
}

// Speed holds movement speeds in feet
type Speed struct {
	Movement int `json:"movement"`
	Burrow   int `json:"burrow,omitempty"`
	Climb    int `json:"climb,omitempty"`
	Fly      int `json:"fly,omitempty"`
	Swim     int `json:"swim,omitempty"`
}

// Background is the background block embedded in a character
type Background struct {
	ID                 string   `json:"_id,omitempty"`
	Name               string   `json:"name"`
	AbilityScore       []string `json:"abilityScore,omitempty"`
	Feat               string   `json:"feat,omitempty"`
	SkillProficiencies []string `json:"skillProficiencies,omitempty"`
	ToolProficiencies  []string `json:"toolProficiencies,omitempty"`
	Equipment          string   `json:"equipment,omitempty"`
}

// HitPoints tracks current, maximum and temporary hit points
type HitPoints struct {
	Current   int `json:"current"`
	Max       int `json:"max"`
	Temporary int `json:"temporary"`
}

// Proficiencies lists armor, weapon, tool and language proficiencies.
// Armor entries double as the armor tags read by the armor class rules.
type Proficiencies struct {
	Armor     []string `json:"armor"`
	Weapons   []string `json:"weapons"`
	Tools     []string `json:"tools"`
	Languages []string `json:"languages"`
}

type PersonalCharacteristics struct {
	Traits string `json:"traits"`
	Ideals string `json:"ideals"`
	Bonds  string `json:"bonds"`
	Flaws  string `json:"flaws"`
}

// Scores returns the raw ability scores of the character
func (c *Character) Scores() AbilityScores {
	return c.Stats.Scores()
}

// HasEquippedShield reports whether any shield in the inventory is equipped
func (c *Character) HasEquippedShield() bool {
	for _, shield := range c.Inventory.Equipment.Shield {
		if shield != nil && shield.Equipped {
			return true
		}
	}
	return false
}

// Skill returns the skill entry, creating it when missing
func (c *Character) Skill(skill shared.Skill) *SkillEntry {
	if c.Skills == nil {
		c.Skills = make(map[shared.Skill]*SkillEntry, len(shared.Skills))
	}
	entry, ok := c.Skills[skill]
	if !ok || entry == nil {
		entry = &SkillEntry{}
		c.Skills[skill] = entry
	}
	return entry
}
