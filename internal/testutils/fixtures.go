package testutils

import (
	"time"

	"github.com/KirkDiggler/dnd-companion/internal/domain/account"
	"github.com/KirkDiggler/dnd-companion/internal/domain/character"
	"github.com/KirkDiggler/dnd-companion/internal/domain/rulebook/dnd5e"
	"github.com/KirkDiggler/dnd-companion/internal/domain/shared"
)

// CreateTestUser creates a test account
func CreateTestUser(id, name string) *account.User {
	return &account.User{
		ID:        id,
		Name:      name,
		Email:     name + "@example.com",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// CreateTestClass creates a test class entity
func CreateTestClass(key, name string, hitDie int) *rulebook.Class {
	return &rulebook.Class{
		Key:          key,
		Name:         name,
		HitDie:       hitDie,
		SavingThrows: []shared.Attribute{shared.AttributeStrength, shared.AttributeConstitution},
	}
}

// CreateTestCharacter creates a level 1 fighter with the standard array:
// STR 15, DEX 14, CON 13, INT 12, WIS 10, CHA 8
func CreateTestCharacter(id, name string) *character.Character {
	createdAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	char := &character.Character{
		ID:    id,
		Name:  name,
		Level: 1,
		Class: character.Class{
			Name:               "Fighter",
			HPDice:             "d10",
			ArmorProficiencies: []string{"leather", "chain"},
		},
		Specie:    character.Specie{Name: "Human", Speed: character.Speed{Movement: 30}},
		Speed:     30,
		Skills:    map[shared.Skill]*character.SkillEntry{},
		CreatedAt: &createdAt,
	}
	char.Stats.Strength.Value = 15
	char.Stats.Dexterity.Value = 14
	char.Stats.Constitution.Value = 13
	char.Stats.Intelligence.Value = 12
	char.Stats.Wisdom.Value = 10
	char.Stats.Charisma.Value = 8
	char.HP = character.HitPoints{Current: 11, Max: 11}

	return char
}

// WithArmor sets the armor tags and the equipped shield of a test character
func WithArmor(char *character.Character, shield bool, tags ...string) *character.Character {
	char.Proficiencies.Armor = tags
	if shield {
		char.Inventory.Equipment.Shield = []*character.ShieldItem{
			{Name: "Shield", Quantity: 1, ArmorClass: "+2", Weight: 6, Equipped: true},
		}
	}
	return char
}
