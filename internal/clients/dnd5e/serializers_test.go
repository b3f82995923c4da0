package dnd5e

import (
	"testing"

	apiEntities "github.com/fadedpez/dnd5e-api/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-companion/internal/domain/shared"
)

func TestApiClassToClass(t *testing.T) {
	input := &apiEntities.Class{
		Key:    "fighter",
		Name:   "Fighter",
		HitDie: 10,
		Proficiencies: []*apiEntities.ReferenceItem{
			{Key: "all-armor", Name: "All armor"},
			{Key: "light-armor", Name: "Light Armor"},
			{Key: "medium-armor", Name: "Medium Armor"},
			{Key: "heavy-armor", Name: "Heavy Armor"},
			{Key: "shields", Name: "Shields"},
			{Key: "simple-weapons", Name: "Simple Weapons"},
			{Key: "saving-throw-str", Name: "Saving Throw: STR"},
			{Key: "saving-throw-con", Name: "Saving Throw: CON"},
			nil,
		},
	}

	class := apiClassToClass(input)
	require.NotNil(t, class)

	assert.Equal(t, "fighter", class.Key)
	assert.Equal(t, "Fighter", class.Name)
	assert.Equal(t, 10, class.HitDie)
	assert.Equal(t, []shared.Attribute{shared.AttributeStrength, shared.AttributeConstitution}, class.SavingThrows)
	assert.Equal(t, []string{"leather", "chain", "plate", "shield"}, class.ArmorProficiencies)
}

func TestApiClassToClass_UnknownSavingThrow(t *testing.T) {
	class := apiClassToClass(&apiEntities.Class{
		Key: "wizard",
		Proficiencies: []*apiEntities.ReferenceItem{
			{Key: "saving-throw-luck"},
			{Key: "saving-throw-int"},
		},
	})

	assert.Equal(t, []shared.Attribute{shared.AttributeIntelligence}, class.SavingThrows)
	assert.Empty(t, class.ArmorProficiencies)
}

func TestApiReferenceItemsToClasses(t *testing.T) {
	classes := apiReferenceItemsToClasses([]*apiEntities.ReferenceItem{
		{Key: "bard", Name: "Bard"},
		nil,
		{Key: "monk", Name: "Monk"},
	})

	require.Len(t, classes, 2)
	assert.Equal(t, "bard", classes[0].Key)
	assert.Equal(t, "Monk", classes[1].Name)
	assert.Zero(t, classes[1].HitDie)
}
