package calculators_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/KirkDiggler/dnd-companion/internal/domain/character"
	"github.com/KirkDiggler/dnd-companion/internal/domain/rulebook/dnd5e/calculators"
)

func TestArmorClass(t *testing.T) {
	tests := []struct {
		name     string
		dexMod   int
		tags     []string
		shield   bool
		expected int
	}{
		{
			name:     "unarmored",
			dexMod:   2,
			expected: 12, // 10 + 2 DEX
		},
		{
			name:     "unarmored with negative DEX",
			dexMod:   -1,
			expected: 9,
		},
		{
			name:     "leather keeps full DEX",
			dexMod:   4,
			tags:     []string{"leather"},
			expected: 15, // 11 + 4 DEX
		},
		{
			name:     "chain caps DEX at 2",
			dexMod:   3,
			tags:     []string{"chain"},
			expected: 18, // 16 + 2 DEX (capped from 3)
		},
		{
			name:     "chain keeps negative DEX",
			dexMod:   -2,
			tags:     []string{"chain"},
			expected: 14,
		},
		{
			name:     "plate caps DEX at 2",
			dexMod:   1,
			tags:     []string{"plate"},
			expected: 19,
		},
		{
			name:     "plate beats leather regardless of order",
			dexMod:   4,
			tags:     []string{"leather", "plate"},
			expected: 20, // 18 + min(4, 2)
		},
		{
			name:     "chain beats leather",
			dexMod:   0,
			tags:     []string{"leather", "chain"},
			expected: 16,
		},
		{
			name:     "tags match by substring",
			dexMod:   1,
			tags:     []string{"half-plate armor"},
			expected: 19,
		},
		{
			name:     "tags are case sensitive",
			dexMod:   1,
			tags:     []string{"Plate"},
			expected: 11, // treated as unarmored
		},
		{
			name:     "unrecognized tags fall through to unarmored",
			dexMod:   3,
			tags:     []string{"padded", "hide"},
			expected: 13,
		},
		{
			name:     "shield on unarmored",
			dexMod:   2,
			shield:   true,
			expected: 14,
		},
		{
			name:     "shield on plate",
			dexMod:   0,
			tags:     []string{"plate"},
			shield:   true,
			expected: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calculators.ArmorClass(tt.dexMod, tt.tags, tt.shield))
		})
	}
}

func TestResolveArmorFamily(t *testing.T) {
	assert.Equal(t, calculators.ArmorNone, calculators.ResolveArmorFamily(nil))
	assert.Equal(t, calculators.ArmorLeather, calculators.ResolveArmorFamily([]string{"studded leather"}))
	assert.Equal(t, calculators.ArmorChain, calculators.ResolveArmorFamily([]string{"leather", "chain shirt"}))
	assert.Equal(t, calculators.ArmorPlate, calculators.ResolveArmorFamily([]string{"chain", "plate", "leather"}))
	assert.Equal(t, "plate", calculators.ArmorPlate.String())
	assert.Equal(t, "none", calculators.ArmorNone.String())
}

func TestPropertyShieldAddsExactlyTwo(t *testing.T) {
	families := []string{"", "leather", "chain", "plate"}
	rapid.Check(t, func(t *rapid.T) {
		dexMod := rapid.IntRange(-5, 10).Draw(t, "dex_mod")
		family := rapid.SampledFrom(families).Draw(t, "family")
		var tags []string
		if family != "" {
			tags = []string{family}
		}

		without := calculators.ArmorClass(dexMod, tags, false)
		with := calculators.ArmorClass(dexMod, tags, true)
		if with-without != 2 {
			t.Fatalf("shield added %d for %q with dex %d", with-without, family, dexMod)
		}
	})
}

func TestArmorClassFromCharacter(t *testing.T) {
	calculator := calculators.NewDnD5eACCalculator()

	tests := []struct {
		name     string
		setup    func() *character.Character
		expected int
	}{
		{
			name: "no armor and no shield",
			setup: func() *character.Character {
				char := &character.Character{}
				char.Stats.Dexterity.Value = 14
				return char
			},
			expected: 12,
		},
		{
			name: "armor tags come from armor proficiencies",
			setup: func() *character.Character {
				char := &character.Character{}
				char.Stats.Dexterity.Value = 18
				char.Proficiencies.Armor = []string{"leather", "chain"}
				return char
			},
			expected: 18, // 16 + min(4, 2)
		},
		{
			name: "equipped shield adds two",
			setup: func() *character.Character {
				char := &character.Character{}
				char.Stats.Dexterity.Value = 12
				char.Proficiencies.Armor = []string{"plate"}
				char.Inventory.Equipment.Shield = []*character.ShieldItem{
					{Name: "Shield", Equipped: false},
					{Name: "Spiked Shield", Equipped: true},
				}
				return char
			},
			expected: 21, // 18 + 1 DEX + 2 shield
		},
		{
			name: "carried shield does not count",
			setup: func() *character.Character {
				char := &character.Character{}
				char.Stats.Dexterity.Value = 10
				char.Inventory.Equipment.Shield = []*character.ShieldItem{{Name: "Shield"}}
				return char
			},
			expected: 10,
		},
		{
			name: "dexterity modifier is recomputed from the score",
			setup: func() *character.Character {
				char := &character.Character{}
				char.Stats.Dexterity = character.AbilityScore{Value: 7, Modifier: 5}
				return char
			},
			expected: 8, // 10 + (-2), stored modifier ignored
		},
		{
			name:     "nil character",
			setup:    func() *character.Character { return nil },
			expected: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			char := tt.setup()
			assert.Equal(t, tt.expected, calculators.ArmorClassFromCharacter(char))
			assert.Equal(t, tt.expected, calculator.Calculate(char))
		})
	}
}

func TestDnD5eACCalculator_ImplementsInterface(t *testing.T) {
	var _ character.ACCalculator = calculators.NewDnD5eACCalculator()
}
