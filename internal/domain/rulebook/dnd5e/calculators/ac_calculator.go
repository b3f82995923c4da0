package calculators

import (
	"strings"

	"github.com/KirkDiggler/dnd-companion/internal/domain/character"
)

// ArmorFamily is the armor tier recognized from a character's armor tags
type ArmorFamily int

const (
	ArmorNone ArmorFamily = iota
	ArmorLeather
	ArmorChain
	ArmorPlate
)

const (
	shieldBonus    = 2
	maxArmorDexMod = 2
)

func (f ArmorFamily) String() string {
	switch f {
	case ArmorLeather:
		return "leather"
	case ArmorChain:
		return "chain"
	case ArmorPlate:
		return "plate"
	default:
		return "none"
	}
}

// ResolveArmorFamily picks the highest priority family named by any tag.
// Tags match by substring and case-sensitively; plate beats chain beats leather.
func ResolveArmorFamily(armorTags []string) ArmorFamily {
	switch {
	case anyTagContains(armorTags, "plate"):
		return ArmorPlate
	case anyTagContains(armorTags, "chain"):
		return ArmorChain
	case anyTagContains(armorTags, "leather"):
		return ArmorLeather
	default:
		return ArmorNone
	}
}

// ArmorClass computes AC from the dexterity modifier, armor tags and shield
func ArmorClass(dexterityModifier int, armorTags []string, shield bool) int {
	var ac int
	switch ResolveArmorFamily(armorTags) {
	case ArmorPlate:
		ac = 18 + min(dexterityModifier, maxArmorDexMod)
	case ArmorChain:
		ac = 16 + min(dexterityModifier, maxArmorDexMod)
	case ArmorLeather:
		ac = 11 + dexterityModifier
	default:
		ac = 10 + dexterityModifier
	}

	if shield {
		ac += shieldBonus
	}

	return ac
}

// ArmorClassFromCharacter reads dexterity, armor proficiency tags and
// equipped shields off the character record
func ArmorClassFromCharacter(char *character.Character) int {
	if char == nil {
		return ArmorClass(0, nil, false)
	}

	dexMod := AbilityModifier(char.Stats.Dexterity.Value)
	return ArmorClass(dexMod, char.Proficiencies.Armor, char.HasEquippedShield())
}

// DnD5eACCalculator implements character.ACCalculator following D&D 5e rules
type DnD5eACCalculator struct{}

// NewDnD5eACCalculator creates a new D&D 5e AC calculator
func NewDnD5eACCalculator() *DnD5eACCalculator {
	return &DnD5eACCalculator{}
}

// Calculate computes AC for the character
func (c *DnD5eACCalculator) Calculate(char *character.Character) int {
	return ArmorClassFromCharacter(char)
}

func anyTagContains(tags []string, family string) bool {
	for _, tag := range tags {
		if strings.Contains(tag, family) {
			return true
		}
	}
	return false
}
