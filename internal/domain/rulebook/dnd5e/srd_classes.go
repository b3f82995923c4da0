package rulebook

import "github.com/KirkDiggler/dnd-companion/internal/domain/shared"

// SRDClasses returns the twelve SRD classes. The catalog is used when the
// reference API cannot be reached; a fresh slice is returned on every call.
func SRDClasses() []*Class {
	return []*Class{
		{
			Key:                "barbarian",
			Name:               "Barbarian",
			Description:        "A fierce warrior who can enter a battle rage.",
			HitDie:             12,
			SavingThrows:       []shared.Attribute{shared.AttributeStrength, shared.AttributeConstitution},
			ArmorProficiencies: []string{"leather", "chain", "shield"},
			Features:           []string{"Rage", "Unarmored Defense"},
		},
		{
			Key:                "bard",
			Name:               "Bard",
			Description:        "An inspiring magician whose power echoes the music of creation.",
			HitDie:             8,
			SavingThrows:       []shared.Attribute{shared.AttributeDexterity, shared.AttributeCharisma},
			ArmorProficiencies: []string{"leather"},
			Features:           []string{"Spellcasting", "Bardic Inspiration"},
		},
		{
			Key:                "cleric",
			Name:               "Cleric",
			Description:        "A priestly champion who wields divine magic in service of a higher power.",
			HitDie:             8,
			SavingThrows:       []shared.Attribute{shared.AttributeWisdom, shared.AttributeCharisma},
			ArmorProficiencies: []string{"leather", "chain", "shield"},
			Features:           []string{"Spellcasting", "Divine Domain"},
		},
		{
			Key:                "druid",
			Name:               "Druid",
			Description:        "A priest of the Old Faith, wielding the powers of nature and adopting animal forms.",
			HitDie:             8,
			SavingThrows:       []shared.Attribute{shared.AttributeIntelligence, shared.AttributeWisdom},
			ArmorProficiencies: []string{"leather", "shield"},
			Features:           []string{"Druidic", "Spellcasting"},
		},
		{
			Key:                "fighter",
			Name:               "Fighter",
			Description:        "A master of martial combat, skilled with weapons and armor.",
			HitDie:             10,
			SavingThrows:       []shared.Attribute{shared.AttributeStrength, shared.AttributeConstitution},
			ArmorProficiencies: []string{"leather", "chain", "plate", "shield"},
			Features:           []string{"Fighting Style", "Second Wind"},
		},
		{
			Key:          "monk",
			Name:         "Monk",
			Description:  "A master of martial arts, harnessing the power of the body in pursuit of physical and spiritual perfection.",
			HitDie:       8,
			SavingThrows: []shared.Attribute{shared.AttributeStrength, shared.AttributeDexterity},
			Features:     []string{"Unarmored Defense", "Martial Arts"},
		},
		{
			Key:                "paladin",
			Name:               "Paladin",
			Description:        "A holy warrior bound to a sacred oath.",
			HitDie:             10,
			SavingThrows:       []shared.Attribute{shared.AttributeWisdom, shared.AttributeCharisma},
			ArmorProficiencies: []string{"leather", "chain", "plate", "shield"},
			Features:           []string{"Divine Sense", "Lay on Hands"},
		},
		{
			Key:                "ranger",
			Name:               "Ranger",
			Description:        "A warrior who combats threats on the edges of civilization.",
			HitDie:             10,
			SavingThrows:       []shared.Attribute{shared.AttributeStrength, shared.AttributeDexterity},
			ArmorProficiencies: []string{"leather", "chain", "shield"},
			Features:           []string{"Favored Enemy", "Natural Explorer"},
		},
		{
			Key:                "rogue",
			Name:               "Rogue",
			Description:        "A scoundrel who uses stealth and trickery to overcome obstacles and enemies.",
			HitDie:             8,
			SavingThrows:       []shared.Attribute{shared.AttributeDexterity, shared.AttributeIntelligence},
			ArmorProficiencies: []string{"leather"},
			Features:           []string{"Expertise", "Sneak Attack", "Thieves' Cant"},
		},
		{
			Key:          "sorcerer",
			Name:         "Sorcerer",
			Description:  "A spellcaster who draws on inherent magic from a gift or bloodline.",
			HitDie:       6,
			SavingThrows: []shared.Attribute{shared.AttributeConstitution, shared.AttributeCharisma},
			Features:     []string{"Spellcasting", "Sorcerous Origin"},
		},
		{
			Key:                "warlock",
			Name:               "Warlock",
			Description:        "A wielder of magic that is derived from a bargain with an extraplanar entity.",
			HitDie:             8,
			SavingThrows:       []shared.Attribute{shared.AttributeWisdom, shared.AttributeCharisma},
			ArmorProficiencies: []string{"leather"},
			Features:           []string{"Otherworldly Patron", "Pact Magic"},
		},
		{
			Key:          "wizard",
			Name:         "Wizard",
			Description:  "A scholarly magic-user capable of manipulating the structures of reality.",
			HitDie:       6,
			SavingThrows: []shared.Attribute{shared.AttributeIntelligence, shared.AttributeWisdom},
			Features:     []string{"Spellcasting", "Arcane Recovery"},
		},
	}
}
