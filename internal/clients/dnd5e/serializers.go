package dnd5e

import (
	"strings"

	apiEntities "github.com/fadedpez/dnd5e-api/entities"

	"github.com/KirkDiggler/dnd-companion/internal/domain/rulebook/dnd5e"
	"github.com/KirkDiggler/dnd-companion/internal/domain/shared"
)

const savingThrowPrefix = "saving-throw-"

func apiReferenceItemToClass(apiClass *apiEntities.ReferenceItem) *rulebook.Class {
	return &rulebook.Class{
		Key:  apiClass.Key,
		Name: apiClass.Name,
	}
}

func apiReferenceItemsToClasses(input []*apiEntities.ReferenceItem) []*rulebook.Class {
	output := make([]*rulebook.Class, 0, len(input))
	for _, apiClass := range input {
		if apiClass == nil {
			continue
		}
		output = append(output, apiReferenceItemToClass(apiClass))
	}
	return output
}

func apiClassToClass(input *apiEntities.Class) *rulebook.Class {
	class := &rulebook.Class{
		Key:    input.Key,
		Name:   input.Name,
		HitDie: input.HitDie,
	}

	for _, prof := range input.Proficiencies {
		if prof == nil {
			continue
		}
		if strings.HasPrefix(prof.Key, savingThrowPrefix) {
			if attr := referenceItemKeyToAttribute(strings.TrimPrefix(prof.Key, savingThrowPrefix)); attr != shared.AttributeNone {
				class.SavingThrows = append(class.SavingThrows, attr)
			}
			continue
		}
		if tag := proficiencyKeyToArmorTag(prof.Key); tag != "" {
			class.ArmorProficiencies = append(class.ArmorProficiencies, tag)
		}
	}

	return class
}

func referenceItemKeyToAttribute(input string) shared.Attribute {
	switch input {
	case "str":
		return shared.AttributeStrength
	case "dex":
		return shared.AttributeDexterity
	case "con":
		return shared.AttributeConstitution
	case "int":
		return shared.AttributeIntelligence
	case "wis":
		return shared.AttributeWisdom
	case "cha":
		return shared.AttributeCharisma
	default:
		return shared.AttributeNone
	}
}

// proficiencyKeyToArmorTag maps armor category proficiencies onto the armor
// tags stored on a character
func proficiencyKeyToArmorTag(key string) string {
	switch key {
	case "light-armor":
		return "leather"
	case "medium-armor":
		return "chain"
	case "heavy-armor":
		return "plate"
	case "shields":
		return "shield"
	default:
		return ""
	}
}
