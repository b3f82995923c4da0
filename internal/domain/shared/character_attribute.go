package shared

// Attribute is one of the six ability keys used by the companion API.
type Attribute string

var Attributes = []Attribute{AttributeStrength, AttributeDexterity, AttributeConstitution, AttributeIntelligence, AttributeWisdom, AttributeCharisma}

const (
	AttributeNone         Attribute = ""
	AttributeStrength     Attribute = "strength"
	AttributeDexterity    Attribute = "dexterity"
	AttributeConstitution Attribute = "constitution"
	AttributeIntelligence Attribute = "intelligence"
	AttributeWisdom       Attribute = "wisdom"
	AttributeCharisma     Attribute = "charisma"
)

// Short returns the three letter abbreviation used on character sheets
func (a Attribute) Short() string {
	switch a {
	case AttributeStrength:
		return "STR"
	case AttributeDexterity:
		return "DEX"
	case AttributeConstitution:
		return "CON"
	case AttributeIntelligence:
		return "INT"
	case AttributeWisdom:
		return "WIS"
	case AttributeCharisma:
		return "CHA"
	default:
		return ""
	}
}
