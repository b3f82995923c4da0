package character

// Inventory holds equipment, loose items and currency
type Inventory struct {
	Equipment Equipment `json:"equipment"`
	Items     []*Item   `json:"items,omitempty"`
	Currency  Currency  `json:"currency"`
}

// Equipment groups equippable gear by kind
type Equipment struct {
	Armor      []*ArmorItem  `json:"armor,omitempty"`
	Shield     []*ShieldItem `json:"shield,omitempty"`
	Weapon     []*WeaponItem `json:"weapon,omitempty"`
	MagicItems []*MagicItem  `json:"magicItems"`
	RightHand  string        `json:"rightHand"`
	LeftHand   string        `json:"lefttHand"` // field name as spelled by the API
	Attuned    []string      `json:"attuned"`
}

type ArmorItem struct {
	Name                string  `json:"name"`
	Quantity            int     `json:"quantity"`
	Type                string  `json:"tipe"`
	ArmorClass          string  `json:"armorClass"`
	MinStrength         int     `json:"minStrength,omitempty"`
	StealthDisadvantage bool    `json:"stealthDisadvantage"`
	Weight              float64 `json:"weight"`
	Equipped            bool    `json:"equipped"`
	RequiresAttunement  bool    `json:"requiresAttunement"`
}

type ShieldItem struct {
	Name               string  `json:"name"`
	Quantity           int     `json:"quantity"`
	ArmorClass         string  `json:"armorClass"`
	Weight             float64 `json:"weight"`
	Equipped           bool    `json:"equipped"`
	RequiresAttunement bool    `json:"requiresAttunement"`
}

type WeaponItem struct {
	Name               string  `json:"name"`
	Quantity           int     `json:"quantity"`
	Type               string  `json:"tipe"`
	DamageDice         string  `json:"damageDice"`
	DamageType         string  `json:"damageTipe"`
	Properties         string  `json:"properties"`
	Mastery            string  `json:"mastery"`
	Weight             float64 `json:"weight"`
	Equipped           bool    `json:"equipped"`
	DualHanded         bool    `json:"dualHanded"`
	Munition           int     `json:"munition"`
	RequiresAttunement bool    `json:"requiresAttunement"`
}

type MagicItem struct {
	Name               string  `json:"name"`
	Quantity           int     `json:"quantity"`
	Weight             float64 `json:"weight"`
	Equipped           bool    `json:"equipped"`
	RequiresAttunement bool    `json:"requiresAttunement"`
	Description        string  `json:"description"`
}

type Item struct {
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description,omitempty"`
}

// Currency in the five standard coin denominations
type Currency struct {
	Copper   int `json:"copper"`
	Silver   int `json:"silver"`
	Electrum int `json:"electrum"`
	Gold     int `json:"gold"`
	Platinum int `json:"platinum"`
}
