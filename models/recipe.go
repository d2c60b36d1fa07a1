package models

// Recipe is the stored document. IDs are slugs derived from the name, stable
// once assigned.
type Recipe struct {
	ID          string       `json:"id" bson:"_id"`
	Name        string       `json:"name" bson:"name"`
	Tags        []Tag        `json:"tags" bson:"tags"`
	Steps       string       `json:"steps" bson:"steps"`
	Ingredients []Ingredient `json:"ingredients" bson:"ingredients"`
	Credit      *Credit      `json:"credit,omitempty" bson:"credit,omitempty"`
	Approved    bool         `json:"approved" bson:"approved"`
	CreatedAt   int64        `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}

// Tag names are stored in canonical form only; there is no raw display form.
type Tag struct {
	Name string `json:"name" bson:"name"`
}

// Ingredient is one slot in a recipe. Its options are mutually exclusive
// alternatives (the base ingredient plus substitutes).
type Ingredient struct {
	Options []Option `json:"options" bson:"options"`
}

// Option keeps the raw display name; NameSuggestable is the derived
// canonical form, recomputed on every write and never taken from clients.
type Option struct {
	Name            string     `json:"name" bson:"name"`
	Quantity        string     `json:"quantity" bson:"quantity"`
	Allergens       []Allergen `json:"allergens" bson:"allergens"`
	NameSuggestable string     `json:"name_suggestable,omitempty" bson:"name_suggestable"`
}

type Allergen struct {
	Name            string `json:"name" bson:"name"`
	NameSuggestable string `json:"name_suggestable,omitempty" bson:"name_suggestable"`
}

type Credit struct {
	Name string `json:"name" bson:"name"`
	Link string `json:"link,omitempty" bson:"link,omitempty"`
}

// Mode selects how a constraint item set is interpreted.
type Mode int

const (
	// ModeSafes: an option is acceptable only if every one of its
	// allergens is in the item set.
	ModeSafes Mode = iota
	// ModeAllergens: an option is acceptable only if none of its
	// allergens is in the item set.
	ModeAllergens
)

func (m Mode) String() string {
	if m == ModeAllergens {
		return "allergens"
	}
	return "safes"
}

// Constraint is a search-time value, never persisted. Items must already be
// in canonical form.
type Constraint struct {
	Mode        Mode
	Items       []string
	Flexibility int
}
