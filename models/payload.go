package models

import (
	"bytes"
	"encoding/json"
	"io"

	"safeplate/apperr"
)

// RecipePayload is the write shape. Required fields are pointers so a
// missing key is distinguishable from a zero value; unknown keys are
// rejected by the decoder. name_suggestable is deliberately absent: it is
// derived server-side.
type RecipePayload struct {
	ID          *string             `json:"id"`
	Name        *string             `json:"name"`
	Tags        *[]TagPayload       `json:"tags"`
	Steps       *string             `json:"steps"`
	Approved    *bool               `json:"approved"`
	Ingredients []IngredientPayload `json:"ingredients"`
	Credit      *CreditPayload      `json:"credit"`
}

type TagPayload struct {
	Name *string `json:"name"`
}

type IngredientPayload struct {
	Options []OptionPayload `json:"options"`
}

type OptionPayload struct {
	Name      *string           `json:"name"`
	Quantity  *string           `json:"quantity"`
	Allergens []AllergenPayload `json:"allergens"`
}

type AllergenPayload struct {
	Name *string `json:"name"`
}

type CreditPayload struct {
	Name *string `json:"name"`
	Link *string `json:"link"`
}

// DecodeRecipePayload reads a write request body strictly: unknown keys,
// wrong types, or trailing garbage reject the whole write.
func DecodeRecipePayload(r io.Reader) (*RecipePayload, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var p RecipePayload
	if err := dec.Decode(&p); err != nil {
		return nil, apperr.Validation("malformed recipe body: %v", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, apperr.Validation("trailing data after recipe body")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate enforces the nested shape invariants: name, steps, approved and
// tags present; at least one ingredient; every ingredient has at least one
// option; every option carries name, quantity and an allergens list.
func (p *RecipePayload) Validate() error {
	if p.Name == nil || *p.Name == "" {
		return apperr.Validation("recipe name is required")
	}
	if p.Tags == nil {
		return apperr.Validation("tags list is required")
	}
	for i, t := range *p.Tags {
		if t.Name == nil || *t.Name == "" {
			return apperr.Validation("tag %d has no name", i)
		}
	}
	if p.Steps == nil {
		return apperr.Validation("steps is required")
	}
	if p.Approved == nil {
		return apperr.Validation("approved flag is required")
	}
	if len(p.Ingredients) == 0 {
		return apperr.Validation("at least one ingredient is required")
	}
	for i, ing := range p.Ingredients {
		if len(ing.Options) == 0 {
			return apperr.Validation("ingredient %d has no options", i)
		}
		for j, opt := range ing.Options {
			if opt.Name == nil || *opt.Name == "" {
				return apperr.Validation("ingredient %d option %d has no name", i, j)
			}
			if opt.Quantity == nil {
				return apperr.Validation("ingredient %d option %d has no quantity", i, j)
			}
			if opt.Allergens == nil {
				return apperr.Validation("ingredient %d option %d has no allergens list", i, j)
			}
			for k, a := range opt.Allergens {
				if a.Name == nil || *a.Name == "" {
					return apperr.Validation("ingredient %d option %d allergen %d has no name", i, j, k)
				}
			}
		}
	}
	if p.Credit != nil {
		if p.Credit.Name == nil || *p.Credit.Name == "" {
			return apperr.Validation("credit requires a name")
		}
	}
	return nil
}

// DecodeRecipePayloadBytes is a convenience for tests and internal callers.
func DecodeRecipePayloadBytes(b []byte) (*RecipePayload, error) {
	return DecodeRecipePayload(bytes.NewReader(b))
}
