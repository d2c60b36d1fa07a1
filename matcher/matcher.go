// Package matcher decides whether a recipe satisfies a user constraint.
// It is the reference semantics for the store-side pipeline in the recipes
// package: the two must stay behaviorally identical.
package matcher

import "safeplate/models"

// Outcome reports pass/fail plus the badness score: the number of
// ingredients with no fully satisfying option. Lower badness is more
// compliant.
type Outcome struct {
	Passes  bool
	Badness int
}

// Match walks the recipe's nested structure. Options are judged
// independently per ingredient; there is no cross-ingredient assignment
// problem because the cook picks substitutions per slot.
func Match(r *models.Recipe, c models.Constraint) Outcome {
	items := toSet(c.Items)
	badness := 0
	for _, ing := range r.Ingredients {
		if !ingredientSatisfied(ing, c.Mode, items) {
			badness++
		}
	}
	return Outcome{
		Passes:  badness <= c.Flexibility,
		Badness: badness,
	}
}

// FullySatisfies reports whether one option clears the constraint on its
// own. An option with zero allergens satisfies any constraint.
func FullySatisfies(o models.Option, mode models.Mode, items []string) bool {
	return optionSatisfies(o, mode, toSet(items))
}

func ingredientSatisfied(ing models.Ingredient, mode models.Mode, items map[string]struct{}) bool {
	for _, opt := range ing.Options {
		if optionSatisfies(opt, mode, items) {
			return true
		}
	}
	return false
}

func optionSatisfies(o models.Option, mode models.Mode, items map[string]struct{}) bool {
	switch mode {
	case models.ModeSafes:
		// Every allergen must be a known safe.
		for _, a := range o.Allergens {
			if _, ok := items[a.NameSuggestable]; !ok {
				return false
			}
		}
		return true
	default:
		// ModeAllergens: no allergen may be in the excluded set.
		for _, a := range o.Allergens {
			if _, ok := items[a.NameSuggestable]; ok {
				return false
			}
		}
		return true
	}
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
