package matcher

import (
	"testing"

	"safeplate/models"
)

// The fixture corpus mirrors a small household recipe box. Allergen names
// are already canonical, as they would be after indexing.
func opt(name string, allergens ...string) models.Option {
	o := models.Option{Name: name, NameSuggestable: name}
	for _, a := range allergens {
		o.Allergens = append(o.Allergens, models.Allergen{Name: a, NameSuggestable: a})
	}
	return o
}

func ing(options ...models.Option) models.Ingredient {
	return models.Ingredient{Options: options}
}

func fixtures() map[string]*models.Recipe {
	cookies := &models.Recipe{
		Name: "Cookies",
		Ingredients: []models.Ingredient{
			ing(
				opt("chocolate milk", "milk", "cocoa"),
				opt("coconut chocolate milk", "coconut", "cocoa"),
			),
			ing(opt("egg", "egg")),
		},
	}
	cake := &models.Recipe{
		Name: "Cake",
		Ingredients: []models.Ingredient{
			ing(opt("milk", "milk")),
		},
	}
	iceCream := &models.Recipe{
		Name: "Ice Cream",
		Ingredients: []models.Ingredient{
			ing(
				opt("chocolate milk", "milk", "cocoa"),
				opt("coconut chocolate milk", "coconut", "cocoa"),
			),
		},
	}
	coconut := &models.Recipe{
		Name: "Coconut",
		Ingredients: []models.Ingredient{
			ing(opt("coconut", "coconut")),
		},
	}
	return map[string]*models.Recipe{
		"Cookies":   cookies,
		"Cake":      cake,
		"Ice Cream": iceCream,
		"Coconut":   coconut,
	}
}

func passing(t *testing.T, c models.Constraint) map[string]bool {
	t.Helper()
	got := make(map[string]bool)
	for name, r := range fixtures() {
		got[name] = Match(r, c).Passes
	}
	return got
}

func TestMatchSafesMode(t *testing.T) {
	got := passing(t, models.Constraint{
		Mode:  models.ModeSafes,
		Items: []string{"milk", "cocoa"},
	})
	want := map[string]bool{
		"Cookies":   false, // egg ingredient has no safe option
		"Cake":      true,
		"Ice Cream": true,
		"Coconut":   false,
	}
	for name, w := range want {
		if got[name] != w {
			t.Errorf("safes {milk,cocoa}: %s passes = %v, want %v", name, got[name], w)
		}
	}
}

func TestMatchSafesModeWithSubstitution(t *testing.T) {
	got := passing(t, models.Constraint{
		Mode:  models.ModeSafes,
		Items: []string{"egg", "coconut", "cocoa"},
	})
	want := map[string]bool{
		"Cookies":   true, // coconut chocolate milk substitutes in
		"Cake":      false,
		"Ice Cream": true,
		"Coconut":   true,
	}
	for name, w := range want {
		if got[name] != w {
			t.Errorf("safes {egg,coconut,cocoa}: %s passes = %v, want %v", name, got[name], w)
		}
	}
}

func TestMatchAllergensMode(t *testing.T) {
	got := passing(t, models.Constraint{
		Mode:  models.ModeAllergens,
		Items: []string{"milk"},
	})
	want := map[string]bool{
		"Cookies":   true,
		"Cake":      false,
		"Ice Cream": true,
		"Coconut":   true,
	}
	for name, w := range want {
		if got[name] != w {
			t.Errorf("allergens {milk}: %s passes = %v, want %v", name, got[name], w)
		}
	}
}

func TestMatchFlexibilityBudget(t *testing.T) {
	cookies := fixtures()["Cookies"]
	c := models.Constraint{
		Mode:  models.ModeAllergens,
		Items: []string{"cocoa", "egg"},
	}

	// Both ingredients are unsatisfiable, so badness is exactly 2.
	out := Match(cookies, c)
	if out.Badness != 2 {
		t.Fatalf("badness = %d, want 2", out.Badness)
	}
	if out.Passes {
		t.Error("flexibility 0 should not pass with badness 2")
	}

	c.Flexibility = 1
	if Match(cookies, c).Passes {
		t.Error("flexibility 1 should not pass with badness 2")
	}

	c.Flexibility = 2
	if !Match(cookies, c).Passes {
		t.Error("flexibility 2 should pass with badness 2")
	}
}

func TestZeroAllergenOptionAlwaysSatisfies(t *testing.T) {
	r := &models.Recipe{
		Name: "Water",
		Ingredients: []models.Ingredient{
			ing(opt("water")),
		},
	}
	constraints := []models.Constraint{
		{Mode: models.ModeSafes, Items: nil},
		{Mode: models.ModeSafes, Items: []string{"milk"}},
		{Mode: models.ModeAllergens, Items: nil},
		{Mode: models.ModeAllergens, Items: []string{"milk", "egg", "coconut"}},
	}
	for _, c := range constraints {
		if out := Match(r, c); !out.Passes || out.Badness != 0 {
			t.Errorf("mode %q items %v: got %+v, want pass with badness 0", c.Mode, c.Items, out)
		}
	}
}

func TestEmptyItemsAcrossModes(t *testing.T) {
	cake := fixtures()["Cake"]

	// No safes: everything with allergens fails.
	if Match(cake, models.Constraint{Mode: models.ModeSafes}).Passes {
		t.Error("empty safes set should reject an allergenic recipe")
	}
	// No exclusions: everything passes.
	if !Match(cake, models.Constraint{Mode: models.ModeAllergens}).Passes {
		t.Error("empty allergen set should accept any recipe")
	}
}

// Growing the safe set never hurts a recipe; growing the excluded set
// never helps one.
func TestMonotonicity(t *testing.T) {
	recipes := fixtures()
	base := []string{"milk"}
	wider := []string{"milk", "cocoa", "egg", "coconut"}

	for name, r := range recipes {
		narrowSafe := Match(r, models.Constraint{Mode: models.ModeSafes, Items: base}).Badness
		wideSafe := Match(r, models.Constraint{Mode: models.ModeSafes, Items: wider}).Badness
		if wideSafe > narrowSafe {
			t.Errorf("%s: widening safes raised badness %d -> %d", name, narrowSafe, wideSafe)
		}

		narrowExcl := Match(r, models.Constraint{Mode: models.ModeAllergens, Items: base}).Badness
		wideExcl := Match(r, models.Constraint{Mode: models.ModeAllergens, Items: wider}).Badness
		if wideExcl < narrowExcl {
			t.Errorf("%s: widening exclusions lowered badness %d -> %d", name, narrowExcl, wideExcl)
		}
	}
}

func TestFullySatisfies(t *testing.T) {
	milk := opt("chocolate milk", "milk", "cocoa")
	coco := opt("coconut chocolate milk", "coconut", "cocoa")

	if !FullySatisfies(milk, models.ModeSafes, []string{"milk", "cocoa"}) {
		t.Error("chocolate milk should satisfy safes {milk,cocoa}")
	}
	if FullySatisfies(coco, models.ModeSafes, []string{"milk", "cocoa"}) {
		t.Error("coconut chocolate milk should not satisfy safes {milk,cocoa}")
	}
	if FullySatisfies(milk, models.ModeAllergens, []string{"milk"}) {
		t.Error("chocolate milk should fail when milk is excluded")
	}
	if !FullySatisfies(coco, models.ModeAllergens, []string{"milk"}) {
		t.Error("coconut chocolate milk should pass when only milk is excluded")
	}
}
