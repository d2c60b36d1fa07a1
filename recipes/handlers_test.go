package recipes

import (
	"net/http/httptest"
	"reflect"
	"testing"

	"safeplate/apperr"
)

func TestParseSearchParams(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/api/recipes?search=choc&tags=dessert,%20snack&safes=Milk,Cocoa&flexibility=2&prefix=true&from=10&size=20&seed=99", nil)
	p, err := parseSearchParams(r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Search != "choc" || !p.Prefix || p.Flexibility != 2 || p.From != 10 || p.Size != 20 {
		t.Errorf("params = %+v", p)
	}
	if !reflect.DeepEqual(p.Tags, []string{"dessert", "snack"}) {
		t.Errorf("tags = %v", p.Tags)
	}
	if !reflect.DeepEqual(p.Safes, []string{"Milk", "Cocoa"}) {
		t.Errorf("safes = %v", p.Safes)
	}
	if p.Seed == nil || *p.Seed != 99 {
		t.Errorf("seed = %v", p.Seed)
	}
}

func TestParseSearchParamsDefaults(t *testing.T) {
	p, err := parseSearchParams(httptest.NewRequest("GET", "/api/recipes", nil))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Safes != nil || p.Allergens != nil || p.Tags != nil {
		t.Errorf("absent lists should be nil: %+v", p)
	}
	if p.Seed != nil {
		t.Errorf("absent seed should be nil: %v", p.Seed)
	}
	if p.Prefix || p.Unapproved || p.All {
		t.Errorf("flags should default false: %+v", p)
	}
}

func TestParseSearchParamsRejectsBadNumbers(t *testing.T) {
	for _, query := range []string{
		"flexibility=two", "from=1.5", "size=lots", "seed=abc",
	} {
		_, err := parseSearchParams(httptest.NewRequest("GET", "/api/recipes?"+query, nil))
		if !apperr.IsValidation(err) {
			t.Errorf("%s: got %v, want validation error", query, err)
		}
	}
}

func TestSplitCSV(t *testing.T) {
	if got := splitCSV(""); got != nil {
		t.Errorf("empty input should be nil, got %v", got)
	}
	if got := splitCSV("a, b ,c"); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("splitCSV = %v", got)
	}
}
