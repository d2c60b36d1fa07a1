package models

import (
	"fmt"
	"testing"
)

func TestModeString(t *testing.T) {
	if got := fmt.Sprintf("%q", ModeSafes); got != `"safes"` {
		t.Errorf("ModeSafes renders as %s", got)
	}
	if got := fmt.Sprintf("%q", ModeAllergens); got != `"allergens"` {
		t.Errorf("ModeAllergens renders as %s", got)
	}
}
