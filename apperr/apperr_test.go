package apperr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassification(t *testing.T) {
	v := Validation("bad %s", "field")
	if !IsValidation(v) || IsNotFound(v) || IsUnauthorized(v) {
		t.Errorf("validation error misclassified: %v", v)
	}
	if v.Error() != "bad request: bad field" {
		t.Errorf("message = %q", v.Error())
	}

	nf := NotFound("recipe %q", "cake")
	if !IsNotFound(nf) || IsValidation(nf) {
		t.Errorf("not-found error misclassified: %v", nf)
	}

	if !IsUnauthorized(ErrUnauthorized) {
		t.Error("ErrUnauthorized should classify as unauthorized")
	}
}

func TestStoreWrapsCause(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := Store(cause)
	if !errors.Is(err, ErrStore) {
		t.Error("Store should wrap ErrStore")
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Error("Store should keep the cause in the message")
	}
	if IsValidation(err) || IsNotFound(err) {
		t.Errorf("store error misclassified: %v", err)
	}
}

func TestClassifiersHandleNil(t *testing.T) {
	if IsValidation(nil) || IsNotFound(nil) || IsUnauthorized(nil) {
		t.Error("nil should not classify as any app error")
	}
}
