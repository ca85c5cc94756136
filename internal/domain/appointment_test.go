package domain

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "completed"} {
		st, err := ParseStatus(s)
		if err != nil || string(st) != s {
			t.Fatalf("ParseStatus(%q) = %q, %v", s, st, err)
		}
	}
	_, err := ParseStatus("archived")
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "status" {
		t.Fatalf("err = %v", err)
	}
}

func TestStatusToggleAndLabel(t *testing.T) {
	if StatusPending.Toggled() != StatusCompleted || StatusCompleted.Toggled() != StatusPending {
		t.Fatal("toggle mismatch")
	}
	if StatusPending.Label() != "Pending" || StatusCompleted.Label() != "Completed" {
		t.Fatal("label mismatch")
	}
	if (StatusChange{Status: "archived"}).Validate() == nil {
		t.Fatal("archived accepted")
	}
}

func TestParseTheme(t *testing.T) {
	if th, err := ParseTheme("dark"); err != nil || th != ThemeDark {
		t.Fatalf("dark: %q %v", th, err)
	}
	if _, err := ParseTheme("blue"); !IsValidation(err) {
		t.Fatalf("blue: %v", err)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	if !errors.Is(NotFound("user", "u1"), ErrNotFound) {
		t.Fatal("NotFound should wrap ErrNotFound")
	}
	cause := errors.New("conn reset")
	err := Storage("list", cause)
	if !IsStorage(err) || !errors.Is(err, cause) {
		t.Fatalf("storage = %v", err)
	}
	if Storage("noop", nil) != nil {
		t.Fatal("nil cause should yield nil")
	}
}

func TestUserDocument(t *testing.T) {
	u := &User{ID: "u1", Name: "A", Email: "a@x", Role: RoleUser, Extra: map[string]any{"phone": "1", "id": "spoof"}}
	doc := u.Document()
	if doc["id"] != "u1" || doc["phone"] != "1" || doc["name"] != "A" {
		t.Fatalf("doc = %v", doc)
	}
}
