package engine

import (
	"errors"
	"testing"
)

func TestFieldErrorField(t *testing.T) {
	single := FieldError{Columns: []string{"email"}}
	if single.Field() != "email" {
		t.Errorf("Field() = %q, want %q", single.Field(), "email")
	}

	composite := FieldError{Columns: []string{"first", "last"}}
	if composite.Field() != "first, last" {
		t.Errorf("Field() = %q, want %q", composite.Field(), "first, last")
	}
}

func TestSplitComposite(t *testing.T) {
	fe := FieldError{
		Columns:  []string{"a", "b", "c"},
		Category: CategoryUnique,
		Message:  "is already taken",
	}

	parts := SplitComposite(fe)
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	for i, col := range []string{"a", "b", "c"} {
		if parts[i].Field() != col {
			t.Errorf("part %d field = %q, want %q", i, parts[i].Field(), col)
		}
		if parts[i].Category != CategoryUnique {
			t.Errorf("part %d lost its category", i)
		}
		if parts[i].Message != fe.Message {
			t.Errorf("part %d lost its message", i)
		}
	}
}

func TestValidationFailureError(t *testing.T) {
	f := &ValidationFailure{
		Schema: "public",
		Table:  "users",
		Errors: []FieldError{
			{Columns: []string{"name"}, Category: CategoryNotNull, Message: "is not present"},
			{Columns: []string{"email"}, Category: CategoryUnique, Message: "is already taken"},
		},
	}

	want := "validation failed on public.users: name is not present; email is already taken"
	if f.Error() != want {
		t.Errorf("Error() = %q, want %q", f.Error(), want)
	}
}

func TestValidationFailureUnwrap(t *testing.T) {
	cause := errors.New("original violation")
	f := &ValidationFailure{cause: cause}

	if !errors.Is(f, cause) {
		t.Error("errors.Is cannot reach the cause")
	}
	if f.Cause() != cause {
		t.Error("Cause() does not return the original violation")
	}
}

func TestValidationFailureOn(t *testing.T) {
	f := &ValidationFailure{
		Errors: []FieldError{
			{Columns: []string{"name"}},
			{Columns: []string{"a", "b"}},
		},
	}

	for _, col := range []string{"name", "a", "b"} {
		if !f.On(col) {
			t.Errorf("On(%q) = false, want true", col)
		}
	}
	if f.On("missing") {
		t.Error(`On("missing") = true, want false`)
	}
}
