package validation_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-formstate/pkg/schema"
	"github.com/goliatone/go-formstate/pkg/validation"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestValidateEmail(t *testing.T) {
	engine := validation.NewEngine()
	field := schema.FieldDefinition{
		ID:       "email",
		Kind:     schema.KindEmail,
		Required: true,
		Validators: []schema.Validator{
			{Type: schema.ValidatorEmail},
		},
	}

	if got := engine.Validate(field, "a@b"); got != "Invalid email format" {
		t.Fatalf("Validate(a@b) = %q, want %q", got, "Invalid email format")
	}
	if got := engine.Validate(field, "a@b.com"); got != "" {
		t.Fatalf("Validate(a@b.com) = %q, want valid", got)
	}
}

func TestRequiredShortCircuits(t *testing.T) {
	engine := validation.NewEngine()
	field := schema.FieldDefinition{
		ID:       "email",
		Kind:     schema.KindEmail,
		Required: true,
		Validators: []schema.Validator{
			{Type: schema.ValidatorEmail},
			{Type: schema.ValidatorMinLength, Value: "5"},
		},
	}

	if got := engine.Validate(field, ""); got != "This field is required" {
		t.Fatalf("Validate(empty) = %q, want the required message", got)
	}
}

func TestRequiredCustomMessage(t *testing.T) {
	engine := validation.NewEngine()
	field := schema.FieldDefinition{
		ID:       "name",
		Kind:     schema.KindText,
		Required: true,
		Validators: []schema.Validator{
			{Type: schema.ValidatorRequired, Message: "Name is mandatory"},
		},
	}

	if got := engine.Validate(field, ""); got != "Name is mandatory" {
		t.Fatalf("Validate(empty) = %q, want the custom message", got)
	}
}

func TestEmptyOptionalValueIsValid(t *testing.T) {
	engine := validation.NewEngine()
	field := schema.FieldDefinition{
		ID:   "nickname",
		Kind: schema.KindText,
		Validators: []schema.Validator{
			{Type: schema.ValidatorMinLength, Value: "3"},
		},
	}

	if got := engine.Validate(field, ""); got != "" {
		t.Fatalf("Validate(empty optional) = %q, want valid", got)
	}
}

func TestMinLengthComparesStringLength(t *testing.T) {
	engine := validation.NewEngine()
	field := schema.FieldDefinition{
		ID:   "age",
		Kind: schema.KindNumber,
		Validators: []schema.Validator{
			{Type: schema.ValidatorMinLength, Value: "2"},
		},
	}

	if got := engine.Validate(field, "5"); got != "Must be at least 2 characters" {
		t.Fatalf("Validate(5) = %q, want %q", got, "Must be at least 2 characters")
	}
	if got := engine.Validate(field, "55"); got != "" {
		t.Fatalf("Validate(55) = %q, want valid", got)
	}
}

func TestMaxLength(t *testing.T) {
	engine := validation.NewEngine()
	field := schema.FieldDefinition{
		ID:   "code",
		Kind: schema.KindText,
		Validators: []schema.Validator{
			{Type: schema.ValidatorMaxLength, Value: "3"},
		},
	}

	if got := engine.Validate(field, "abcd"); got != "Must be at most 3 characters" {
		t.Fatalf("Validate(abcd) = %q, want max length message", got)
	}
}

func TestPatternValidator(t *testing.T) {
	engine := validation.NewEngine()
	field := schema.FieldDefinition{
		ID:   "zip",
		Kind: schema.KindText,
		Validators: []schema.Validator{
			{Type: schema.ValidatorPattern, Value: `^\d{5}$`, Message: "Five digits please"},
		},
	}

	if got := engine.Validate(field, "1234"); got != "Five digits please" {
		t.Fatalf("Validate(1234) = %q, want custom pattern message", got)
	}
	if got := engine.Validate(field, "12345"); got != "" {
		t.Fatalf("Validate(12345) = %q, want valid", got)
	}
}

func TestDateValidators(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	engine := validation.NewEngine(validation.WithClock(fixedClock(now)))

	future := schema.FieldDefinition{
		ID:   "due",
		Kind: schema.KindDate,
		Validators: []schema.Validator{
			{Type: schema.ValidatorFutureDate},
		},
	}
	past := schema.FieldDefinition{
		ID:   "born",
		Kind: schema.KindDate,
		Validators: []schema.Validator{
			{Type: schema.ValidatorPastDate},
		},
	}

	cases := []struct {
		name  string
		field schema.FieldDefinition
		value string
		want  string
	}{
		{"future ok", future, "2027-01-01", ""},
		{"future violated", future, "2020-01-01", "Date must be in the future"},
		{"past ok", past, "1990-05-04", ""},
		{"past violated", past, "2030-01-01", "Date must be in the past"},
		{"unparsable is a format error", future, "not-a-date", "Invalid date format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := engine.Validate(tc.field, tc.value); got != tc.want {
				t.Fatalf("Validate(%q) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestDateExplicitFormat(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	engine := validation.NewEngine(validation.WithClock(fixedClock(now)))
	field := schema.FieldDefinition{
		ID:     "when",
		Kind:   schema.KindDate,
		Format: "02/01/2006",
		Validators: []schema.Validator{
			{Type: schema.ValidatorPastDate},
		},
	}

	if got := engine.Validate(field, "04/05/1990"); got != "" {
		t.Fatalf("Validate(04/05/1990) = %q, want valid", got)
	}
	if got := engine.Validate(field, "1990-05-04"); got != "Invalid date format" {
		t.Fatalf("Validate(ISO against custom format) = %q, want format error", got)
	}
}

func TestPriorityOrderFirstFailureWins(t *testing.T) {
	engine := validation.NewEngine()
	field := schema.FieldDefinition{
		ID:   "contact",
		Kind: schema.KindEmail,
		Validators: []schema.Validator{
			{Type: schema.ValidatorMinLength, Value: "50"},
			{Type: schema.ValidatorEmail},
		},
	}

	// Email outranks min_length regardless of declaration order.
	if got := engine.Validate(field, "nope"); got != "Invalid email format" {
		t.Fatalf("Validate(nope) = %q, want the email failure first", got)
	}
}

func TestInvalidateDropsStaleLookup(t *testing.T) {
	engine := validation.NewEngine()
	field := schema.FieldDefinition{
		ID:   "code",
		Kind: schema.KindText,
		Validators: []schema.Validator{
			{Type: schema.ValidatorMinLength, Value: "3"},
		},
	}
	if got := engine.Validate(field, "ab"); got == "" {
		t.Fatal("expected min length failure")
	}

	engine.Invalidate("code")

	// Same id, fresh definition: the rebuilt lookup must be used.
	relaxed := schema.FieldDefinition{ID: "code", Kind: schema.KindText}
	if got := engine.Validate(relaxed, "ab"); got != "" {
		t.Fatalf("Validate after Invalidate = %q, want valid", got)
	}
}
