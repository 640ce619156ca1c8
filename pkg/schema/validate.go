package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var (
	errFieldIDMissing = errors.New("schema: field id is required")
	errNoFields       = errors.New("schema: form requires at least one field")
)

// Validate checks a field definition list for construction-time schema
// errors: missing or duplicate ids, unparsable validator patterns, and
// non-numeric length thresholds. A form must not be built from a list that
// fails this check.
func Validate(fields []FieldDefinition) error {
	if len(fields) == 0 {
		return errNoFields
	}

	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if field.ID == "" {
			return errFieldIDMissing
		}
		if _, dup := seen[field.ID]; dup {
			return fmt.Errorf("schema: duplicate field id %q", field.ID)
		}
		seen[field.ID] = struct{}{}

		if err := validateValidators(field); err != nil {
			return err
		}
	}
	return nil
}

func validateValidators(field FieldDefinition) error {
	for _, v := range field.Validators {
		switch v.Type {
		case ValidatorPattern:
			if v.Value == "" {
				return fmt.Errorf("schema: field %q: pattern validator requires a value", field.ID)
			}
			if _, err := regexp.Compile(v.Value); err != nil {
				return fmt.Errorf("schema: field %q: invalid pattern %q: %w", field.ID, v.Value, err)
			}
		case ValidatorMinLength, ValidatorMaxLength:
			n, err := strconv.Atoi(v.Value)
			if err != nil || n < 0 {
				return fmt.Errorf("schema: field %q: %s validator requires a non-negative integer, got %q", field.ID, v.Type, v.Value)
			}
		case ValidatorRequired, ValidatorEmail, ValidatorPhone, ValidatorFutureDate, ValidatorPastDate:
			// No value needed.
		default:
			return fmt.Errorf("schema: field %q: unknown validator type %q", field.ID, v.Type)
		}
	}
	return nil
}
