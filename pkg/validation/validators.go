package validation

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/goliatone/go-formstate/pkg/schema"
)

// Built-in failure messages. A validator's Message field overrides these.
const (
	msgRequired   = "This field is required"
	msgEmail      = "Invalid email format"
	msgPhone      = "Invalid phone number"
	msgPattern    = "Invalid format"
	msgDateFormat = "Invalid date format"
	msgFutureDate = "Date must be in the future"
	msgPastDate   = "Date must be in the past"
	msgMinLengthF = "Must be at least %s characters"
	msgMaxLengthF = "Must be at most %s characters"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s().-]{5,}$`)
)

// evaluate applies one validator to a non-empty value.
func (e *Engine) evaluate(field schema.FieldDefinition, v schema.Validator, value string) string {
	switch v.Type {
	case schema.ValidatorRequired:
		// Already satisfied: evaluate only sees non-empty values.
		return ""
	case schema.ValidatorEmail:
		if !emailPattern.MatchString(value) {
			return message(v, msgEmail)
		}
	case schema.ValidatorPhone:
		if !phonePattern.MatchString(value) {
			return message(v, msgPhone)
		}
	case schema.ValidatorPattern:
		re, ok := e.compile(v.Value)
		if !ok || !re.MatchString(value) {
			return message(v, msgPattern)
		}
	case schema.ValidatorFutureDate:
		parsed, err := parseDate(field, value)
		if err != nil {
			return message(v, msgDateFormat)
		}
		if !parsed.After(e.now()) {
			return message(v, msgFutureDate)
		}
	case schema.ValidatorPastDate:
		parsed, err := parseDate(field, value)
		if err != nil {
			return message(v, msgDateFormat)
		}
		if !parsed.Before(e.now()) {
			return message(v, msgPastDate)
		}
	case schema.ValidatorMinLength:
		// Length validators compare string length for every kind, number
		// fields included.
		if minLen, err := strconv.Atoi(v.Value); err == nil && len([]rune(value)) < minLen {
			return message(v, fmt.Sprintf(msgMinLengthF, v.Value))
		}
	case schema.ValidatorMaxLength:
		if maxLen, err := strconv.Atoi(v.Value); err == nil && len([]rune(value)) > maxLen {
			return message(v, fmt.Sprintf(msgMaxLengthF, v.Value))
		}
	}
	return ""
}

func message(v schema.Validator, fallback string) string {
	if v.Message != "" {
		return v.Message
	}
	return fallback
}
