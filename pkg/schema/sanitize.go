package schema

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips all markup from display text loaded from templates.
// Labels and option names travel straight into renderer output, so anything
// beyond plain text is dropped.
func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(displayTextSanitizer().Sanitize(trimmed))
}

func displayTextSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

func sanitizeField(field *FieldDefinition) {
	field.Label = sanitizeText(field.Label)
	field.Placeholder = sanitizeText(field.Placeholder)
	for i := range field.Options {
		field.Options[i].Name = sanitizeText(field.Options[i].Name)
	}
	for i := range field.Validators {
		field.Validators[i].Message = sanitizeText(field.Validators[i].Message)
	}
}
