package validation

import (
	"fmt"
	"time"

	"github.com/goliatone/go-formstate/pkg/schema"
)

// Fallback layouts when a field carries no explicit format.
var (
	dateLayouts     = []string{"2006-01-02"}
	dateTimeLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04"}
)

// parseDate parses a date or datetime value strictly. The field's Format, if
// present, is a Go reference layout and is the only layout tried. A parse
// failure is a distinct error from a future/past violation.
func parseDate(field schema.FieldDefinition, value string) (time.Time, error) {
	if field.Format != "" {
		return time.Parse(field.Format, value)
	}

	layouts := dateLayouts
	if field.Kind == schema.KindDateTime {
		layouts = dateTimeLayouts
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("validation: unparsable date %q", value)
}
