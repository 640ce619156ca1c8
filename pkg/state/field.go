package state

import (
	"strings"

	"github.com/goliatone/go-formstate/pkg/schema"
)

// FieldState is the mutable runtime state of one field. It is created from a
// FieldDefinition when the form mounts and lives until teardown.
//
// Modification is a pure function of the current value against the captured
// initial value: editing a field back to its initial value makes it
// unmodified again. (A sticky dirty flag would be an equally defensible rule;
// this package uses the re-entrant one so reset idempotence falls out for
// free.)
type FieldState struct {
	id           string
	kind         schema.FieldKind
	value        string
	initialValue string
	valid        bool
	err          string
	submitted    bool
}

// NewFieldState creates the runtime state for a definition, seeded with its
// initial value. Validity is unknown until the first validation pass; the
// owning controller validates immediately after construction.
func NewFieldState(def schema.FieldDefinition) *FieldState {
	return &FieldState{
		id:           def.ID,
		kind:         def.Kind,
		value:        def.InitialValue,
		initialValue: def.InitialValue,
		valid:        true,
	}
}

// ID returns the owning field's id.
func (f *FieldState) ID() string { return f.id }

// Value returns the current value.
func (f *FieldState) Value() string { return f.value }

// InitialValue returns the value captured at creation or reset time.
func (f *FieldState) InitialValue() string { return f.initialValue }

// IsValid reports the result of the last validation pass.
func (f *FieldState) IsValid() bool { return f.valid }

// Error returns the message from the last failed validation, or "".
func (f *FieldState) Error() string { return f.err }

// IsSubmitted reports whether the field was part of a completed submission.
func (f *FieldState) IsSubmitted() bool { return f.submitted }

// IsModified reports whether the current value diverges from the initial
// value, using the kind-specific comparison.
func (f *FieldState) IsModified() bool {
	return !equalForKind(f.kind, f.value, f.initialValue)
}

// IsInitial is the complement of IsModified.
func (f *FieldState) IsInitial() bool { return !f.IsModified() }

// Apply records a new value together with its validation outcome. The two
// always change in one step so validity is never stale relative to the value.
func (f *FieldState) Apply(value, errMsg string) {
	f.value = value
	f.err = errMsg
	f.valid = errMsg == ""
}

// MarkSubmitted flags the field as part of a successful submission round.
func (f *FieldState) MarkSubmitted() { f.submitted = true }

// Reset restores the field to its captured initial value and clears the
// submitted flag and error.
func (f *FieldState) Reset() {
	f.value = f.initialValue
	f.err = ""
	f.valid = true
	f.submitted = false
}

// equalForKind compares two canonical values under the field kind's rules.
// Boolean fields compare case-insensitively so "True" versus "true" does not
// read as a modification; multiselect fields compare as id sets so reordering
// a delimited list is not a modification either.
func equalForKind(kind schema.FieldKind, a, b string) bool {
	switch kind {
	case schema.KindBoolean:
		return strings.EqualFold(a, b)
	case schema.KindMultiSelect:
		return equalIDSets(a, b)
	default:
		return a == b
	}
}

func equalIDSets(a, b string) bool {
	if a == b {
		return true
	}
	as, bs := splitIDs(a), splitIDs(b)
	if len(as) != len(bs) {
		return false
	}
	seen := make(map[string]struct{}, len(as))
	for _, id := range as {
		seen[id] = struct{}{}
	}
	for _, id := range bs {
		if _, ok := seen[id]; !ok {
			return false
		}
	}
	return true
}

func splitIDs(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
