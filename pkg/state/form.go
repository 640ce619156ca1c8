package state

import (
	"fmt"

	"github.com/goliatone/go-formstate/pkg/schema"
)

// FormState aggregates the FieldStates of one form instance. It is owned by
// exactly one controller and mutated only on the form's logical thread of
// control.
type FormState struct {
	order       []string
	fields      map[string]*FieldState
	submitting  bool
	submitted   bool
	globalError string
}

// NewFormState populates the fields map once from the definition list. The
// list is expected to have passed schema.Validate; a duplicate id here is a
// programmer error.
func NewFormState(defs []schema.FieldDefinition) (*FormState, error) {
	s := &FormState{
		order:  make([]string, 0, len(defs)),
		fields: make(map[string]*FieldState, len(defs)),
	}
	for _, def := range defs {
		if _, dup := s.fields[def.ID]; dup {
			return nil, fmt.Errorf("state: duplicate field id %q", def.ID)
		}
		s.order = append(s.order, def.ID)
		s.fields[def.ID] = NewFieldState(def)
	}
	return s, nil
}

// Field returns the state for a field id.
func (s *FormState) Field(id string) (*FieldState, bool) {
	f, ok := s.fields[id]
	return f, ok
}

// FieldIDs returns the field ids in definition order.
func (s *FormState) FieldIDs() []string {
	return append([]string(nil), s.order...)
}

// IsValid reports the aggregate validity: the AND of every field's validity.
func (s *FormState) IsValid() bool {
	for _, id := range s.order {
		if !s.fields[id].IsValid() {
			return false
		}
	}
	return true
}

// HasModifications reports whether any field diverges from its initial value.
func (s *FormState) HasModifications() bool {
	for _, id := range s.order {
		if s.fields[id].IsModified() {
			return true
		}
	}
	return false
}

// FieldsNeedingValidation returns, in definition order, the fields that are
// modified or currently invalid. Unmodified valid fields cannot have become
// invalid, so a submit pass may skip them.
func (s *FormState) FieldsNeedingValidation() []string {
	var out []string
	for _, id := range s.order {
		f := s.fields[id]
		if f.IsModified() || !f.IsValid() {
			out = append(out, id)
		}
	}
	return out
}

// IsSubmitting reports whether a submit round is awaiting its collaborator.
func (s *FormState) IsSubmitting() bool { return s.submitting }

// SetSubmitting toggles the in-flight submission flag.
func (s *FormState) SetSubmitting(v bool) { s.submitting = v }

// IsSubmitted reports whether the form completed a successful submission.
func (s *FormState) IsSubmitted() bool { return s.submitted }

// MarkSubmitted flags the form and every field as submitted.
func (s *FormState) MarkSubmitted() {
	s.submitted = true
	for _, id := range s.order {
		s.fields[id].MarkSubmitted()
	}
}

// GlobalError returns the form-level error banner text, or "".
func (s *FormState) GlobalError() string { return s.globalError }

// SetGlobalError records a form-level error (submission failures).
func (s *FormState) SetGlobalError(msg string) { s.globalError = msg }

// Reset restores every field to its initial value in place and clears the
// form-level flags. The same FormState object stays live; callers observe one
// atomic transition.
func (s *FormState) Reset() {
	for _, id := range s.order {
		s.fields[id].Reset()
	}
	s.submitting = false
	s.submitted = false
	s.globalError = ""
}
