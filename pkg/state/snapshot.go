package state

import "fmt"

// FieldSnapshot is the JSON shape of one field's state, used for draft
// save/restore across process boundaries.
type FieldSnapshot struct {
	Value        string `json:"value"`
	InitialValue string `json:"initialValue"`
	Initial      bool   `json:"initial"`
	Valid        bool   `json:"valid"`
	Submitted    bool   `json:"submitted"`
	Error        string `json:"error,omitempty"`
}

// FormSnapshot is the JSON shape of a whole form's state.
type FormSnapshot struct {
	Fields       map[string]FieldSnapshot `json:"fields"`
	IsSubmitting bool                     `json:"isSubmitting"`
	GlobalError  string                   `json:"globalError,omitempty"`
}

// Snapshot captures the field's observable state.
func (f *FieldState) Snapshot() FieldSnapshot {
	return FieldSnapshot{
		Value:        f.value,
		InitialValue: f.initialValue,
		Initial:      f.IsInitial(),
		Valid:        f.valid,
		Submitted:    f.submitted,
		Error:        f.err,
	}
}

// Snapshot captures the form's observable state.
func (s *FormState) Snapshot() FormSnapshot {
	fields := make(map[string]FieldSnapshot, len(s.fields))
	for _, id := range s.order {
		fields[id] = s.fields[id].Snapshot()
	}
	return FormSnapshot{
		Fields:       fields,
		IsSubmitting: s.submitting,
		GlobalError:  s.globalError,
	}
}

// RestoreSnapshot applies a previously captured snapshot onto this form.
// Snapshot fields with no matching definition are rejected rather than
// silently dropped; definitions missing from the snapshot keep their current
// state. The in-flight submitting flag is never restored.
func (s *FormState) RestoreSnapshot(snap FormSnapshot) error {
	for id := range snap.Fields {
		if _, ok := s.fields[id]; !ok {
			return fmt.Errorf("state: snapshot references unknown field %q", id)
		}
	}
	for id, fieldSnap := range snap.Fields {
		f := s.fields[id]
		f.initialValue = fieldSnap.InitialValue
		f.value = fieldSnap.Value
		f.valid = fieldSnap.Valid
		f.err = fieldSnap.Error
		f.submitted = fieldSnap.Submitted
	}
	s.globalError = snap.GlobalError
	return nil
}
