package state_test

import (
	"testing"

	"github.com/goliatone/go-formstate/pkg/schema"
	"github.com/goliatone/go-formstate/pkg/state"
)

func TestBooleanModificationIsCaseInsensitive(t *testing.T) {
	f := state.NewFieldState(schema.FieldDefinition{
		ID:           "newsletter",
		Kind:         schema.KindBoolean,
		InitialValue: "false",
	})

	f.Apply("False", "")
	if f.IsModified() {
		t.Fatal("\"False\" vs \"false\" must not count as a modification")
	}
	f.Apply("true", "")
	if !f.IsModified() {
		t.Fatal("\"true\" vs \"false\" must count as a modification")
	}
}

func TestModificationIsReentrant(t *testing.T) {
	f := state.NewFieldState(schema.FieldDefinition{
		ID:           "name",
		Kind:         schema.KindText,
		InitialValue: "Ada",
	})

	f.Apply("Grace", "")
	if !f.IsModified() || f.IsInitial() {
		t.Fatal("diverged value must be modified")
	}

	// Editing back to the initial value clears the modification.
	f.Apply("Ada", "")
	if f.IsModified() || !f.IsInitial() {
		t.Fatal("value returned to initial must be unmodified")
	}
}

func TestMultiSelectComparesIDSets(t *testing.T) {
	f := state.NewFieldState(schema.FieldDefinition{
		ID:           "tags",
		Kind:         schema.KindMultiSelect,
		InitialValue: "a,b,c",
	})

	f.Apply("c, a ,b", "")
	if f.IsModified() {
		t.Fatal("reordered id list must not count as a modification")
	}
	f.Apply("a,b", "")
	if !f.IsModified() {
		t.Fatal("removed id must count as a modification")
	}
}

func TestApplyKeepsValidityInStepWithValue(t *testing.T) {
	f := state.NewFieldState(schema.FieldDefinition{ID: "email", Kind: schema.KindEmail})

	f.Apply("nope", "Invalid email format")
	if f.IsValid() || f.Error() != "Invalid email format" {
		t.Fatalf("state after failing Apply: valid=%v error=%q", f.IsValid(), f.Error())
	}
	f.Apply("a@b.com", "")
	if !f.IsValid() || f.Error() != "" {
		t.Fatalf("state after passing Apply: valid=%v error=%q", f.IsValid(), f.Error())
	}
}

func TestFieldReset(t *testing.T) {
	f := state.NewFieldState(schema.FieldDefinition{
		ID:           "name",
		Kind:         schema.KindText,
		InitialValue: "Ada",
	})
	f.Apply("Grace", "too long")
	f.MarkSubmitted()

	f.Reset()

	if f.Value() != "Ada" || !f.IsValid() || f.Error() != "" || f.IsSubmitted() || f.IsModified() {
		t.Fatalf("reset field = %+v", f.Snapshot())
	}
}
