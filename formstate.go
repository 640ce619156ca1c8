// Package formstate is the root facade for the form state & validation
// engine. It re-exports the types callers touch most and provides the
// convenience constructors, mirroring the layout of the pkg/ tree: schemas in
// pkg/schema, validation in pkg/validation, runtime state in pkg/state, and
// orchestration in pkg/controller.
package formstate

import (
	"github.com/goliatone/go-formstate/pkg/controller"
	"github.com/goliatone/go-formstate/pkg/notify"
	"github.com/goliatone/go-formstate/pkg/schema"
	"github.com/goliatone/go-formstate/pkg/state"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// FieldDefinition describes one field of a form schema.
type FieldDefinition = schema.FieldDefinition

// Validator is a single validation rule bound to a field.
type Validator = schema.Validator

// Option is one selectable entry for select/multiselect fields.
type Option = schema.Option

// FieldKind enumerates the supported field kinds.
type FieldKind = schema.FieldKind

// Template is a serialised form definition.
type Template = schema.Template

// FieldEvent is the per-field notification payload.
type FieldEvent = notify.FieldEvent

// FormEvent is the form-level notification payload.
type FormEvent = notify.FormEvent

// FieldSnapshot is the JSON shape of one field's runtime state.
type FieldSnapshot = state.FieldSnapshot

// FormSnapshot is the JSON shape of a form's runtime state.
type FormSnapshot = state.FormSnapshot

// Controller orchestrates one form instance.
type Controller = controller.Controller

// ControllerOption customises a controller.
type ControllerOption = controller.Option

// SubmitFunc is the external submit collaborator contract.
type SubmitFunc = controller.SubmitFunc

// ValidateFunc is the pluggable validation contract.
type ValidateFunc = validation.Func

// Re-exported controller options.
var (
	WithSubmitHandler = controller.WithSubmitHandler
	WithValidateFunc  = controller.WithValidateFunc
	WithResetCallback = controller.WithResetCallback
	WithClock         = controller.WithClock
	WithIdleThreshold = controller.WithIdleThreshold
)

// New assembles a controller for the given schema. See controller.New.
func New(defs []FieldDefinition, opts ...ControllerOption) (*Controller, error) {
	return controller.New(defs, opts...)
}

// ParseTemplate decodes a form template from JSON or YAML.
func ParseTemplate(data []byte) (Template, error) {
	return schema.ParseTemplate(data)
}

// NewFromTemplate parses a template document and builds a controller from its
// field list in one step.
func NewFromTemplate(data []byte, opts ...ControllerOption) (*Controller, error) {
	tpl, err := schema.ParseTemplate(data)
	if err != nil {
		return nil, err
	}
	return controller.New(tpl.Fields, opts...)
}
