// Package controller orchestrates a form instance: it owns the form state,
// the validation engine, the notification hub, and the resource manager, and
// exposes the operations renderers call into. All mutation happens on one
// logical thread of control; the only blocking operation is Submit, which
// awaits the external submit collaborator.
package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formstate/pkg/notify"
	"github.com/goliatone/go-formstate/pkg/resources"
	"github.com/goliatone/go-formstate/pkg/schema"
	"github.com/goliatone/go-formstate/pkg/state"
	"github.com/goliatone/go-formstate/pkg/validation"
)

var (
	// ErrUnknownField flags a lookup for a field id absent from the schema.
	// Callers hitting this have a schema/caller bug; the operation aborts
	// instead of silently ignoring it.
	ErrUnknownField = errors.New("controller: unknown field id")

	// ErrSubmitInFlight flags a Submit call while a previous submission is
	// still awaiting its collaborator. Concurrent submits are a caller
	// error, never queued or merged.
	ErrSubmitInFlight = errors.New("controller: submit already in flight")

	// ErrNoSubmitHandler flags a Submit call on a controller constructed
	// without a submit collaborator.
	ErrNoSubmitHandler = errors.New("controller: no submit handler configured")
)

// SubmitFunc is the external submit collaborator. It receives a read-only
// projection of field id to value restricted to fields flagged for output,
// and may block (a network call); failure is reported through the returned
// error.
type SubmitFunc func(ctx context.Context, values map[string]string) error

// Option customises a Controller.
type Option func(*Controller)

// WithSubmitHandler sets the external submit collaborator.
func WithSubmitHandler(fn SubmitFunc) Option {
	return func(c *Controller) { c.submitFn = fn }
}

// WithValidateFunc replaces the built-in validation engine for this form
// instance.
func WithValidateFunc(fn validation.Func) Option {
	return func(c *Controller) {
		if fn != nil {
			c.validate = fn
		}
	}
}

// WithResetCallback registers a callback fired after a reset completes.
func WithResetCallback(fn func()) Option {
	return func(c *Controller) { c.onReset = fn }
}

// WithClock overrides the time source for the validation engine and the
// resource manager.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIdleThreshold overrides the resource reclamation debounce interval.
func WithIdleThreshold(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.idle = d
		}
	}
}

// Controller is the facade renderers drive. It owns every stateful
// collaborator for one form instance; nothing is shared across forms except
// the immutable definitions.
type Controller struct {
	id        string
	defs      []schema.FieldDefinition
	index     map[string]schema.FieldDefinition
	state     *state.FormState
	engine    *validation.Engine
	validate  validation.Func
	hub       *notify.Hub
	resources *resources.Manager
	submitFn  SubmitFunc
	onReset   func()
	now       func() time.Time
	idle      time.Duration
}

// New validates the schema and assembles a controller. Schema errors
// (duplicate ids, bad patterns) are fatal here: a form must not be usable in
// that state. Every field is validated once during construction so the
// validity invariant holds before the first interaction.
func New(defs []schema.FieldDefinition, opts ...Option) (*Controller, error) {
	if err := schema.Validate(defs); err != nil {
		return nil, err
	}

	formState, err := state.NewFormState(defs)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		id:    uuid.NewString(),
		defs:  append([]schema.FieldDefinition(nil), defs...),
		index: make(map[string]schema.FieldDefinition, len(defs)),
		state: formState,
		hub:   notify.NewHub(),
		now:   time.Now,
		idle:  resources.DefaultIdleThreshold,
	}
	for _, def := range c.defs {
		c.index[def.ID] = def
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	c.engine = validation.NewEngine(validation.WithClock(c.now))
	if c.validate == nil {
		c.validate = c.engine.Validate
	}
	c.resources = resources.NewManager(
		c.currentValue,
		resources.WithClock(c.now),
		resources.WithIdleThreshold(c.idle),
		resources.WithDestroyHook(c.engine.Invalidate),
	)

	// Initial pass: required-but-empty fields start invalid, and submit's
	// fieldsNeedingValidation optimisation can trust stored validity.
	for _, def := range c.defs {
		fs, _ := c.state.Field(def.ID)
		fs.Apply(fs.Value(), c.validate(def, fs.Value()))
	}

	return c, nil
}

// ID returns the unique id of this form instance.
func (c *Controller) ID() string { return c.id }

// Definitions returns the form's field definitions in order.
func (c *Controller) Definitions() []schema.FieldDefinition {
	return append([]schema.FieldDefinition(nil), c.defs...)
}

// State exposes the form state aggregate for read access and snapshots.
func (c *Controller) State() *state.FormState { return c.state }

// SubscribeField registers a per-field observer.
func (c *Controller) SubscribeField(fieldID string, fn func(notify.FieldEvent)) func() {
	return c.hub.SubscribeField(fieldID, fn)
}

// SubscribeForm registers a form-level observer.
func (c *Controller) SubscribeForm(fn func(notify.FormEvent)) func() {
	return c.hub.SubscribeForm(fn)
}

// UpdateFieldValue validates and applies a new value for the field. Setting
// the value a field already holds is a no-op: no validation, no
// notification. Otherwise the field channel receives exactly one event, and
// the form channel one more only when the aggregate validity flipped.
func (c *Controller) UpdateFieldValue(fieldID, value string) error {
	def, ok := c.index[fieldID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, fieldID)
	}
	fs, _ := c.state.Field(fieldID)
	if fs.Value() == value {
		return nil
	}

	wasValid := c.state.IsValid()
	fs.Apply(value, c.validate(def, value))

	if buf := c.bufferIfLive(fieldID); buf != nil && buf.Text() != value {
		buf.SetText(value)
	}

	c.publishField(fs)
	if c.state.IsValid() != wasValid {
		c.publishForm(false)
	}
	return nil
}

// Reset restores every field to its captured initial value in one atomic
// transition, clears the global error and submitted flags, and notifies each
// channel once. The reset callback fires last.
func (c *Controller) Reset() {
	c.state.Reset()
	for _, id := range c.state.FieldIDs() {
		if buf := c.bufferIfLive(id); buf != nil {
			fs, _ := c.state.Field(id)
			buf.SetText(fs.Value())
		}
		fs, _ := c.state.Field(id)
		c.publishField(fs)
	}
	c.publishForm(true)
	if c.onReset != nil {
		c.onReset()
	}
}

// MarkVisible reports that the renderer started displaying the field.
func (c *Controller) MarkVisible(fieldID string) error {
	if _, ok := c.index[fieldID]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, fieldID)
	}
	c.resources.MarkVisible(fieldID)
	return nil
}

// MarkInvisible reports that the field left the screen. Its resources stay
// alive until the next debounced sweep.
func (c *Controller) MarkInvisible(fieldID string) error {
	if _, ok := c.index[fieldID]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, fieldID)
	}
	c.resources.MarkInvisible(fieldID)
	return nil
}

// EditBuffer returns the field's editing resource, allocating it on first
// access seeded with the field's current value.
func (c *Controller) EditBuffer(fieldID string) (*resources.EditBuffer, error) {
	if _, ok := c.index[fieldID]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, fieldID)
	}
	return c.resources.GetOrCreate(fieldID), nil
}

// Close tears the form down, destroying every editing resource.
func (c *Controller) Close() {
	c.resources.Close()
}

func (c *Controller) currentValue(fieldID string) (string, bool) {
	fs, ok := c.state.Field(fieldID)
	if !ok {
		return "", false
	}
	return fs.Value(), true
}

func (c *Controller) bufferIfLive(fieldID string) *resources.EditBuffer {
	if !c.resources.Has(fieldID) {
		return nil
	}
	return c.resources.GetOrCreate(fieldID)
}

func (c *Controller) publishField(fs *state.FieldState) {
	c.hub.PublishField(notify.FieldEvent{
		FormID:    c.id,
		FieldID:   fs.ID(),
		Value:     fs.Value(),
		Valid:     fs.IsValid(),
		Error:     fs.Error(),
		Modified:  fs.IsModified(),
		Submitted: fs.IsSubmitted(),
	})
}

func (c *Controller) publishForm(reset bool) {
	c.hub.PublishForm(notify.FormEvent{
		FormID:      c.id,
		Valid:       c.state.IsValid(),
		Submitting:  c.state.IsSubmitting(),
		Submitted:   c.state.IsSubmitted(),
		GlobalError: c.state.GlobalError(),
		Reset:       reset,
	})
}
