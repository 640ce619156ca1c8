// Package notify implements the publish/subscribe channels that let a
// renderer repaint only the fields that changed. One hub serves one form
// instance: a channel per field plus a form-level channel for aggregate
// flags.
//
// The hub assumes the engine's single logical thread of control and does not
// lock. Hosts that drive forms from multiple goroutines must serialise their
// calls into the owning controller.
package notify

// FieldEvent describes one logical change to a field's observable state.
// Mutations that compose one change (value, validity, and error moving
// together) arrive as a single event.
type FieldEvent struct {
	FormID    string
	FieldID   string
	Value     string
	Valid     bool
	Error     string
	Modified  bool
	Submitted bool
}

// FormEvent describes one logical change to the form-level aggregates.
type FormEvent struct {
	FormID      string
	Valid       bool
	Submitting  bool
	Submitted   bool
	GlobalError string
	Reset       bool
}

type fieldSubscription struct {
	id int
	fn func(FieldEvent)
}

type formSubscription struct {
	id int
	fn func(FormEvent)
}

// Hub fans events out to per-field and form-level subscribers.
type Hub struct {
	nextID int
	fields map[string][]fieldSubscription
	form   []formSubscription
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{fields: make(map[string][]fieldSubscription)}
}

// SubscribeField registers fn for one field's events and returns a cancel
// function. Cancelling twice is a no-op.
func (h *Hub) SubscribeField(fieldID string, fn func(FieldEvent)) func() {
	if fn == nil {
		return func() {}
	}
	h.nextID++
	sub := fieldSubscription{id: h.nextID, fn: fn}
	h.fields[fieldID] = append(h.fields[fieldID], sub)
	return func() {
		subs := h.fields[fieldID]
		for i := range subs {
			if subs[i].id == sub.id {
				h.fields[fieldID] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// SubscribeForm registers fn for form-level events and returns a cancel
// function.
func (h *Hub) SubscribeForm(fn func(FormEvent)) func() {
	if fn == nil {
		return func() {}
	}
	h.nextID++
	sub := formSubscription{id: h.nextID, fn: fn}
	h.form = append(h.form, sub)
	return func() {
		for i := range h.form {
			if h.form[i].id == sub.id {
				h.form = append(h.form[:i], h.form[i+1:]...)
				return
			}
		}
	}
}

// PublishField delivers an event to the field's subscribers in subscription
// order. The subscriber list is copied first so a callback that unsubscribes
// does not disturb delivery.
func (h *Hub) PublishField(ev FieldEvent) {
	subs := append([]fieldSubscription(nil), h.fields[ev.FieldID]...)
	for _, sub := range subs {
		sub.fn(ev)
	}
}

// PublishForm delivers an event to the form-level subscribers.
func (h *Hub) PublishForm(ev FormEvent) {
	subs := append([]formSubscription(nil), h.form...)
	for _, sub := range subs {
		sub.fn(ev)
	}
}
