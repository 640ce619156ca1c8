// Package resources owns the per-field editing resources of one form: lazily
// allocated edit buffers, a renderer-reported visibility set, and a debounced
// reclamation sweep that frees resources for fields that scrolled out of
// view. Long forms render only a window of their fields; without the sweep
// every field touched during scrolling would hold a live buffer until
// teardown.
package resources

import "time"

// DefaultIdleThreshold is the minimum interval between reclamation sweeps.
const DefaultIdleThreshold = time.Minute

// SeedFunc supplies the current value for a field so freshly allocated
// buffers start in sync with form state.
type SeedFunc func(fieldID string) (string, bool)

// Option customises a Manager.
type Option func(*Manager)

// WithIdleThreshold overrides the sweep debounce interval.
func WithIdleThreshold(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.idle = d
		}
	}
}

// WithClock overrides the time source. Tests inject a fake clock here.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithDestroyHook registers a callback invoked with the field id whenever a
// resource is destroyed. The controller uses it to purge the field's
// validator cache entry alongside the buffer.
func WithDestroyHook(fn func(fieldID string)) Option {
	return func(m *Manager) {
		m.onDestroy = fn
	}
}

// Manager allocates and reclaims EditBuffers. It belongs to exactly one
// controller and shares the form's single logical thread of control.
type Manager struct {
	seed      SeedFunc
	buffers   map[string]*EditBuffer
	visible   map[string]struct{}
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
	onDestroy func(string)
	closed    bool
}

// NewManager creates a Manager. seed may be nil, in which case buffers start
// empty.
func NewManager(seed SeedFunc, opts ...Option) *Manager {
	m := &Manager{
		seed:    seed,
		buffers: make(map[string]*EditBuffer),
		visible: make(map[string]struct{}),
		idle:    DefaultIdleThreshold,
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	m.lastSweep = m.now()
	return m
}

// GetOrCreate returns the field's buffer, allocating one seeded with the
// field's current value when none exists. A buffer reclaimed by an earlier
// sweep is transparently re-allocated.
func (m *Manager) GetOrCreate(fieldID string) *EditBuffer {
	if m.closed {
		return nil
	}
	if buf, ok := m.buffers[fieldID]; ok && !buf.destroyed {
		return buf
	}
	buf := &EditBuffer{fieldID: fieldID}
	if m.seed != nil {
		if value, ok := m.seed(fieldID); ok {
			buf.text = value
			buf.cursor = len(value)
		}
	}
	m.buffers[fieldID] = buf
	return buf
}

// Has reports whether a live buffer exists for the field.
func (m *Manager) Has(fieldID string) bool {
	buf, ok := m.buffers[fieldID]
	return ok && !buf.destroyed
}

// MarkVisible records that the renderer is displaying the field. Visible
// fields are never reclaimed.
func (m *Manager) MarkVisible(fieldID string) {
	if m.closed {
		return
	}
	m.visible[fieldID] = struct{}{}
}

// MarkInvisible records that the field left the screen. The resource is not
// freed immediately; visibility toggles rapidly while scrolling, so
// reclamation waits for the debounced sweep.
func (m *Manager) MarkInvisible(fieldID string) {
	if m.closed {
		return
	}
	delete(m.visible, fieldID)
	m.Sweep()
}

// Sweep reclaims buffers for fields outside the visibility set. It runs at
// most once per idle threshold measured from the previous sweep and reports
// whether a pass actually ran. Callers may invoke it opportunistically; the
// debounce makes that cheap.
func (m *Manager) Sweep() bool {
	if m.closed {
		return false
	}
	now := m.now()
	if now.Sub(m.lastSweep) < m.idle {
		return false
	}
	m.lastSweep = now

	for id, buf := range m.buffers {
		if _, vis := m.visible[id]; vis {
			continue
		}
		buf.destroy()
		delete(m.buffers, id)
		if m.onDestroy != nil {
			m.onDestroy(id)
		}
	}
	return true
}

// Len returns the number of live buffers.
func (m *Manager) Len() int {
	count := 0
	for _, buf := range m.buffers {
		if !buf.destroyed {
			count++
		}
	}
	return count
}

// Close destroys every buffer regardless of visibility. The manager is
// unusable afterwards; closing twice is a no-op.
func (m *Manager) Close() {
	if m.closed {
		return
	}
	m.closed = true
	for id, buf := range m.buffers {
		buf.destroy()
		delete(m.buffers, id)
		if m.onDestroy != nil {
			m.onDestroy(id)
		}
	}
	m.visible = make(map[string]struct{})
}
