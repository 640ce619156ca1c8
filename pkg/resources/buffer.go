package resources

// EditBuffer is the per-field editing resource: a text buffer with a cursor
// and a focus handle. Buffers are allocated lazily by the Manager and seeded
// with the field's current value so a field is ready synchronously before its
// first paint.
type EditBuffer struct {
	fieldID   string
	text      string
	cursor    int
	focused   bool
	destroyed bool
}

// FieldID returns the owning field's id.
func (b *EditBuffer) FieldID() string { return b.fieldID }

// Text returns the buffer contents.
func (b *EditBuffer) Text() string { return b.text }

// SetText replaces the buffer contents, clamping the cursor to the new end.
func (b *EditBuffer) SetText(text string) {
	b.text = text
	if b.cursor > len(text) {
		b.cursor = len(text)
	}
}

// Cursor returns the caret offset in bytes.
func (b *EditBuffer) Cursor() int { return b.cursor }

// SetCursor moves the caret, clamped to the buffer bounds.
func (b *EditBuffer) SetCursor(pos int) {
	switch {
	case pos < 0:
		b.cursor = 0
	case pos > len(b.text):
		b.cursor = len(b.text)
	default:
		b.cursor = pos
	}
}

// Focus acquires the focus handle.
func (b *EditBuffer) Focus() { b.focused = true }

// Blur releases the focus handle.
func (b *EditBuffer) Blur() { b.focused = false }

// Focused reports whether the buffer holds focus.
func (b *EditBuffer) Focused() bool { return b.focused }

// Destroyed reports whether the buffer has been reclaimed. A destroyed
// buffer must not be reused; ask the Manager for a fresh one.
func (b *EditBuffer) Destroyed() bool { return b.destroyed }

// destroy releases the buffer. Destroying twice is a no-op.
func (b *EditBuffer) destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.focused = false
	b.text = ""
	b.cursor = 0
}
