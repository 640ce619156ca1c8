// Package state holds the mutable runtime state of a form: one FieldState
// per definition plus the FormState aggregate with its derived validity and
// modification properties. State objects are plain data; validation and
// notification are orchestrated by pkg/controller.
package state
