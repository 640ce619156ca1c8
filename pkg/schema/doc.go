// Package schema defines the immutable form schema: field definitions,
// validators, and options, plus loaders that parse serialised templates from
// JSON or YAML documents. Schema errors (duplicate ids, unparsable patterns)
// surface here at construction time so a form is never built from a defective
// definition list.
package schema
