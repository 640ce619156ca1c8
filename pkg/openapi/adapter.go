// Package openapi derives form schemas from OpenAPI documents: the request
// body of an operation becomes an ordered FieldDefinition list ready to hand
// to a controller. Only flat request bodies are mapped; nested objects are
// outside what a single form can edit and are skipped.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formstate/pkg/schema"
)

// ErrOperationNotFound flags a request for an operation id the document does
// not define.
var ErrOperationNotFound = errors.New("openapi: operation not found")

// Labeler turns a property name into a display label.
type Labeler func(name string) string

// Option customises an Adapter.
type Option func(*Adapter)

// WithLabeler overrides the label derivation.
func WithLabeler(fn Labeler) Option {
	return func(a *Adapter) {
		if fn != nil {
			a.labeler = fn
		}
	}
}

// Adapter converts OpenAPI operations into field definition lists.
type Adapter struct {
	labeler Labeler
}

// New constructs an Adapter with the default humanizing labeler.
func New(opts ...Option) *Adapter {
	a := &Adapter{labeler: HumanizeLabel}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// FieldsFromDocument loads an OpenAPI document from raw bytes and maps the
// named operation's request body into field definitions. The result has
// passed schema.Validate.
func (a *Adapter) FieldsFromDocument(ctx context.Context, raw []byte, operationID string) ([]schema.FieldDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}

	operation := findOperation(doc, operationID)
	if operation == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	body := requestBodySchema(operation.RequestBody)
	if body == nil {
		return nil, fmt.Errorf("openapi: operation %q has no mappable request body", operationID)
	}

	fields, err := a.fieldsFromBody(body)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestBodySchema(ref *openapi3.RequestBodyRef) *openapi3.Schema {
	if ref == nil || ref.Value == nil {
		return nil
	}
	content := ref.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func (a *Adapter) fieldsFromBody(body *openapi3.Schema) ([]schema.FieldDefinition, error) {
	if len(body.Properties) == 0 {
		return nil, errors.New("openapi: request body has no properties")
	}

	requiredSet := make(map[string]struct{}, len(body.Required))
	for _, name := range body.Required {
		requiredSet[name] = struct{}{}
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var fields []schema.FieldDefinition
	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		if typeOf(prop) == "object" {
			// Nested objects are not editable as a flat field.
			continue
		}
		_, required := requiredSet[name]
		fields = append(fields, a.fieldFromProperty(name, prop, required))
	}
	return fields, nil
}

func (a *Adapter) fieldFromProperty(name string, prop *openapi3.Schema, required bool) schema.FieldDefinition {
	field := schema.FieldDefinition{
		ID:              name,
		Label:           a.labeler(name),
		Kind:            kindOf(prop),
		Required:        required,
		ReadOnly:        prop.ReadOnly,
		IncludeInOutput: !prop.ReadOnly,
	}
	if prop.Default != nil {
		field.InitialValue = canonicalValue(prop.Default)
	}
	field.Options = optionsFromEnum(enumOf(prop))
	field.Validators = validatorsFromProperty(field.Kind, prop)
	if prop.MaxLength != nil {
		field.MaxLength = int(*prop.MaxLength)
	}
	return field
}

func kindOf(prop *openapi3.Schema) schema.FieldKind {
	switch typeOf(prop) {
	case "boolean":
		return schema.KindBoolean
	case "integer", "number":
		return schema.KindNumber
	case "array":
		return schema.KindMultiSelect
	default:
		if len(prop.Enum) > 0 {
			return schema.KindSelect
		}
		switch prop.Format {
		case "email":
			return schema.KindEmail
		case "tel", "phone":
			return schema.KindTel
		case "date":
			return schema.KindDate
		case "date-time":
			return schema.KindDateTime
		}
		if prop.MaxLength != nil && *prop.MaxLength > 255 {
			return schema.KindTextArea
		}
		return schema.KindText
	}
}

func validatorsFromProperty(kind schema.FieldKind, prop *openapi3.Schema) []schema.Validator {
	var out []schema.Validator
	switch kind {
	case schema.KindEmail:
		out = append(out, schema.Validator{Type: schema.ValidatorEmail})
	case schema.KindTel:
		out = append(out, schema.Validator{Type: schema.ValidatorPhone})
	}
	if prop.Pattern != "" {
		out = append(out, schema.Validator{Type: schema.ValidatorPattern, Value: prop.Pattern})
	}
	if prop.MinLength > 0 {
		out = append(out, schema.Validator{
			Type:  schema.ValidatorMinLength,
			Value: strconv.FormatUint(prop.MinLength, 10),
		})
	}
	if prop.MaxLength != nil {
		out = append(out, schema.Validator{
			Type:  schema.ValidatorMaxLength,
			Value: strconv.FormatUint(*prop.MaxLength, 10),
		})
	}
	return out
}

// enumOf returns the enum list for select kinds; arrays contribute their item
// enum for multiselect.
func enumOf(prop *openapi3.Schema) []any {
	if len(prop.Enum) > 0 {
		return prop.Enum
	}
	if prop.Items != nil && prop.Items.Value != nil {
		return prop.Items.Value.Enum
	}
	return nil
}

func optionsFromEnum(enum []any) []schema.Option {
	if len(enum) == 0 {
		return nil
	}
	out := make([]schema.Option, 0, len(enum))
	for _, entry := range enum {
		id := canonicalValue(entry)
		if id == "" {
			continue
		}
		out = append(out, schema.Option{ID: id, Name: HumanizeLabel(id)})
	}
	return out
}

func typeOf(prop *openapi3.Schema) string {
	if prop.Type == nil {
		return ""
	}
	values := prop.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// canonicalValue renders an OpenAPI default/enum entry in the engine's
// canonical string form (booleans as "true"/"false").
func canonicalValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// HumanizeLabel converts snake_case, kebab-case, and camelCase property names
// into title-cased labels.
func HumanizeLabel(name string) string {
	if name == "" {
		return ""
	}
	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case r >= 'A' && r <= 'Z':
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()

	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}
