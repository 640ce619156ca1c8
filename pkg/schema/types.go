package schema

// FieldKind is the closed enumeration of supported field kinds.
type FieldKind string

const (
	KindText        FieldKind = "text"
	KindEmail       FieldKind = "email"
	KindTel         FieldKind = "tel"
	KindNumber      FieldKind = "number"
	KindSelect      FieldKind = "select"
	KindDate        FieldKind = "date"
	KindDateTime    FieldKind = "datetime"
	KindTextArea    FieldKind = "textarea"
	KindAddress     FieldKind = "address"
	KindMultiSelect FieldKind = "multiselect"
	KindBoolean     FieldKind = "boolean"
	KindSpacer      FieldKind = "spacer"
	KindButton      FieldKind = "button"
)

// IsInput reports whether the kind carries a user-editable value. Spacers and
// buttons participate in layout only.
func (k FieldKind) IsInput() bool {
	switch k {
	case KindSpacer, KindButton:
		return false
	default:
		return true
	}
}

// ValidatorType identifies a validation rule. A field holds at most one
// active validator per type; later duplicates overwrite earlier ones in the
// lookup map while the declared order is preserved for serialisation.
type ValidatorType string

const (
	ValidatorRequired   ValidatorType = "required"
	ValidatorEmail      ValidatorType = "email"
	ValidatorPhone      ValidatorType = "phone"
	ValidatorPattern    ValidatorType = "pattern"
	ValidatorFutureDate ValidatorType = "future_date"
	ValidatorPastDate   ValidatorType = "past_date"
	ValidatorMinLength  ValidatorType = "min_length"
	ValidatorMaxLength  ValidatorType = "max_length"
)

// Validator is a single named rule bound to a field. Value carries the
// pattern text or length threshold for the types that need one. Message, when
// set, replaces the built-in error text.
type Validator struct {
	Name    string        `json:"name,omitempty" yaml:"name,omitempty"`
	Type    ValidatorType `json:"type" yaml:"type"`
	Value   string        `json:"value,omitempty" yaml:"value,omitempty"`
	Message string        `json:"message,omitempty" yaml:"message,omitempty"`
}

// Option is one selectable entry for select and multiselect fields.
type Option struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// FieldDefinition is the immutable description of one field. Definitions are
// built once when the form schema is assembled and never mutated afterwards;
// runtime state lives in pkg/state.
//
// InitialValue holds the canonical string representation: booleans serialise
// as "true"/"false" and multiselect values as a comma-delimited id list.
type FieldDefinition struct {
	ID              string      `json:"id" yaml:"id"`
	Label           string      `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder     string      `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Kind            FieldKind   `json:"kind" yaml:"kind"`
	InitialValue    string      `json:"initialValue,omitempty" yaml:"initialValue,omitempty"`
	Required        bool        `json:"required,omitempty" yaml:"required,omitempty"`
	Disabled        bool        `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	ReadOnly        bool        `json:"readonly,omitempty" yaml:"readonly,omitempty"`
	IncludeInOutput bool        `json:"insert" yaml:"insert"`
	MaskEnabled     bool        `json:"maskEnabled,omitempty" yaml:"maskEnabled,omitempty"`
	Format          string      `json:"format,omitempty" yaml:"format,omitempty"`
	Validators      []Validator `json:"validators,omitempty" yaml:"validators,omitempty"`
	Options         []Option    `json:"options,omitempty" yaml:"options,omitempty"`
	MaxLength       int         `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Rows            int         `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// ValidatorMap builds the validator-type lookup for the field. Duplicate
// types overwrite so the last declaration wins. Callers that need the lookup
// repeatedly should cache the result (the validation engine does).
func (f FieldDefinition) ValidatorMap() map[ValidatorType]Validator {
	if len(f.Validators) == 0 {
		return nil
	}
	out := make(map[ValidatorType]Validator, len(f.Validators))
	for _, v := range f.Validators {
		out[v.Type] = v
	}
	return out
}

// OptionByID returns the option with the given id.
func (f FieldDefinition) OptionByID(id string) (Option, bool) {
	for _, opt := range f.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}
