package validation

import (
	"regexp"
	"time"

	"github.com/goliatone/go-formstate/internal/cache"
	"github.com/goliatone/go-formstate/pkg/schema"
)

// Func is the validation contract: it returns the error message for the
// value, or "" when the value is acceptable. A custom Func supplied to a
// controller fully replaces the built-in engine for that form instance.
type Func func(field schema.FieldDefinition, value string) string

// Option customises an Engine.
type Option func(*Engine)

// WithClock overrides the time source used by the date validators. Tests
// inject a fixed clock here.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithPatternCacheSize bounds the compiled-pattern cache.
func WithPatternCacheSize(size int) Option {
	return func(e *Engine) {
		e.patternSize = size
	}
}

// Engine evaluates field values against their validators. Both caches are
// owned by the engine instance, so their lifetime ends with the form that
// owns the engine; nothing global needs clearing.
type Engine struct {
	validators  *cache.Cache[string, map[schema.ValidatorType]schema.Validator]
	patterns    *cache.Cache[string, *regexp.Regexp]
	patternSize int
	now         func() time.Time
}

// NewEngine constructs an Engine with instance-scoped caches.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		patternSize: 128,
		now:         time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	e.validators = cache.New[string, map[schema.ValidatorType]schema.Validator](256)
	e.patterns = cache.New[string, *regexp.Regexp](e.patternSize)
	return e
}

// typePriority fixes the evaluation order of the pipeline. The first failing
// validator wins; errors are never accumulated.
var typePriority = []schema.ValidatorType{
	schema.ValidatorRequired,
	schema.ValidatorEmail,
	schema.ValidatorPhone,
	schema.ValidatorPattern,
	schema.ValidatorFutureDate,
	schema.ValidatorPastDate,
	schema.ValidatorMinLength,
	schema.ValidatorMaxLength,
}

// Validate runs the short-circuit pipeline for the field and returns the
// first failure message, or "" when the value is valid.
//
// A required field with an empty value fails immediately with the required
// message (a custom message on a required validator overrides the default).
// An empty value on an optional field is always valid; the remaining
// validators only see non-empty input.
func (e *Engine) Validate(field schema.FieldDefinition, value string) string {
	lookup := e.lookupFor(field)

	if value == "" {
		if field.Required {
			if v, ok := lookup[schema.ValidatorRequired]; ok && v.Message != "" {
				return v.Message
			}
			return msgRequired
		}
		return ""
	}

	for _, vt := range typePriority {
		v, ok := lookup[vt]
		if !ok {
			continue
		}
		if msg := e.evaluate(field, v, value); msg != "" {
			return msg
		}
	}
	return ""
}

// Invalidate drops the cached validator lookup for a field id. The resource
// manager calls this when it reclaims a field's resources.
func (e *Engine) Invalidate(fieldID string) {
	e.validators.Delete(fieldID)
}

// lookupFor returns the cached validator-type map for the field, building it
// on first use. Validator sets never change after construction, so the entry
// stays valid for the field's lifetime.
func (e *Engine) lookupFor(field schema.FieldDefinition) map[schema.ValidatorType]schema.Validator {
	return e.validators.GetOrSet(field.ID, func() map[schema.ValidatorType]schema.Validator {
		return field.ValidatorMap()
	})
}

func (e *Engine) compile(pattern string) (*regexp.Regexp, bool) {
	if re, ok := e.patterns.Get(pattern); ok {
		return re, true
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		// Schema validation rejects bad patterns up front; reaching this
		// branch means the definition bypassed it.
		return nil, false
	}
	e.patterns.Set(pattern, re)
	return re, true
}
