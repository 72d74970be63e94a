package validator

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/thoreinstein/fmcheck/internal/errors"
)

// Metadata is a frontmatter mapping from field name to value.
type Metadata = map[string]any

// ErrEmptyFieldName indicates a rule was constructed without a field name.
var ErrEmptyFieldName = errors.New("field name is required")

// RuleOption configures a Rule.
type RuleOption func(*Rule)

// Rule checks one named field of a metadata mapping.
//
// Checks run in a fixed order and stop at the first violation: a missing field
// is never also reported as null or mistyped, and a null value is never also
// reported as mistyped.
type Rule struct {
	field         string
	folded        string
	caseSensitive bool
	fieldType     FieldType
	defaultValue  any

	missingSeverity Severity
	nullSeverity    Severity
	typeSeverity    Severity
}

// NewRule creates a Rule for field. All severities default to SeverityError
// and field names are compared case-insensitively unless CaseSensitive is set.
func NewRule(field string, opts ...RuleOption) (Rule, error) {
	if strings.TrimSpace(field) == "" {
		return Rule{}, ErrEmptyFieldName
	}

	r := Rule{
		field:           field,
		missingSeverity: SeverityError,
		nullSeverity:    SeverityError,
		typeSeverity:    SeverityError,
	}
	for _, opt := range opts {
		opt(&r)
	}
	r.folded = fold(r.field)
	return r, nil
}

// CaseSensitive makes the rule compare field names exactly.
func CaseSensitive(sensitive bool) RuleOption {
	return func(r *Rule) {
		r.caseSensitive = sensitive
	}
}

// WithType sets the expected value type.
func WithType(t FieldType) RuleOption {
	return func(r *Rule) {
		r.fieldType = t
	}
}

// WithDefault records a default value. The value is informational and is
// never written into checked metadata.
func WithDefault(v any) RuleOption {
	return func(r *Rule) {
		r.defaultValue = v
	}
}

// WithLevel sets the missing, null and type-mismatch severities at once.
// Apply it before the per-kind options so they can override it.
func WithLevel(s Severity) RuleOption {
	return func(r *Rule) {
		r.missingSeverity = s
		r.nullSeverity = s
		r.typeSeverity = s
	}
}

// WithMissingSeverity sets the severity used when the field is absent.
func WithMissingSeverity(s Severity) RuleOption {
	return func(r *Rule) {
		r.missingSeverity = s
	}
}

// WithNullSeverity sets the severity used when the field value is null.
func WithNullSeverity(s Severity) RuleOption {
	return func(r *Rule) {
		r.nullSeverity = s
	}
}

// WithTypeSeverity sets the severity used when the value has the wrong type.
func WithTypeSeverity(s Severity) RuleOption {
	return func(r *Rule) {
		r.typeSeverity = s
	}
}

// Field returns the configured field name.
func (r Rule) Field() string { return r.field }

// IsCaseSensitive reports whether field names are compared exactly.
func (r Rule) IsCaseSensitive() bool { return r.caseSensitive }

// Type returns the expected value type, TypeNone if unset.
func (r Rule) Type() FieldType { return r.fieldType }

// Default returns the recorded default value.
func (r Rule) Default() any { return r.defaultValue }

// MissingSeverity returns the severity for an absent field.
func (r Rule) MissingSeverity() Severity { return r.missingSeverity }

// NullSeverity returns the severity for a null value.
func (r Rule) NullSeverity() Severity { return r.nullSeverity }

// TypeSeverity returns the severity for a type mismatch.
func (r Rule) TypeSeverity() Severity { return r.typeSeverity }

// Check evaluates the rule against meta and returns the first violation, or
// nil when the field satisfies the rule.
func (r Rule) Check(meta Metadata) *Event {
	value, ok := r.lookup(meta)
	if !ok {
		return &Event{
			Field:    r.field,
			Kind:     KindMissingField,
			Severity: r.missingSeverity,
			Message:  fmt.Sprintf("Missing field: '%s'", r.field),
		}
	}

	if value == nil {
		return &Event{
			Field:    r.field,
			Kind:     KindNullValue,
			Severity: r.nullSeverity,
			Message:  fmt.Sprintf("%s Value is 'Null'", r.field),
		}
	}

	if !r.fieldType.Matches(value) {
		return &Event{
			Field:    r.field,
			Kind:     KindTypeMismatch,
			Severity: r.typeSeverity,
			Message:  fmt.Sprintf("%s Value is not of type '%s'", r.field, r.fieldType),
			Value:    value,
		}
	}

	return nil
}

// lookup finds the field in meta. Case-insensitive lookups prefer an exact key
// and otherwise pick the smallest matching key so the result is deterministic.
func (r Rule) lookup(meta Metadata) (any, bool) {
	if v, ok := meta[r.field]; ok {
		return v, true
	}
	if r.caseSensitive {
		return nil, false
	}

	var (
		bestKey string
		best    any
		found   bool
	)
	for k, v := range meta {
		if fold(k) != r.folded {
			continue
		}
		if !found || k < bestKey {
			bestKey, best, found = k, v, true
		}
	}
	return best, found
}

// fold applies Unicode full case folding. A Caser is stateful, so a fresh one
// is used per call to keep Rule safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}
