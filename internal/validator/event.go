package validator

import (
	"fmt"
	"strings"
)

// Kind identifies which check of a rule produced an event.
type Kind int

const (
	// KindMissingField means the field is not present in the metadata.
	KindMissingField Kind = iota
	// KindNullValue means the field is present but null.
	KindNullValue
	// KindTypeMismatch means the field value is not of the expected type.
	KindTypeMismatch
)

func (k Kind) String() string {
	switch k {
	case KindMissingField:
		return "missing_field"
	case KindNullValue:
		return "null_value"
	case KindTypeMismatch:
		return "type_mismatch"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event is a graded diagnostic produced by a single rule check.
type Event struct {
	// Field is the field name as configured on the rule.
	Field string `json:"field"`
	// Kind is the violated check.
	Kind Kind `json:"kind"`
	// Severity grades the violation.
	Severity Severity `json:"severity"`
	// Message is a human-readable description of the violation.
	Message string `json:"message"`
	// Value is the offending value for type mismatches.
	Value any `json:"value,omitempty"`
}

// Error implements the error interface so events can be surfaced as errors
// by callers that want to, e.g. when joining diagnostics.
func (e Event) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Severity.String())
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Value != nil {
		fmt.Fprintf(&sb, " (got %v)", e.Value)
	}
	return sb.String()
}

// Events is an ordered list of events.
type Events []Event

// HasErrors reports whether any event has SeverityError.
func (es Events) HasErrors() bool {
	for _, e := range es {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any event has SeverityWarn.
func (es Events) HasWarnings() bool {
	for _, e := range es {
		if e.Severity == SeverityWarn {
			return true
		}
	}
	return false
}

// Errors returns the events with SeverityError.
func (es Events) Errors() Events {
	return es.bySeverity(SeverityError)
}

// Warnings returns the events with SeverityWarn.
func (es Events) Warnings() Events {
	return es.bySeverity(SeverityWarn)
}

// AtLeast returns the events whose severity is at least floor.
func (es Events) AtLeast(floor Severity) Events {
	var res Events
	for _, e := range es {
		if e.Severity.AtLeast(floor) {
			res = append(res, e)
		}
	}
	return res
}

func (es Events) bySeverity(s Severity) Events {
	var res Events
	for _, e := range es {
		if e.Severity == s {
			res = append(res, e)
		}
	}
	return res
}
