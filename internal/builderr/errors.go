// Package builderr defines the error taxonomy for toolchain and tool
// declarations. Every semantic failure carries a Kind so callers can match it
// with errors.Is, plus the field, tool category and source range needed to
// locate the offending declaration.
package builderr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Kind categorizes a declaration error.
type Kind int

const (
	// SyntaxCannotOccurHere is a declaration in a context that forbids it.
	SyntaxCannotOccurHere Kind = iota + 1
	UnknownPlaceholder
	InvalidPlaceholder
	TypeMismatch
	MissingRequiredField
	EmptyList
	InvalidExtensionFormat
	InvalidEnumValue
	InvalidFieldForCategory
	OutputNotInOutputsList
	AsymmetricLinkOutputs
	UnusedField
	UnknownToolType
	DuplicateTool
	ValueOutOfRange
	RegistryUnavailable
	NotInsideToolchain
	UnexpectedArguments
	UnknownFunction
	EvalFailed
)

var kindNames = map[Kind]string{
	SyntaxCannotOccurHere:   "syntax cannot occur here",
	UnknownPlaceholder:      "unknown placeholder",
	InvalidPlaceholder:      "placeholder not valid here",
	TypeMismatch:            "type mismatch",
	MissingRequiredField:    "missing required field",
	EmptyList:               "empty list",
	InvalidExtensionFormat:  "invalid extension format",
	InvalidEnumValue:        "invalid enum value",
	InvalidFieldForCategory: "invalid field for tool category",
	OutputNotInOutputsList:  "output not in outputs list",
	AsymmetricLinkOutputs:   "asymmetric link outputs",
	UnusedField:             "unused field",
	UnknownToolType:         "unknown tool type",
	DuplicateTool:           "duplicate tool",
	ValueOutOfRange:         "value out of range",
	RegistryUnavailable:     "registry unavailable",
	NotInsideToolchain:      "not inside toolchain",
	UnexpectedArguments:     "unexpected arguments",
	UnknownFunction:         "unknown function",
	EvalFailed:              "evaluation failed",
}

// Error implements error so a bare Kind can be used as an errors.Is target.
func (k Kind) Error() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("builderr.Kind(%d)", int(k))
}

// Error is a declaration error with enough context to locate and fix it.
type Error struct {
	Kind     Kind
	Summary  string
	Detail   string
	Field    string
	Category string
	Subject  *hcl.Range
	Err      error
}

// New creates an Error of the given kind.
func New(kind Kind, summary string) *Error {
	return &Error{Kind: kind, Summary: summary}
}

// Newf creates an Error of the given kind with a formatted summary.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Summary: fmt.Sprintf(format, args...)}
}

// WithDetail sets the detail line and returns e.
func (e *Error) WithDetail(format string, args ...any) *Error {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithField records the declaration field the error refers to.
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// WithCategory records the tool category that made the field illegal.
func (e *Error) WithCategory(category string) *Error {
	e.Category = category
	return e
}

// At attaches a source range unless one is already present. The innermost
// location wins, so callers can blame a whole block without hiding the
// attribute that actually failed.
func (e *Error) At(rng *hcl.Range) *Error {
	if e.Subject == nil && rng != nil {
		r := *rng
		e.Subject = &r
	}
	return e
}

// Wrap records an underlying cause.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Subject != nil {
		sb.WriteString(e.Subject.String())
		sb.WriteString(": ")
	}
	sb.WriteString(e.Summary)
	if e.Field != "" {
		fmt.Fprintf(&sb, " (field %q", e.Field)
		if e.Category != "" {
			fmt.Fprintf(&sb, ", tool %q", e.Category)
		}
		sb.WriteString(")")
	} else if e.Category != "" {
		fmt.Fprintf(&sb, " (tool %q)", e.Category)
	}
	if e.Detail != "" {
		sb.WriteString("; ")
		sb.WriteString(e.Detail)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Is matches a Kind target.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Diagnostic renders the error as an HCL diagnostic.
func (e *Error) Diagnostic() *hcl.Diagnostic {
	detail := e.Detail
	if e.Field != "" {
		prefix := fmt.Sprintf("Field %q", e.Field)
		if e.Category != "" {
			prefix += fmt.Sprintf(" in tool %q", e.Category)
		}
		if detail == "" {
			detail = prefix + "."
		} else {
			detail = prefix + ": " + detail
		}
	}
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  e.Summary,
		Detail:   detail,
		Subject:  e.Subject,
	}
}

// FromDiagnostics converts HCL evaluation diagnostics into an EvalFailed error.
// It returns nil when diags contain no errors.
func FromDiagnostics(diags hcl.Diagnostics) error {
	if !diags.HasErrors() {
		return nil
	}
	var first *hcl.Diagnostic
	for _, d := range diags {
		if d.Severity == hcl.DiagError {
			first = d
			break
		}
	}
	e := New(EvalFailed, first.Summary)
	e.Detail = first.Detail
	return e.At(first.Subject)
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
