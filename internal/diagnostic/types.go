package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

const unknownStr = "unknown"

// Well-known diagnostic codes.
const (
	CodeCompoundDType    = "compound_dtype"
	CodeMissingSource    = "missing_source"
	CodeArrayFallback    = "array_dtype_fallback"
	CodeDuplicateType    = "duplicate_type"
	CodeUnknownQuantity  = "unknown_quantity"
	CodeMalformedShape   = "malformed_shape"
	CodeMissingName      = "missing_name"
	CodeMissingVersion   = "missing_version"
	CodeUnmatchedDataset = "unmatched_dataset"
)

// Diagnostics collects findings from loading, adapting and generating.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Schema names the schema file or namespace this relates to (if any).
	Schema string
	// Element names the type, slot or field this relates to (if any).
	Element string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return unknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, schema, element string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Schema:   schema,
		Element:  element,
	})
}

// AddWarning adds a warning diagnostic. A nil receiver discards it.
func (d *Diagnostics) AddWarning(code, message, schema, element string) {
	if d == nil {
		return
	}

	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Schema:   schema,
		Element:  element,
	})
}

// AddInfo adds an info diagnostic. A nil receiver discards it.
func (d *Diagnostics) AddInfo(code, message, schema, element string) {
	if d == nil {
		return
	}

	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Schema:   schema,
		Element:  element,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return d != nil && len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Log writes every diagnostic through the given logger at its severity.
func (d *Diagnostics) Log(logger logrus.FieldLogger) {
	if d == nil {
		return
	}

	for _, group := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range group {
			entry := logger.WithField("code", diag.Code)
			if diag.Schema != "" {
				entry = entry.WithField("schema", diag.Schema)
			}

			if diag.Element != "" {
				entry = entry.WithField("element", diag.Element)
			}

			switch diag.Severity {
			case DiagnosticError:
				entry.Error(diag.Message)
			case DiagnosticWarning:
				entry.Warn(diag.Message)
			default:
				entry.Debug(diag.Message)
			}
		}
	}
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Schema != "" {
		prefix = append(prefix, "["+d.Schema+"]")
	}

	if d.Element != "" {
		prefix = append(prefix, d.Element)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean: " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
