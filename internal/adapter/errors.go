package adapter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNaming is returned when a node has no def, name or inc to be named by.
	ErrNaming = errors.New("cannot derive a name")
	// ErrPatternAmbiguous is returned when a dataset matches several patterns.
	ErrPatternAmbiguous = errors.New("dataset matches more than one pattern")
	// ErrPatternMissing is returned in strict mode when a dataset matches none.
	ErrPatternMissing = errors.New("dataset matches no pattern")
	// ErrMalformedShape is returned when dims and shape cannot be paired.
	ErrMalformedShape = errors.New("malformed dims or shape")
	// ErrTypeNotFound is returned when no reachable schema defines a type.
	ErrTypeNotFound = errors.New("type not found")
	// ErrTypeAmbiguous is returned when more than one reachable schema defines a type.
	ErrTypeAmbiguous = errors.New("type defined in more than one schema")
	// ErrStraySlots is returned when top-level nodes of a schema file build
	// to slots instead of classes.
	ErrStraySlots = errors.New("schema produced slots outside of classes")
)

// NamingError reports which name could not be derived and for what.
type NamingError struct {
	What string
	Node string
}

func (e *NamingError) Error() string {
	return fmt.Sprintf("%s: %s has no neurodata_type_def, name or neurodata_type_inc", e.What, e.Node)
}

func (e *NamingError) Unwrap() error { return ErrNaming }

// PatternError lists the patterns a dataset matched when that is not exactly one.
type PatternError struct {
	Dataset string
	Matched []PatternKind
}

func (e *PatternError) Error() string {
	if len(e.Matched) == 0 {
		return fmt.Sprintf("dataset %s matches no pattern", e.Dataset)
	}

	names := make([]string, len(e.Matched))
	for i, k := range e.Matched {
		names[i] = k.String()
	}

	return fmt.Sprintf("dataset %s matches %d patterns: %s", e.Dataset, len(e.Matched), strings.Join(names, ", "))
}

func (e *PatternError) Unwrap() error {
	if len(e.Matched) == 0 {
		return ErrPatternMissing
	}

	return ErrPatternAmbiguous
}

// ShapeError wraps the reason a dataset's dims and shape were rejected.
type ShapeError struct {
	Dataset string
	Err     error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("dataset %s: %v", e.Dataset, e.Err)
}

func (e *ShapeError) Unwrap() []error { return []error{ErrMalformedShape, e.Err} }

// TypeSourceError reports a type that resolved to zero or several schemas.
type TypeSourceError struct {
	Type string
	// Namespace is where the lookup started.
	Namespace string
	// Schemas lists every schema that defines Type. Empty when not found.
	Schemas []string
	// Searched lists every schema that was examined.
	Searched []string
	// Suggestions are defined type names close to Type.
	Suggestions []string
}

func (e *TypeSourceError) Error() string {
	if len(e.Schemas) == 0 {
		msg := fmt.Sprintf("type %s not found from namespace %s (searched %s)",
			e.Type, e.Namespace, strings.Join(e.Searched, ", "))
		if len(e.Suggestions) > 0 {
			msg += "; did you mean " + strings.Join(e.Suggestions, ", ") + "?"
		}

		return msg
	}

	return fmt.Sprintf("type %s defined in more than one schema: %s", e.Type, strings.Join(e.Schemas, ", "))
}

func (e *TypeSourceError) Unwrap() error {
	if len(e.Schemas) == 0 {
		return ErrTypeNotFound
	}

	return ErrTypeAmbiguous
}

// StraySlotsError names the slots a schema file produced outside of classes.
type StraySlotsError struct {
	Schema string
	Slots  []string
}

func (e *StraySlotsError) Error() string {
	return fmt.Sprintf("schema %s: top-level nodes built to slots %s", e.Schema, strings.Join(e.Slots, ", "))
}

func (e *StraySlotsError) Unwrap() error { return ErrStraySlots }
