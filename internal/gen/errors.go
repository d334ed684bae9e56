package gen

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnresolvableOrder is returned when classes cannot be put in
	// inheritance order.
	ErrUnresolvableOrder = errors.New("unresolvable class order")
	// ErrMissingRange is returned when no annotation can be produced for a slot.
	ErrMissingRange = errors.New("missing range")
)

// CycleError names the classes left over when sorting stopped making progress.
type CycleError struct {
	Remaining []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnresolvableOrder, strings.Join(e.Remaining, ", "))
}

func (e *CycleError) Unwrap() error { return ErrUnresolvableOrder }

// RangeError names the slot whose range could not be translated.
type RangeError struct {
	Class string
	Slot  string
	// Range is the offending range, empty when the slot had none.
	Range string
}

func (e *RangeError) Error() string {
	if e.Range == "" {
		return fmt.Sprintf("%s.%s has no range", e.Class, e.Slot)
	}

	return fmt.Sprintf("%s.%s: range %s is not a class, enum or type", e.Class, e.Slot, e.Range)
}

func (e *RangeError) Unwrap() error { return ErrMissingRange }
