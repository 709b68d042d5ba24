package codegen

import "errors"

var (
	// ErrUnknownWidget is returned when no builder is registered for a widget
	// type.
	ErrUnknownWidget = errors.New("codegen: no builder for widget type")
	// ErrMissingPayload is returned when a widget lacks the variant payload
	// its type requires.
	ErrMissingPayload = errors.New("codegen: widget payload missing")
)
