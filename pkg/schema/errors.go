package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Error reports a single validation failure together with the path of the
// offending key inside the configuration tree.
type Error struct {
	Path    []string
	Message string
}

// Errorf builds a path-less Error. Schemas prefix the path as the error bubbles
// up through nested keys.
func Errorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	path := e.PathString()
	if path == "" {
		return e.Message
	}
	return path + ": " + e.Message
}

// PathString renders the path using dotted keys and bracketed list indices,
// e.g. widgets[0].label.position.
func (e *Error) PathString() string {
	if e == nil || len(e.Path) == 0 {
		return ""
	}
	var b strings.Builder
	for idx, segment := range e.Path {
		if idx > 0 && !strings.HasPrefix(segment, "[") {
			b.WriteByte('.')
		}
		b.WriteString(segment)
	}
	return b.String()
}

// Key returns the innermost mapping key on the path, skipping list indices.
func (e *Error) Key() string {
	if e == nil {
		return ""
	}
	for i := len(e.Path) - 1; i >= 0; i-- {
		if !strings.HasPrefix(e.Path[i], "[") {
			return e.Path[i]
		}
	}
	return ""
}

// Errors aggregates sibling failures collected while validating one mapping.
type Errors []*Error

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, err := range e {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "\n")
}

// Flatten returns every *Error contained in err, in report order.
func Flatten(err error) []*Error {
	if err == nil {
		return nil
	}
	var list Errors
	if errors.As(err, &list) {
		return append([]*Error(nil), list...)
	}
	var single *Error
	if errors.As(err, &single) {
		return []*Error{single}
	}
	return []*Error{{Message: err.Error()}}
}

// Prefix prepends segment to the path of every error contained in err. Plain
// errors are converted into *Error values so that callers always receive a
// path-aware failure.
func Prefix(err error, segment string) error {
	if err == nil {
		return nil
	}
	flat := Flatten(err)
	out := make(Errors, 0, len(flat))
	for _, item := range flat {
		path := make([]string, 0, len(item.Path)+1)
		path = append(path, segment)
		path = append(path, item.Path...)
		out = append(out, &Error{Path: path, Message: item.Message})
	}
	return join(out)
}

// Index formats a list index path segment.
func Index(i int) string {
	return fmt.Sprintf("[%d]", i)
}

func join(list Errors) error {
	switch len(list) {
	case 0:
		return nil
	case 1:
		return list[0]
	default:
		return list
	}
}
