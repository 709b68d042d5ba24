// Package template defines the template engine contract used by the emitters.
package template

import (
	"io"

	gotemplate "github.com/goliatone/go-template"
)

// TemplateRenderer is the github.com/goliatone/go-template engine contract.
// The go-template engine itself can be passed wherever one is expected.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

var _ TemplateRenderer = (*gotemplate.Engine)(nil)
