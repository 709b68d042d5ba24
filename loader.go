package lvglgen

import (
	"github.com/goliatone/go-lvglgen/pkg/codegen"
	"github.com/goliatone/go-lvglgen/pkg/config"
	"github.com/goliatone/go-lvglgen/pkg/validate"
)

// NewLoader constructs a document loader.
func NewLoader(options ...config.LoaderOption) config.Loader {
	return config.NewLoader(options...)
}

// NewValidator constructs a document validator.
func NewValidator(options ...validate.Option) *validate.Validator {
	return validate.New(options...)
}

// NewRegistry returns a registry holding the built-in widget builders, ready
// to be extended with custom ones.
func NewRegistry() *codegen.Registry {
	return codegen.DefaultRegistry()
}
