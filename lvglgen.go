// Package lvglgen is the top level entry point of the generator: it turns a
// GUI configuration into LVGL setup code and build settings.
//
// The pipeline stages live in their own packages (config, validate, codegen,
// emit) and are wired by pkg/orchestrator; this package re-exports the common
// entry points.
package lvglgen

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-lvglgen/pkg/codegen"
	"github.com/goliatone/go-lvglgen/pkg/config"
	"github.com/goliatone/go-lvglgen/pkg/model"
	"github.com/goliatone/go-lvglgen/pkg/orchestrator"
	"github.com/goliatone/go-lvglgen/pkg/themes"
)

// Result aliases orchestrator.Result.
type Result = orchestrator.Result

// Settings aliases codegen.Settings.
type Settings = codegen.Settings

// DefaultSettings returns the default code generation settings.
func DefaultSettings() Settings { return codegen.DefaultSettings() }

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads, validates and generates the document at source.
func Generate(ctx context.Context, source config.Source, options ...orchestrator.Option) (*Result, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{Source: source})
}

// GenerateFile is Generate for a file path.
func GenerateFile(ctx context.Context, path string, options ...orchestrator.Option) (*Result, error) {
	return Generate(ctx, config.SourceFromFile(path), options...)
}

// GenerateFromRaw generates from an already decoded configuration tree, the
// shape yaml.v3 produces for map[string]any.
func GenerateFromRaw(ctx context.Context, raw map[string]any, options ...orchestrator.Option) (*Result, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{Raw: raw})
}

// Validate loads and validates the document at source without generating
// code.
func Validate(ctx context.Context, source config.Source, options ...orchestrator.Option) (model.Document, error) {
	return orchestrator.New(options...).Validate(ctx, orchestrator.Request{Source: source})
}

// WithThemeSelector applies the named theme and variant, resolved through
// selector, as the default style of every top level widget without styles.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) orchestrator.Option {
	return orchestrator.WithTransformers(themes.Transformer(selector, name, variant, ""))
}

// WithThemeManifests is WithThemeSelector over in-memory manifests.
func WithThemeManifests(name, variant string, manifests ...*theme.Manifest) orchestrator.Option {
	return WithThemeSelector(themes.NewSelector(manifests...), name, variant)
}
