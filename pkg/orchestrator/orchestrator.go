package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-lvglgen/pkg/codegen"
	"github.com/goliatone/go-lvglgen/pkg/config"
	"github.com/goliatone/go-lvglgen/pkg/emit"
	"github.com/goliatone/go-lvglgen/pkg/model"
	"github.com/goliatone/go-lvglgen/pkg/validate"
)

// ErrValidation marks errors raised while validating the document. The
// individual failures are available through schema.Flatten.
var ErrValidation = errors.New("orchestrator: invalid document")

// Emitter renders a generated program into artifacts.
type Emitter interface {
	Render(ctx context.Context, doc model.Document, prog *codegen.Program) (emit.Artifacts, error)
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader config.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithValidator injects a configured validator.
func WithValidator(v *validate.Validator) Option {
	return func(o *Orchestrator) {
		o.validator = v
	}
}

// WithRegistry replaces the widget builder registry.
func WithRegistry(registry *codegen.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithSettings overrides the code generation settings.
func WithSettings(settings codegen.Settings) Option {
	return func(o *Orchestrator) {
		o.settings = settings
		o.settingsSet = true
	}
}

// WithRenderer injects the artifact emitter.
func WithRenderer(renderer Emitter) Option {
	return func(o *Orchestrator) {
		o.renderer = renderer
	}
}

// WithTransformers registers transformers that run on the validated document
// before code generation, in order.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		o.transformers = append(o.transformers, transformers...)
	}
}

// WithLogger sets the logger shared by every stage.
func WithLogger(log *logrus.Entry) Option {
	return func(o *Orchestrator) {
		o.log = log
	}
}

// Orchestrator coordinates loader, validator, dispatcher and renderer. Missing
// dependencies are initialised with the built-in implementations.
type Orchestrator struct {
	loader       config.Loader
	validator    *validate.Validator
	registry     *codegen.Registry
	settings     codegen.Settings
	settingsSet  bool
	renderer     Emitter
	transformers []Transformer
	log          *logrus.Entry
	initErr      error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	o.applyDefaults()
	return o
}

// Request names the document to process. Exactly one of the fields is used,
// in the order Raw, Document, Source.
type Request struct {
	// Source is loaded through the configured loader.
	Source config.Source
	// Document skips the loader.
	Document *config.Document
	// Raw skips loading and decoding; it must be the generic tree YAML
	// decodes into.
	Raw any
}

// Result carries every stage output of a generation.
type Result struct {
	Document  model.Document
	Program   *codegen.Program
	Artifacts emit.Artifacts
}

// Settings returns the effective code generation settings.
func (o *Orchestrator) Settings() codegen.Settings { return o.settings }

// Validate loads and validates the requested document.
func (o *Orchestrator) Validate(ctx context.Context, req Request) (model.Document, error) {
	if ctx == nil {
		return model.Document{}, errors.New("orchestrator: context is required")
	}
	if err := o.initErr; err != nil {
		return model.Document{}, err
	}
	if err := ctx.Err(); err != nil {
		return model.Document{}, err
	}

	raw, err := o.resolve(ctx, req)
	if err != nil {
		return model.Document{}, err
	}
	doc, err := o.validator.Document(raw)
	if err != nil {
		return model.Document{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	for _, t := range o.transformers {
		if t == nil {
			continue
		}
		if err := t.Transform(ctx, &doc); err != nil {
			return model.Document{}, fmt.Errorf("orchestrator: transform document: %w", err)
		}
	}
	return doc, nil
}

// Generate runs the full pipeline and returns every intermediate result.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Result, error) {
	doc, err := o.Validate(ctx, req)
	if err != nil {
		return nil, err
	}

	dispatcher := codegen.NewDispatcher(
		codegen.WithRegistry(o.registry),
		codegen.WithSettings(o.settings),
		codegen.WithLogger(o.log),
	)
	prog, err := dispatcher.Generate(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: generate: %w", err)
	}

	artifacts, err := o.renderer.Render(ctx, doc, prog)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render: %w", err)
	}

	o.log.WithFields(logrus.Fields{
		"stage":   "orchestrator",
		"id":      doc.ID,
		"widgets": doc.Count(),
		"defines": len(prog.Build.Defines()),
	}).Info("generation complete")
	return &Result{Document: doc, Program: prog, Artifacts: artifacts}, nil
}

func (o *Orchestrator) resolve(ctx context.Context, req Request) (any, error) {
	if req.Raw != nil {
		return req.Raw, nil
	}
	doc := req.Document
	if doc == nil {
		if req.Source == nil {
			return nil, config.ErrNoSource
		}
		loaded, err := o.loader.Load(ctx, req.Source)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: load document: %w", err)
		}
		doc = &loaded
	}
	raw, err := doc.Decode()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: decode document: %w", err)
	}
	return raw, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.log == nil {
		log := logrus.New()
		log.SetOutput(io.Discard)
		o.log = logrus.NewEntry(log)
	}
	if !o.settingsSet {
		o.settings = codegen.DefaultSettings()
	}
	if err := o.settings.Validate(); err != nil {
		o.initErr = fmt.Errorf("orchestrator: %w", err)
		return
	}
	if o.loader == nil {
		o.loader = config.NewLoader()
	}
	if o.validator == nil {
		o.validator = validate.New(validate.WithLogger(o.log.WithField("stage", "validate")))
	}
	if o.registry == nil {
		o.registry = codegen.DefaultRegistry()
	}
	if o.renderer == nil {
		renderer, err := emit.New(emit.WithSettings(o.settings), emit.WithLogger(o.log))
		if err != nil {
			o.initErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.renderer = renderer
	}
}
