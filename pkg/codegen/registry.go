package codegen

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-lvglgen/pkg/model"
)

// Builder emits the variant specific calls of one widget type. The dispatcher
// has already allocated, registered and positioned obj when Build runs.
type Builder interface {
	Type() model.WidgetType
	// Class is the unqualified C++ wrapper class, e.g. GuiLabel.
	Class() string
	Build(g *Generation, obj Expr, w *model.Widget) error
}

// BuildFunc adapts a function to the Builder interface.
type BuildFunc func(g *Generation, obj Expr, w *model.Widget) error

// NewBuilder wraps fn as the builder of widget type t.
func NewBuilder(t model.WidgetType, class string, fn BuildFunc) Builder {
	return funcBuilder{typ: t, class: class, fn: fn}
}

type funcBuilder struct {
	typ   model.WidgetType
	class string
	fn    BuildFunc
}

func (b funcBuilder) Type() model.WidgetType { return b.typ }
func (b funcBuilder) Class() string          { return b.class }

func (b funcBuilder) Build(g *Generation, obj Expr, w *model.Widget) error {
	return b.fn(g, obj, w)
}

// Registry maps widget types to builders, one builder per type.
type Registry struct {
	mu       sync.RWMutex
	builders map[model.WidgetType]Builder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[model.WidgetType]Builder)}
}

// DefaultRegistry returns a registry holding the built-in builders of every
// widget type.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	for _, b := range builtinBuilders() {
		reg.MustRegister(b)
	}
	return reg
}

// Register adds a builder under its Type(). Duplicate types return an error.
func (r *Registry) Register(b Builder) error {
	if b == nil {
		return fmt.Errorf("codegen: builder is required")
	}
	t := b.Type()
	if t == "" {
		return fmt.Errorf("codegen: builder type is required")
	}
	if b.Class() == "" {
		return fmt.Errorf("codegen: builder %q has no class", t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.builders[t]; exists {
		return fmt.Errorf("codegen: builder %q already registered", t)
	}
	r.builders[t] = b
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(b Builder) {
	if err := r.Register(b); err != nil {
		panic(err)
	}
}

// Get retrieves the builder of a widget type.
func (r *Registry) Get(t model.WidgetType) (Builder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.builders[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWidget, t)
	}
	return b, nil
}

// List returns the registered widget types sorted by name.
func (r *Registry) List() []model.WidgetType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]model.WidgetType, 0, len(r.builders))
	for t := range r.builders {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Has reports whether a builder is registered for t.
func (r *Registry) Has(t model.WidgetType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.builders[t]
	return ok
}
