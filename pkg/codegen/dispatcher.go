package codegen

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-lvglgen/pkg/model"
	"github.com/goliatone/go-lvglgen/pkg/style"
)

// Generation is the state shared with builders during one pass.
type Generation struct {
	Program  *Program
	Settings Settings
	Log      *logrus.Entry
}

// Build returns the build configuration being accumulated.
func (g *Generation) Build() *BuildConfig { return g.Program.Build }

// Add appends an expression statement to setup.
func (g *Generation) Add(expr Expr) { g.Program.Add(expr) }

// AddStyle declares a global lv_style_t named id, initializes it and applies
// settings to it. Fonts referenced by the settings are recorded.
func (g *Generation) AddStyle(id string, settings []style.Setting) Expr {
	g.Program.Global("lv_style_t", id, "")
	ref := AddressOf(id)
	g.Add(Call("lv_style_init", ref))
	for _, s := range settings {
		g.Add(Call(s.Property().StyleSetter(), ref, Expr(s.Expr())))
		if font, ok := s.Value.(style.Font); ok {
			g.Build().UseFont(font)
		}
	}
	return ref
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRegistry replaces the builtin builder registry.
func WithRegistry(reg *Registry) Option {
	return func(d *Dispatcher) {
		if reg != nil {
			d.registry = reg
		}
	}
}

// WithSettings overrides the default settings.
func WithSettings(s Settings) Option {
	return func(d *Dispatcher) {
		d.settings = s
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(log *logrus.Entry) Option {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// Dispatcher walks a validated document and produces a Program.
type Dispatcher struct {
	registry *Registry
	settings Settings
	log      *logrus.Entry
}

// NewDispatcher constructs a dispatcher with the builtin builders and
// default settings unless overridden.
func NewDispatcher(options ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: DefaultRegistry(),
		settings: DefaultSettings(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}
	if d.log == nil {
		log := logrus.New()
		log.SetOutput(io.Discard)
		d.log = logrus.NewEntry(log)
	}
	return d
}

// Registry exposes the builder registry.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Settings returns the effective settings.
func (d *Dispatcher) Settings() Settings { return d.settings }

// Generate emits the program for doc. Any builder error or context
// cancellation aborts the pass and no program is returned.
func (d *Dispatcher) Generate(ctx context.Context, doc model.Document) (*Program, error) {
	if err := d.settings.Validate(); err != nil {
		return nil, err
	}
	g := &Generation{
		Program:  NewProgram(),
		Settings: d.settings,
		Log:      d.log.WithField("stage", "codegen"),
	}
	build := g.Build()

	if err := build.AddLibrary(d.settings.Library, d.settings.LibraryVersion); err != nil {
		return nil, err
	}
	for _, flag := range d.settings.BuildFlags() {
		build.AddBuildFlag(flag)
	}
	build.AddInclude(d.settings.ConfPath)

	gui := g.Program.NewPVariable(doc.ID, d.settings.Class("GuiComponent"))
	g.Program.RegisterComponent(gui)
	g.Add(Method(gui, "set_display", Ref(doc.DisplayID)))
	build.AddDefine("USE_GUI")
	build.AddDefine("USE_LVGL_PROD")

	for _, def := range doc.StyleDefinitions {
		g.AddStyle(def.ID, def.Properties)
	}

	if err := d.widgets(ctx, g, doc.Widgets, ""); err != nil {
		return nil, err
	}

	g.Log.WithFields(logrus.Fields{
		"widgets": doc.Count(),
		"defines": len(build.Defines()),
		"setup":   len(g.Program.Setup),
	}).Debug("program generated")
	return g.Program, nil
}

func (d *Dispatcher) widgets(ctx context.Context, g *Generation, widgets []model.Widget, parent Expr) error {
	for i := range widgets {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("codegen: %w", err)
		}
		w := &widgets[i]
		obj, err := d.widget(g, w, parent)
		if err != nil {
			return err
		}
		if err := d.widgets(ctx, g, w.Children, obj); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) widget(g *Generation, w *model.Widget, parent Expr) (Expr, error) {
	builder, err := d.registry.Get(w.Type)
	if err != nil {
		return "", fmt.Errorf("codegen: widget %q: %w", w.ID, err)
	}

	obj := g.Program.NewPVariable(w.ID, d.settings.Class(builder.Class()))
	g.Program.RegisterComponent(obj)
	if parent != "" {
		g.Add(Method(obj, "set_parent", parent))
	}
	g.Add(Method(obj, "set_dimensions", w.Dimensions.X, w.Dimensions.Y))
	g.Add(Method(obj, "set_coords", w.Position.X, w.Position.Y))

	for _, ref := range w.Styles {
		g.Add(Method(obj, "add_style", AddressOf(ref)))
	}
	if len(w.Style) > 0 {
		local := g.AddStyle(model.InlineStyleName(w.ID), w.Style)
		g.Add(Method(obj, "add_style", local))
	}

	if err := builder.Build(g, obj, w); err != nil {
		return "", fmt.Errorf("codegen: widget %q: %w", w.ID, err)
	}
	g.Build().UseWidget(w.Type)
	g.Build().AddDefine(w.Type.Define())

	g.Log.WithFields(logrus.Fields{
		"id":   w.ID,
		"type": w.Type,
	}).Debug("widget generated")
	return obj, nil
}
