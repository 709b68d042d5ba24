// Package emit renders a generated program into the files a PlatformIO based
// ESPHome build consumes: main.cpp, lv_conf.h, platformio.ini and a JSON
// manifest describing what was generated.
package emit

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	gotemplate "github.com/goliatone/go-template"
	"github.com/goliatone/go-template/templatehooks"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-lvglgen/pkg/codegen"
	"github.com/goliatone/go-lvglgen/pkg/emit/template"
	"github.com/goliatone/go-lvglgen/pkg/emit/template/pongo"
	"github.com/goliatone/go-lvglgen/pkg/model"
	"github.com/goliatone/go-lvglgen/pkg/style"
)

//go:embed templates/*.tpl
var embedded embed.FS

// Template names.
const (
	TemplateMain       = "main.cpp"
	TemplateLvConf     = "lv_conf.h"
	TemplatePlatformIO = "platformio.ini"
)

// Artifact file names other than lv_conf.h, whose path comes from the
// settings.
const (
	FileMain       = "main.cpp"
	FilePlatformIO = "platformio.ini"
	FileManifest   = "manifest.json"
)

// TemplatesFS exposes the embedded templates, e.g. to copy them as a starting
// point for overrides.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Artifacts are the rendered outputs of one generation.
type Artifacts struct {
	MainCpp    string
	LvConf     string
	PlatformIO string
	Manifest   []byte
	// ConfPath is where LvConf is written, relative to the output directory.
	ConfPath string
}

// Files maps relative output paths to contents.
func (a Artifacts) Files() map[string][]byte {
	conf := a.ConfPath
	if conf == "" || path.IsAbs(conf) || strings.HasPrefix(path.Clean(conf), "..") {
		conf = path.Base(conf)
	}
	if conf == "" || conf == "." || conf == "/" {
		conf = TemplateLvConf
	}
	return map[string][]byte{
		FileMain:       []byte(a.MainCpp),
		conf:           []byte(a.LvConf),
		FilePlatformIO: []byte(a.PlatformIO),
		FileManifest:   a.Manifest,
	}
}

// WriteDir writes every artifact below dir, creating directories as needed.
func (a Artifacts) WriteDir(dir string) error {
	for name, data := range a.Files() {
		target := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("emit: create directory for %s: %w", name, err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("emit: write %s: %w", name, err)
		}
	}
	return nil
}

// Manifest summarizes a generation.
type Manifest struct {
	Component string               `json:"component"`
	Display   string               `json:"display"`
	Widgets   int                  `json:"widgetCount"`
	Settings  codegen.Settings     `json:"settings"`
	Build     *codegen.BuildConfig `json:"build"`
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTemplateRenderer replaces the template engine. The engine must provide
// the main.cpp, lv_conf.h and platformio.ini templates.
func WithTemplateRenderer(engine template.TemplateRenderer) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithPostHooks runs hooks on every artifact rendered by the built-in engine,
// after trailing whitespace has been stripped. They are ignored when a custom
// engine is supplied through WithTemplateRenderer.
func WithPostHooks(hooks ...gotemplate.PostHook) Option {
	return func(r *Renderer) {
		r.hooks = append(r.hooks, hooks...)
	}
}

// WithCopyright prepends a "// <text>" line to the C and C++ artifacts.
func WithCopyright(text string) Option {
	return func(r *Renderer) {
		if text = strings.TrimSpace(text); text != "" {
			r.hooks = append(r.hooks, templatehooks.NewCommonHooks().AddCopyrightHook(text))
		}
	}
}

// WithTemplateDir loads templates from dir, falling back to the embedded set
// for templates the directory does not override.
func WithTemplateDir(dir string) Option {
	return func(r *Renderer) {
		r.templateDir = strings.TrimSpace(dir)
	}
}

// WithSettings sets the settings used for lv_conf.h and the manifest.
func WithSettings(s codegen.Settings) Option {
	return func(r *Renderer) {
		r.settings = s
	}
}

// WithLogger sets the logger.
func WithLogger(log *logrus.Entry) Option {
	return func(r *Renderer) {
		if log != nil {
			r.log = log
		}
	}
}

// Renderer turns a codegen.Program into Artifacts.
type Renderer struct {
	engine      template.TemplateRenderer
	templateDir string
	settings    codegen.Settings
	hooks       []gotemplate.PostHook
	log         *logrus.Entry
}

// New constructs a Renderer backed by the embedded pongo2 templates unless a
// different engine is supplied.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{settings: codegen.DefaultSettings()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.log == nil {
		log := logrus.New()
		log.SetOutput(io.Discard)
		r.log = logrus.NewEntry(log)
	}
	if r.engine == nil {
		opts := []pongo.Option{
			pongo.WithName("emit"),
			pongo.WithFS(TemplatesFS()),
			pongo.WithPostHook(templatehooks.NewCommonHooks().RemoveTrailingWhitespaceHook()),
		}
		for _, hook := range r.hooks {
			opts = append(opts, pongo.WithPostHook(hook, 1))
		}
		if r.templateDir != "" {
			opts = append(opts, pongo.WithBaseDir(r.templateDir))
		}
		engine, err := pongo.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("emit: template engine: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

// Render produces the artifacts of prog, generated from doc.
func (r *Renderer) Render(ctx context.Context, doc model.Document, prog *codegen.Program) (Artifacts, error) {
	if prog == nil {
		return Artifacts{}, fmt.Errorf("emit: program is required")
	}
	data := r.context(doc, prog)

	var out Artifacts
	for _, target := range []struct {
		name string
		dst  *string
	}{
		{TemplateMain, &out.MainCpp},
		{TemplateLvConf, &out.LvConf},
		{TemplatePlatformIO, &out.PlatformIO},
	} {
		if err := ctx.Err(); err != nil {
			return Artifacts{}, fmt.Errorf("emit: %w", err)
		}
		rendered, err := r.engine.RenderTemplate(target.name, data)
		if err != nil {
			return Artifacts{}, fmt.Errorf("emit: render %s: %w", target.name, err)
		}
		*target.dst = strings.TrimLeft(rendered, "\n")
	}

	manifest, err := json.MarshalIndent(Manifest{
		Component: doc.ID,
		Display:   doc.DisplayID,
		Widgets:   doc.Count(),
		Settings:  r.settings,
		Build:     prog.Build,
	}, "", "  ")
	if err != nil {
		return Artifacts{}, fmt.Errorf("emit: manifest: %w", err)
	}
	out.Manifest = append(manifest, '\n')
	out.ConfPath = r.settings.ConfPath

	r.log.WithFields(logrus.Fields{
		"stage":   "emit",
		"globals": len(prog.Globals),
		"setup":   len(prog.Setup),
	}).Debug("artifacts rendered")
	return out, nil
}

func (r *Renderer) context(doc model.Document, prog *codegen.Program) map[string]any {
	build := prog.Build

	widgets := make([]map[string]any, 0, len(model.WidgetTypes))
	for _, t := range model.WidgetTypes {
		enabled := 0
		if build.UsesWidget(t) {
			enabled = 1
		}
		widgets = append(widgets, map[string]any{"macro": t.ConfMacro(), "enabled": enabled})
	}

	fontMacros := []string{style.DefaultFont.ConfMacro()}
	var custom []string
	for _, f := range build.Fonts() {
		switch {
		case !f.Builtin:
			custom = append(custom, f.Name)
		case f.Name != style.DefaultFont.Name:
			fontMacros = append(fontMacros, f.ConfMacro())
		}
	}

	libraries := make([]string, 0)
	for _, lib := range build.Libraries() {
		libraries = append(libraries, lib.String())
	}

	log := 0
	if r.settings.Log {
		log = 1
	}

	return map[string]any{
		"component":    doc.ID,
		"display":      doc.DisplayID,
		"defines":      build.Defines(),
		"includes":     build.Includes(),
		"flags":        build.BuildFlags(),
		"libraries":    libraries,
		"globals":      prog.GlobalLines(),
		"setup":        prog.SetupLines(),
		"widgets":      widgets,
		"fonts":        fontMacros,
		"custom_fonts": custom,
		"default_font": style.DefaultFont.Name,
		"color_depth":  r.settings.ColorDepth,
		"log":          log,
	}
}
