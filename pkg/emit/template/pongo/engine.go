// Package pongo implements template.TemplateRenderer on top of pongo2.
package pongo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplate "github.com/goliatone/go-template"

	"github.com/goliatone/go-lvglgen/pkg/emit/template"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	name       string
	baseDir    string
	templates  fs.FS
	extension  string
	globals    map[string]any
	keepBlocks bool
	hooks      *gotemplate.HookManager
}

// WithName names the underlying template set, which shows up in errors.
func WithName(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.name = trimmed
		}
	}
}

// WithBaseDir loads templates from a directory on disk. Templates found there
// take precedence over those of WithFS.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the default .tpl extension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithGlobalData seeds values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// WithKeepBlockWhitespace disables trimming of the newline after block tags.
// Generated sources are trimmed by default so loops do not leave blank lines.
func WithKeepBlockWhitespace() Option {
	return func(cfg *config) {
		cfg.keepBlocks = true
	}
}

// WithPreHook runs hook before every render, lowest priority first. Hooks
// may replace the data, the template name or the inline template content.
func WithPreHook(hook gotemplate.PreHook, priority ...int) Option {
	return func(cfg *config) {
		if hook != nil {
			cfg.hooks.AddPreHook(hook, priority...)
		}
	}
}

// WithPostHook runs hook on every rendered output, lowest priority first.
func WithPostHook(hook gotemplate.PostHook, priority ...int) Option {
	return func(cfg *config) {
		if hook != nil {
			cfg.hooks.AddPostHook(hook, priority...)
		}
	}
}

// Engine renders pongo2 templates loaded from disk or an fs.FS.
type Engine struct {
	mu sync.RWMutex

	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	ext       string
	hooks     *gotemplate.HookManager
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine.
func New(options ...Option) (*Engine, error) {
	cfg := &config{name: "lvglgen", extension: ".tpl", hooks: gotemplate.NewHooksManager()}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("pongo: need to provide either base dir or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("pongo: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}

	set := pongo2.NewSet(cfg.name, loaders...)
	set.Options.TrimBlocks = !cfg.keepBlocks
	set.Options.LStripBlocks = !cfg.keepBlocks

	e := &Engine{
		set:       set,
		templates: make(map[string]*pongo2.Template),
		ext:       cfg.extension,
		hooks:     cfg.hooks,
	}
	if err := e.GlobalContext(cfg.globals); err != nil {
		return nil, fmt.Errorf("pongo: apply global data: %w", err)
	}
	return e, nil
}

// RenderTemplate renders a named template. The extension is appended when
// missing.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("pongo: engine is nil")
	}
	hc := &gotemplate.HookContext{
		TemplateName: name,
		Data:         data,
		Metadata:     map[string]any{"ext": e.ext},
	}
	if err := e.runPreHooks(hc); err != nil {
		return "", err
	}
	path := hc.TemplateName
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}
	tmpl, err := e.lookup(path)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, hc, fmt.Sprintf("template %q", path), out)
}

// RenderString parses and renders an inline template.
func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("pongo: engine is nil")
	}
	hc := &gotemplate.HookContext{
		Template: content,
		Data:     data,
		Metadata: map[string]any{},
	}
	if err := e.runPreHooks(hc); err != nil {
		return "", err
	}
	tmpl, err := e.set.FromString(hc.Template)
	if err != nil {
		return "", fmt.Errorf("pongo: parse template string: %w", err)
	}
	return e.execute(tmpl, hc, "template string", out)
}

// RegisterPreHook adds a pre hook after construction.
func (e *Engine) RegisterPreHook(hook gotemplate.PreHook) {
	e.hooks.AddPreHook(hook)
}

// RegisterPostHook adds a post hook after construction.
func (e *Engine) RegisterPostHook(hook gotemplate.PostHook) {
	e.hooks.AddPostHook(hook)
}

func (e *Engine) runPreHooks(hc *gotemplate.HookContext) error {
	for _, hook := range e.hooks.PreHooks() {
		hc.IsPreHook = true
		if err := hook(hc); err != nil {
			return fmt.Errorf("pongo: pre hook: %w", err)
		}
	}
	hc.IsPreHook = false
	return nil
}

// RegisterFilter registers a filter. pongo2 filters are process wide, so a
// name already taken is an error.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("pongo: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("pongo: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, adaptFilter(fn))
}

// GlobalContext merges data into the values every template sees.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errors.New("pongo: engine is nil")
	}
	if data == nil {
		return nil
	}
	ctx, err := toContext(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = make(pongo2.Context)
	}
	e.set.Globals.Update(ctx)
	return nil
}

// EnsureFilter registers fn unless a filter of that name already exists.
func EnsureFilter(name string, fn func(input any, param any) (any, error)) error {
	if pongo2.FilterExists(name) {
		return nil
	}
	return pongo2.RegisterFilter(name, adaptFilter(fn))
}

func adaptFilter(fn func(input any, param any) (any, error)) pongo2.FilterFunction {
	return func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var p any
		if param != nil {
			p = param.Interface()
		}
		result, err := fn(in.Interface(), p)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter", OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}
}

func (e *Engine) execute(tmpl *pongo2.Template, hc *gotemplate.HookContext, what string, out []io.Writer) (string, error) {
	ctx, err := toContext(hc.Data)
	if err != nil {
		return "", fmt.Errorf("pongo: convert data: %w", err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("pongo: execute %s: %w", what, err)
	}

	hc.Output = buf.String()
	for _, hook := range e.hooks.PostHooks() {
		rendered, err := hook(hc)
		if err != nil {
			return "", fmt.Errorf("pongo: post hook: %w", err)
		}
		hc.Output = rendered
	}

	for _, w := range out {
		if _, err := io.WriteString(w, hc.Output); err != nil {
			return "", err
		}
	}
	return hc.Output, nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("pongo: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		out := make(pongo2.Context, len(v))
		for key, value := range v {
			if key = strings.TrimSpace(key); key != "" {
				out[key] = value
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported template data %T, want a map", data)
	}
}
