package pongo_test

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	gotemplate "github.com/goliatone/go-template"

	"github.com/goliatone/go-lvglgen/pkg/emit/template/pongo"
	"github.com/goliatone/go-lvglgen/pkg/testsupport"
)

func newEngine(t *testing.T, opts ...pongo.Option) *pongo.Engine {
	t.Helper()

	files := fstest.MapFS{
		"hello.tpl":  {Data: []byte("Hello {{ name }}!")},
		"lines.tpl":  {Data: []byte("{% for l in lines %}\n{{ l }};\n{% endfor %}\n")},
		"global.tpl": {Data: []byte("{{ tool }}")},
		"raw.tpl":    {Data: []byte("{% autoescape off %}{{ code }}{% endautoescape %}")},
	}
	engine, err := pongo.New(append([]pongo.Option{pongo.WithFS(files)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestRenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})
	if result != "Hello Ada!" {
		t.Fatalf("unexpected result %q", result)
	}
	if written != result {
		t.Fatalf("writer got %q, want %q", written, result)
	}
}

func TestTrimBlocks(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderTemplate("lines.tpl", map[string]any{"lines": []string{"a", "b"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "a;\nb;\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestAutoescapeOff(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderTemplate("raw", map[string]any{"code": `a->set_text("<b>");`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != `a->set_text("<b>");` {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestGlobalContext(t *testing.T) {
	engine := newEngine(t, pongo.WithGlobalData(map[string]any{"tool": "seed"}))
	if got, _ := engine.RenderTemplate("global", nil); got != "seed" {
		t.Fatalf("expected seeded global, got %q", got)
	}
	if err := engine.GlobalContext(map[string]any{"tool": "lvglgen"}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	if got, _ := engine.RenderTemplate("global", nil); got != "lvglgen" {
		t.Fatalf("expected updated global, got %q", got)
	}
}

func TestRegisterFilter(t *testing.T) {
	engine := newEngine(t)
	shout := func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	}
	if err := engine.RegisterFilter("pongo_test_shout", shout); err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("pongo_test_shout", shout); err == nil {
		t.Fatal("expected duplicate filter registration to fail")
	}
	got, err := engine.RenderString("{{ name|pongo_test_shout }}", map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "ADA!" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestErrors(t *testing.T) {
	if _, err := pongo.New(); err == nil {
		t.Fatal("expected error without template source")
	}
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatal("expected missing template error")
	}
	if _, err := engine.RenderTemplate("hello", struct{}{}); err == nil {
		t.Fatal("expected error for non map data")
	}
}

func TestHooks(t *testing.T) {
	rename := func(hc *gotemplate.HookContext) error {
		if hc.TemplateName == "greeting" {
			hc.TemplateName = "hello"
		}
		data, _ := hc.Data.(map[string]any)
		if _, ok := data["name"]; !ok {
			hc.Data = map[string]any{"name": "default"}
		}
		return nil
	}
	shout := func(hc *gotemplate.HookContext) (string, error) {
		return strings.ToUpper(hc.Output), nil
	}
	suffix := func(hc *gotemplate.HookContext) (string, error) {
		return hc.Output + " [" + hc.TemplateName + "]", nil
	}
	engine := newEngine(t, pongo.WithPreHook(rename), pongo.WithPostHook(suffix, 1), pongo.WithPostHook(shout))

	got, err := engine.RenderTemplate("greeting", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "HELLO DEFAULT! [hello]" {
		t.Fatalf("unexpected result %q", got)
	}

	engine.RegisterPostHook(func(hc *gotemplate.HookContext) (string, error) {
		return strings.TrimSpace(hc.Output), nil
	})
	got, err = engine.RenderString(" {{ name }} ", map[string]any{"name": "inline"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "INLINE []" {
		t.Fatalf("unexpected inline result %q", got)
	}
}

func TestPreHookError(t *testing.T) {
	engine := newEngine(t, pongo.WithPreHook(func(*gotemplate.HookContext) error {
		return fmt.Errorf("missing data")
	}))
	if _, err := engine.RenderTemplate("hello", nil); err == nil || !strings.Contains(err.Error(), "missing data") {
		t.Fatalf("expected pre hook error, got %v", err)
	}
}
