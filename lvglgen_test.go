package lvglgen

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-lvglgen/pkg/config"
	"github.com/goliatone/go-lvglgen/pkg/emit"
	"github.com/goliatone/go-lvglgen/pkg/orchestrator"
)

func TestGenerateFile(t *testing.T) {
	res, err := GenerateFile(context.Background(), "testdata/basic.yaml")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if diff := cmp.Diff([]string{"USE_GUI", "USE_LVGL_PROD", "USE_LABEL", "USE_ARC"}, res.Program.Build.Defines()); diff != "" {
		t.Fatalf("defines mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(res.Artifacts.MainCpp, "dial->set_value(25);") {
		t.Fatalf("arc value missing:\n%s", res.Artifacts.MainCpp)
	}
}

func TestGenerateFromRawAndValidate(t *testing.T) {
	raw := map[string]any{"id": "gui", "display_id": "tft"}
	if _, err := GenerateFromRaw(context.Background(), raw); err != nil {
		t.Fatalf("generate: %v", err)
	}
	doc, err := Validate(context.Background(), config.SourceFromFile("testdata/basic.yaml"))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if doc.Count() != 2 {
		t.Fatalf("expected 2 widgets, got %d", doc.Count())
	}
}

func TestWithThemeManifests(t *testing.T) {
	night := &theme.Manifest{Name: "night", Tokens: map[string]string{"bg_color": "#000000"}}
	res, err := GenerateFile(context.Background(), "testdata/basic.yaml", WithThemeManifests("", "", night))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, want := range []string{"lv_style_set_bg_color(&theme, lv_color_hex(0x000000));", "hello->add_style(&theme);"} {
		if !strings.Contains(res.Artifacts.MainCpp, want) {
			t.Errorf("main.cpp missing %q", want)
		}
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	var names []string
	err := fs.WalkDir(EmbeddedTemplates(), ".", func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			names = append(names, path)
		}
		return err
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	sort.Strings(names)
	if diff := cmp.Diff([]string{"lv_conf.h.tpl", "main.cpp.tpl", "platformio.ini.tpl"}, names); diff != "" {
		t.Fatalf("templates mismatch (-want +got):\n%s", diff)
	}
}

func TestExportTemplatesOverride(t *testing.T) {
	dir := t.TempDir()
	written, err := ExportTemplates(dir, false)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(written) != 3 {
		t.Fatalf("expected 3 templates, got %v", written)
	}
	custom := filepath.Join(dir, "main.cpp.tpl")
	if err := os.WriteFile(custom, []byte("// custom {{ component }}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	again, err := ExportTemplates(dir, false)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("existing templates must be kept, rewrote %v", again)
	}

	renderer, err := emit.New(emit.WithTemplateDir(dir))
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	res, err := GenerateFile(context.Background(), "testdata/basic.yaml", orchestrator.WithRenderer(renderer))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Artifacts.MainCpp != "// custom gui\n" {
		t.Fatalf("override not used: %q", res.Artifacts.MainCpp)
	}
}
