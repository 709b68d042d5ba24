package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-lvglgen/pkg/scaffold"
)

func run(t *testing.T, a *app, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := a.root(&out, &errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestValidate(t *testing.T) {
	out, _, err := run(t, newApp(), "", "validate", "testdata/dashboard.yaml")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "testdata/dashboard.yaml") || !strings.Contains(out, "gui_main on tft, 3 widgets") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestValidateReportsEveryFile(t *testing.T) {
	out, errOut, err := run(t, newApp(), "", "validate", "testdata/invalid.yaml", "testdata/dashboard.yaml")
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported failure, got %v", err)
	}
	if !strings.Contains(errOut, "testdata/invalid.yaml") || !strings.Contains(errOut, "widgets[0].label.position") {
		t.Fatalf("missing failure details:\n%s", errOut)
	}
	if !strings.Contains(out, "testdata/dashboard.yaml") {
		t.Fatalf("valid file should still be reported:\n%s", out)
	}
}

func TestValidateStdin(t *testing.T) {
	doc := "id: gui\ndisplay_id: tft\n"
	out, _, err := run(t, newApp(), doc, "validate", "-")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "<stdin>") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestGeneratePrintsMainCpp(t *testing.T) {
	out, _, err := run(t, newApp(), "", "generate", "testdata/dashboard.yaml")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, want := range []string{"void setup()", "title->add_style(&card);", "level->set_value(40, LV_ANIM_OFF);"} {
		if !strings.Contains(out, want) {
			t.Errorf("main.cpp missing %q", want)
		}
	}
}

func TestGenerateWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	out, _, err := run(t, newApp(), "",
		"generate", "testdata/dashboard.yaml",
		"-o", dir,
		"--settings", "testdata/settings.yaml",
		"--color-depth", "32",
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, name := range []string{"main.cpp", "platformio.ini", "manifest.json", filepath.Join("include", "lv_conf.h")} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
	if !strings.Contains(out, "main.cpp") {
		t.Fatalf("written files should be listed:\n%s", out)
	}

	conf, err := os.ReadFile(filepath.Join(dir, "include", "lv_conf.h"))
	if err != nil {
		t.Fatalf("read lv_conf.h: %v", err)
	}
	if !strings.Contains(string(conf), "#define LV_COLOR_DEPTH 32") || !strings.Contains(string(conf), "#define LV_USE_LOG 0") {
		t.Fatalf("settings not applied:\n%s", conf)
	}
}

func TestGenerateWithTheme(t *testing.T) {
	out, _, err := run(t, newApp(), "", "generate", "testdata/dashboard.yaml", "--theme", "testdata/night.yaml", "--variant", "contrast")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, want := range []string{"lv_style_init(&theme);", "level->add_style(&theme);", "title->add_style(&card);"} {
		if !strings.Contains(out, want) {
			t.Errorf("main.cpp missing %q", want)
		}
	}
}

func TestGenerateWithCopyright(t *testing.T) {
	out, _, err := run(t, newApp(), "", "generate", "testdata/dashboard.yaml", "--copyright", "Copyright 2026 ACME")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(out, "// Copyright 2026 ACME\n") {
		t.Fatalf("copyright header missing:\n%s", out)
	}
}

func TestGenerateInvalid(t *testing.T) {
	_, errOut, err := run(t, newApp(), "", "generate", "testdata/invalid.yaml")
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported failure, got %v", err)
	}
	if !strings.Contains(errOut, "widgets[0].label.position") {
		t.Fatalf("missing failure details:\n%s", errOut)
	}

	if _, _, err := run(t, newApp(), "", "generate", "testdata/dashboard.yaml", "--color-depth", "3"); err == nil {
		t.Fatal("expected invalid color depth to fail")
	}
}

func TestSchema(t *testing.T) {
	out, _, err := run(t, newApp(), "", "schema")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("schema output is not JSON: %v", err)
	}
	if doc["title"] == nil {
		t.Fatal("schema should carry a title")
	}
}

type scriptedDriver struct {
	inputs  []string
	confirm []bool
}

func (d *scriptedDriver) Input(_ context.Context, cfg scaffold.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return cfg.Default, nil
	}
	v := d.inputs[0]
	d.inputs = d.inputs[1:]
	return v, nil
}

func (d *scriptedDriver) Confirm(context.Context, scaffold.ConfirmConfig) (bool, error) {
	if len(d.confirm) == 0 {
		return false, nil
	}
	v := d.confirm[0]
	d.confirm = d.confirm[1:]
	return v, nil
}

func (d *scriptedDriver) Select(context.Context, scaffold.SelectConfig) (int, error) {
	return 0, nil
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func TestInit(t *testing.T) {
	a := newApp()
	a.newDriver = func(io.Writer) scaffold.PromptDriver {
		return &scriptedDriver{inputs: []string{"gui", "tft", "", "0,0", "100x20", "Hi"}, confirm: []bool{true, false}}
	}
	path := filepath.Join(t.TempDir(), "gui.yaml")
	if _, _, err := run(t, a, "", "init", "-o", path); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, _, err := run(t, newApp(), "", "validate", path); err != nil {
		t.Fatalf("scaffolded file should validate: %v", err)
	}
	if _, _, err := run(t, a, "", "init", "-o", path); err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("expected overwrite protection, got %v", err)
	}
}

func TestVersionAndLogFormat(t *testing.T) {
	out, _, err := run(t, newApp(), "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "lvglgen "+Version+"\n" {
		t.Fatalf("unexpected version output %q", out)
	}
	if _, _, err := run(t, newApp(), "", "--log-format", "xml", "version"); err == nil {
		t.Fatal("expected unknown log format to fail")
	}
}
