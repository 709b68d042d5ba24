package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-lvglgen/pkg/codegen"
)

const standalone = `
id: gui_main
display_id: tft
widgets:
  - label:
      position: 10,20
      dimensions: 100x20
      text: Hello
`

func decode(t *testing.T, src Source, opts ...LoaderOption) any {
	t.Helper()
	doc, err := NewLoader(opts...).Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tree, err := doc.Decode()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return tree
}

func TestLoadSources(t *testing.T) {
	want := map[string]any{
		"id":         "gui_main",
		"display_id": "tft",
		"widgets": []any{map[string]any{"label": map[string]any{
			"position":   "10,20",
			"dimensions": "100x20",
			"text":       "Hello",
		}}},
	}

	path := filepath.Join(t.TempDir(), "gui.yaml")
	if err := os.WriteFile(path, []byte(standalone), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	files := fstest.MapFS{"screens/gui.yaml": {Data: []byte(standalone)}}

	cases := map[string]struct {
		src  Source
		opts []LoaderOption
	}{
		"file":  {src: SourceFromFile(path)},
		"fs":    {src: SourceFromFS("screens/gui.yaml"), opts: []LoaderOption{WithFileSystem(files)}},
		"bytes": {src: SourceFromBytes("inline", []byte(standalone))},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := decode(t, tc.src, tc.opts...)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := NewLoader().Load(ctx, nil); !errors.Is(err, ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
	if _, err := NewLoader().Load(ctx, SourceFromBytes("", []byte("  \n"))); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	if _, err := NewLoader().Load(ctx, SourceFromFS("gui.yaml")); err == nil {
		t.Fatal("expected error without filesystem")
	}
	if _, err := NewLoader().Load(ctx, SourceFromFile(filepath.Join(t.TempDir(), "missing.yaml"))); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist error, got %v", err)
	}
}

func TestDecodeNarrowsDeviceConfig(t *testing.T) {
	device := `
esphome:
  name: panel
display:
  - platform: ili9341
    id: tft
gui:
  id: gui_main
  display_id: tft
`
	got := decode(t, SourceFromBytes("device", []byte(device)))
	want := map[string]any{"id": "gui_main", "display_id": "tft"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}

	listed := "gui:\n  - id: a\n    display_id: tft\n  - id: b\n    display_id: tft\n"
	doc, err := NewDocument(SourceFromBytes("listed", []byte(listed)), []byte(listed))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	if _, err := doc.Decode(); err == nil {
		t.Fatal("expected error for two gui components")
	}
}

func TestDecodeMergeKeys(t *testing.T) {
	src := `
id: gui_main
display_id: tft
widgets:
  - label: &base
      position: 0,0
      dimensions: 10x10
      text: a
  - label:
      <<: *base
      text: b
`
	tree := decode(t, SourceFromBytes("merge", []byte(src))).(map[string]any)
	second := tree["widgets"].([]any)[1].(map[string]any)["label"].(map[string]any)
	want := map[string]any{"position": "0,0", "dimensions": "10x10", "text": "b"}
	if diff := cmp.Diff(want, second); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]struct {
		src  string
		want string
	}{
		"duplicate": {src: "id: a\nid: b\n", want: `line 2: duplicate key "id", first set on line 1`},
		"tag":       {src: "id: !secret gui_id\n", want: "line 1: tag !secret is not supported"},
		"syntax":    {src: "id: [\n", want: "parse"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			doc, err := NewDocument(SourceFromBytes(name, []byte(tc.src)), []byte(tc.src))
			if err != nil {
				t.Fatalf("new document: %v", err)
			}
			_, err = doc.Decode()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestParseSettings(t *testing.T) {
	got, err := ParseSettings([]byte("library_version: 8.3.11\nlog: false\nconf_path: include/lv_conf.h\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := codegen.DefaultSettings()
	want.LibraryVersion = "8.3.11"
	want.Log = false
	want.ConfPath = "include/lv_conf.h"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}

	if _, err := ParseSettings([]byte("colour_depth: 16\n")); err == nil {
		t.Fatal("expected unknown key to fail")
	}
	if _, err := ParseSettings([]byte("color_depth: 12\n")); err == nil {
		t.Fatal("expected invalid color depth to fail")
	}
	empty, err := ParseSettings(nil)
	if err != nil {
		t.Fatalf("parse empty: %v", err)
	}
	if diff := cmp.Diff(codegen.DefaultSettings(), empty); diff != "" {
		t.Fatalf("empty settings mismatch (-want +got):\n%s", diff)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := codegen.DefaultSettings()
	s.Namespace = "ui"
	data, err := MarshalSettings(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := ParseSettings(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
