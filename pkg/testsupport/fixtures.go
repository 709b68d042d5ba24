// Package testsupport holds fixture helpers shared by package tests.
package testsupport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads a YAML fixture into a generic tree (maps, lists and
// scalars) as the validator expects it.
func LoadYAML(t *testing.T, path string) any {
	t.Helper()

	raw, err := LoadYAMLFromPath(path)
	if err != nil {
		t.Fatalf("load yaml fixture: %v", err)
	}
	return raw
}

// LoadYAMLFromPath is LoadYAML for callers without a *testing.T.
func LoadYAMLFromPath(path string) (any, error) {
	if path == "" {
		return nil, errors.New("testsupport: fixture path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read fixture: %w", err)
	}
	return DecodeYAML(data)
}

// DecodeYAML decodes an inline YAML document.
func DecodeYAML(data []byte) (any, error) {
	var out any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("testsupport: decode yaml: %w", err)
	}
	return out, nil
}

// MustDecodeYAML decodes inline YAML or fails the test.
func MustDecodeYAML(t *testing.T, src string) any {
	t.Helper()

	out, err := DecodeYAML([]byte(src))
	if err != nil {
		t.Fatalf("%v", err)
	}
	return out
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
