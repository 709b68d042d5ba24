package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-lvglgen/pkg/codegen"
)

// LoadSettings reads tool settings from a YAML file on top of the defaults.
// An empty path returns the defaults.
func LoadSettings(path string) (codegen.Settings, error) {
	if path == "" {
		return codegen.DefaultSettings(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return codegen.Settings{}, fmt.Errorf("config: read settings: %w", err)
	}
	return ParseSettings(data)
}

// ParseSettings decodes settings YAML. Unknown keys are rejected.
func ParseSettings(data []byte) (codegen.Settings, error) {
	settings := codegen.DefaultSettings()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&settings); err != nil && !errors.Is(err, io.EOF) {
		return codegen.Settings{}, fmt.Errorf("config: parse settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return codegen.Settings{}, err
	}
	return settings, nil
}

// MarshalSettings renders settings as YAML.
func MarshalSettings(s codegen.Settings) ([]byte, error) {
	return yaml.Marshal(s)
}
