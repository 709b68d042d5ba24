package codegen

import (
	"fmt"

	"github.com/goliatone/go-lvglgen/pkg/schema"
)

// Settings tune the generated build configuration. They are tool settings,
// not part of the GUI document.
type Settings struct {
	// Namespace is the C++ namespace of the wrapper classes.
	Namespace      string `yaml:"namespace" json:"namespace"`
	Library        string `yaml:"library" json:"library"`
	LibraryVersion string `yaml:"library_version" json:"libraryVersion"`
	// Log toggles LV_USE_LOG.
	Log bool `yaml:"log" json:"log"`
	// ConfPath is the lv_conf.h path passed through LV_CONF_PATH and included
	// from the generated sources.
	ConfPath string `yaml:"conf_path" json:"confPath"`
	// ColorDepth is written to LV_COLOR_DEPTH.
	ColorDepth int `yaml:"color_depth" json:"colorDepth"`
}

// DefaultSettings pins LVGL 8.3 with logging enabled.
func DefaultSettings() Settings {
	return Settings{
		Namespace:      "gui",
		Library:        "lvgl/lvgl",
		LibraryVersion: "^8.3",
		Log:            true,
		ConfPath:       "lv_conf.h",
		ColorDepth:     16,
	}
}

// Validate checks that the settings can produce valid output.
func (s Settings) Validate() error {
	if _, err := schema.Identifier(s.Namespace); err != nil {
		return fmt.Errorf("codegen: settings namespace: %w", err)
	}
	if s.Library == "" {
		return fmt.Errorf("codegen: settings library is required")
	}
	if s.ConfPath == "" {
		return fmt.Errorf("codegen: settings conf_path is required")
	}
	switch s.ColorDepth {
	case 1, 8, 16, 32:
	default:
		return fmt.Errorf("codegen: settings color_depth must be 1, 8, 16 or 32, got %d", s.ColorDepth)
	}
	return nil
}

// Class qualifies a wrapper class with the namespace.
func (s Settings) Class(name string) string {
	return s.Namespace + "::" + name
}

// BuildFlags returns the compiler flags the LVGL library needs.
func (s Settings) BuildFlags() []string {
	log := "0"
	if s.Log {
		log = "1"
	}
	return []string{
		"-D LV_USE_LOG=" + log,
		"-D LV_USE_DEV_VERSION=0",
		"-D LV_CONF_PATH='" + s.ConfPath + "'",
	}
}
