package codegen

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/goliatone/go-lvglgen/pkg/model"
	"github.com/goliatone/go-lvglgen/pkg/style"
)

// Library is a pinned PlatformIO dependency.
type Library struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// String renders the library in platformio lib_deps form.
func (l Library) String() string {
	if l.Version == "" {
		return l.Name
	}
	return l.Name + "@" + l.Version
}

// BuildConfig accumulates build flags, defines, includes and library pins.
// Every collection only grows and repeated additions are no-ops.
type BuildConfig struct {
	defines   orderedSet
	flags     orderedSet
	includes  orderedSet
	libraries []Library
	fonts     map[string]style.Font
	widgets   map[model.WidgetType]struct{}
}

// NewBuildConfig returns an empty build configuration.
func NewBuildConfig() *BuildConfig {
	return &BuildConfig{
		fonts:   make(map[string]style.Font),
		widgets: make(map[model.WidgetType]struct{}),
	}
}

// AddDefine adds a preprocessor define. Adding it again has no effect.
func (b *BuildConfig) AddDefine(name string) { b.defines.add(name) }

// AddBuildFlag adds a compiler flag. Adding it again has no effect.
func (b *BuildConfig) AddBuildFlag(flag string) { b.flags.add(flag) }

// AddInclude adds a header to include from the generated main file.
func (b *BuildConfig) AddInclude(path string) { b.includes.add(path) }

// AddLibrary pins a library. Pinning the same library again with the same
// version is a no-op, a different version is an error.
func (b *BuildConfig) AddLibrary(name, version string) error {
	if name == "" {
		return fmt.Errorf("codegen: library name is required")
	}
	for _, lib := range b.libraries {
		if lib.Name != name {
			continue
		}
		if lib.Version != version {
			return fmt.Errorf("codegen: library %q already pinned at %q, cannot pin %q", name, lib.Version, version)
		}
		return nil
	}
	b.libraries = append(b.libraries, Library{Name: name, Version: version})
	return nil
}

// UseFont records a font the generated code references.
func (b *BuildConfig) UseFont(font style.Font) {
	b.fonts[font.Name] = font
}

// UseWidget records a widget type the generated code instantiates.
func (b *BuildConfig) UseWidget(t model.WidgetType) {
	b.widgets[t] = struct{}{}
}

// Defines returns the defines in insertion order.
func (b *BuildConfig) Defines() []string { return b.defines.list() }

// BuildFlags returns the build flags in insertion order.
func (b *BuildConfig) BuildFlags() []string { return b.flags.list() }

// Includes returns the includes in insertion order.
func (b *BuildConfig) Includes() []string { return b.includes.list() }

// Libraries returns the pinned libraries in insertion order.
func (b *BuildConfig) Libraries() []Library {
	return append([]Library(nil), b.libraries...)
}

// Fonts returns the used fonts sorted by name.
func (b *BuildConfig) Fonts() []style.Font {
	names := make([]string, 0, len(b.fonts))
	for name := range b.fonts {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]style.Font, len(names))
	for i, name := range names {
		out[i] = b.fonts[name]
	}
	return out
}

// Widgets returns the used widget types in canonical order.
func (b *BuildConfig) Widgets() []model.WidgetType {
	out := make([]model.WidgetType, 0, len(b.widgets))
	for _, t := range model.WidgetTypes {
		if _, ok := b.widgets[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// UsesWidget reports whether the widget type was recorded.
func (b *BuildConfig) UsesWidget(t model.WidgetType) bool {
	_, ok := b.widgets[t]
	return ok
}

// MarshalJSON renders the accumulated configuration as a manifest object.
func (b *BuildConfig) MarshalJSON() ([]byte, error) {
	fonts := b.Fonts()
	fontNames := make([]string, len(fonts))
	for i, f := range fonts {
		fontNames[i] = f.Name
	}
	return json.Marshal(struct {
		Libraries  []Library          `json:"libraries"`
		BuildFlags []string           `json:"buildFlags"`
		Defines    []string           `json:"defines"`
		Includes   []string           `json:"includes"`
		Fonts      []string           `json:"fonts"`
		Widgets    []model.WidgetType `json:"widgets"`
	}{
		Libraries:  nonNil(b.Libraries()),
		BuildFlags: nonNil(b.BuildFlags()),
		Defines:    nonNil(b.Defines()),
		Includes:   nonNil(b.Includes()),
		Fonts:      fontNames,
		Widgets:    b.Widgets(),
	})
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func (s *orderedSet) add(item string) {
	if item == "" {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[item]; ok {
		return
	}
	s.seen[item] = struct{}{}
	s.items = append(s.items, item)
}

func (s *orderedSet) list() []string {
	return append([]string(nil), s.items...)
}
