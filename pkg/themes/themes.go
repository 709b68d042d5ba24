// Package themes turns go-theme manifests into LVGL style definitions. Theme
// tokens are named after style properties (bg_color, radius, text_font, ...)
// and a variant overrides the tokens of its base theme.
package themes

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-lvglgen/pkg/model"
	"github.com/goliatone/go-lvglgen/pkg/orchestrator"
	"github.com/goliatone/go-lvglgen/pkg/schema"
	"github.com/goliatone/go-lvglgen/pkg/style"
)

// DefaultStyleID names the style definition a theme becomes.
const DefaultStyleID = "theme"

// Tokens resolves the tokens of a selection with the variant applied.
func Tokens(sel *theme.Selection) map[string]string {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	out := make(map[string]string, len(sel.Manifest.Tokens))
	for k, v := range sel.Manifest.Tokens {
		out[k] = v
	}
	if sel.Variant != "" {
		if variant, ok := sel.Manifest.Variants[sel.Variant]; ok {
			for k, v := range variant.Tokens {
				out[k] = v
			}
		}
	}
	return out
}

// Settings validates the tokens of a selection as style properties. Every
// failing token is reported.
func Settings(sel *theme.Selection) ([]style.Setting, error) {
	tokens := Tokens(sel)
	names := make([]string, 0, len(tokens))
	for name := range tokens {
		names = append(names, name)
	}
	sort.Strings(names)

	cfg := make(map[string]any, len(tokens))
	var errs schema.Errors
	for _, name := range names {
		prop, ok := style.Lookup(name)
		if !ok {
			errs = append(errs, &schema.Error{Path: []string{"tokens", name}, Message: "not a style property"})
			continue
		}
		value, err := prop.Validate(tokens[name])
		if err != nil {
			errs = append(errs, schema.Flatten(schema.Prefix(schema.Prefix(err, name), "tokens"))...)
			continue
		}
		cfg[name] = value
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("themes: %s: %w", sel.Theme, errs)
	}
	return style.Collect(cfg), nil
}

// Transformer selects name/variant through selector and applies the result
// as a style definition to every top level widget without explicit styles.
func Transformer(selector theme.ThemeSelector, name, variant, styleID string) orchestrator.Transformer {
	if styleID == "" {
		styleID = DefaultStyleID
	}
	return orchestrator.TransformerFunc(func(ctx context.Context, doc *model.Document) error {
		if selector == nil {
			return fmt.Errorf("themes: selector is nil")
		}
		sel, err := selector.Select(name, variant)
		if err != nil {
			return fmt.Errorf("themes: select %q: %w", name, err)
		}
		settings, err := Settings(sel)
		if err != nil {
			return err
		}
		return orchestrator.Theme(styleID, settings).Transform(ctx, doc)
	})
}

// Selector serves selections from in-memory manifests.
type Selector struct {
	manifests map[string]*theme.Manifest
	fallback  string
}

// NewSelector indexes manifests by name. The first manifest is selected when
// a request names no theme.
func NewSelector(manifests ...*theme.Manifest) *Selector {
	s := &Selector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, m := range manifests {
		if m == nil {
			continue
		}
		if s.fallback == "" {
			s.fallback = m.Name
		}
		s.manifests[m.Name] = m
	}
	return s
}

// Select implements theme.ThemeSelector.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		name = s.fallback
	}
	m, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("themes: theme %q not found", name)
	}
	if variant != "" {
		if _, ok := m.Variants[variant]; !ok {
			return nil, fmt.Errorf("themes: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: m.Name, Variant: variant, Manifest: m}, nil
}

// LoadManifest reads a theme manifest from a YAML or JSON file.
func LoadManifest(path string) (*theme.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("themes: read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes a manifest with name, version, tokens and variants.
func ParseManifest(data []byte) (*theme.Manifest, error) {
	var doc struct {
		Name     string                       `yaml:"name"`
		Version  string                       `yaml:"version"`
		Tokens   map[string]string            `yaml:"tokens"`
		Variants map[string]map[string]string `yaml:"variants"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("themes: parse manifest: %w", err)
	}
	if strings.TrimSpace(doc.Name) == "" {
		return nil, fmt.Errorf("themes: manifest name is required")
	}
	m := &theme.Manifest{
		Name:    doc.Name,
		Version: doc.Version,
		Tokens:  doc.Tokens,
	}
	if len(doc.Variants) > 0 {
		m.Variants = make(map[string]theme.Variant, len(doc.Variants))
		for name, tokens := range doc.Variants {
			m.Variants[name] = theme.Variant{Tokens: tokens}
		}
	}
	return m, nil
}
