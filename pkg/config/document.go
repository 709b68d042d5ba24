package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// KeyComponent is the host configuration key the GUI document lives under
// when a whole device configuration is loaded.
const KeyComponent = "gui"

// Document is a loaded, not yet validated, YAML document.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument wraps raw bytes read from src.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, ErrNoSource
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, fmt.Errorf("%w: %s", ErrEmptyDocument, src.Location())
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// Source returns where the document was loaded from.
func (d Document) Source() Source { return d.source }

// Location is a shorthand for Source().Location().
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Raw returns a copy of the document bytes.
func (d Document) Raw() []byte { return append([]byte(nil), d.raw...) }

// Decode parses the document into the generic tree the validator consumes.
// A full device configuration is narrowed to its gui entry.
func (d Document) Decode() (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(d.raw, &root); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", d.Location(), err)
	}
	tree, err := toTree(&root)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", d.Location(), err)
	}
	return narrow(tree)
}

func narrow(tree any) (any, error) {
	m, ok := tree.(map[string]any)
	if !ok {
		return tree, nil
	}
	inner, ok := m[KeyComponent]
	if !ok {
		return tree, nil
	}
	if _, standalone := m["display_id"]; standalone {
		return tree, nil
	}
	if list, ok := inner.([]any); ok {
		if len(list) != 1 {
			return nil, fmt.Errorf("config: expected one %s component, found %d", KeyComponent, len(list))
		}
		return list[0], nil
	}
	return inner, nil
}
