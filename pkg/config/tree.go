package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// toTree converts a yaml.Node into maps, lists and scalars. Anchors and merge
// keys are resolved; duplicate keys and custom tags are rejected with their
// line number.
func toTree(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return toTree(n.Content[0])
	case yaml.AliasNode:
		return toTree(n.Alias)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := toTree(child)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		return toMap(n)
	case yaml.ScalarNode:
		if n.Tag != "" && n.Tag[0] == '!' && (len(n.Tag) < 2 || n.Tag[1] != '!') {
			return nil, fmt.Errorf("line %d: tag %s is not supported", n.Line, n.Tag)
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unexpected yaml node", n.Line)
	}
}

func toMap(n *yaml.Node) (map[string]any, error) {
	out := make(map[string]any, len(n.Content)/2)
	explicit := make(map[string]int, len(n.Content)/2)
	var merged []map[string]any

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
		}
		if key.Tag == "!!merge" || (key.Value == "<<" && key.Tag == "") {
			m, err := mergeSources(val)
			if err != nil {
				return nil, err
			}
			merged = append(merged, m...)
			continue
		}
		if line, dup := explicit[key.Value]; dup {
			return nil, fmt.Errorf("line %d: duplicate key %q, first set on line %d", key.Line, key.Value, line)
		}
		explicit[key.Value] = key.Line
		v, err := toTree(val)
		if err != nil {
			return nil, err
		}
		out[key.Value] = v
	}

	for _, m := range merged {
		for k, v := range m {
			if _, set := out[k]; !set {
				out[k] = v
			}
		}
	}
	return out, nil
}

func mergeSources(n *yaml.Node) ([]map[string]any, error) {
	var nodes []*yaml.Node
	if n.Kind == yaml.SequenceNode {
		nodes = n.Content
	} else {
		nodes = []*yaml.Node{n}
	}
	out := make([]map[string]any, 0, len(nodes))
	for _, node := range nodes {
		v, err := toTree(node)
		if err != nil {
			return nil, err
		}
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("line %d: merge value must be a mapping", node.Line)
		}
		out = append(out, m)
	}
	return out, nil
}
