// Package ordered provides a YAML mapping that remembers key order.
//
// Both configuration formats are written by hand and users expect converted
// files to list items in the order they wrote them. A plain Go map loses that,
// so schema types use Map wherever a YAML mapping's order is observable.
package ordered

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Map is a string-keyed mapping that iterates in insertion order.
// The zero value is an empty map ready to use.
type Map[V any] struct {
	keys   []string
	values map[string]V
}

// Pair is a single key/value entry of a Map.
type Pair[V any] struct {
	Key   string
	Value V
}

// Set inserts or replaces the value for key. Replacing keeps the original position.
func (m *Map[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m Map[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of entries.
func (m Map[V]) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m Map[V]) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Pairs returns the entries in insertion order.
func (m Map[V]) Pairs() []Pair[V] {
	pairs := make([]Pair[V], 0, len(m.keys))
	for _, k := range m.keys {
		pairs = append(pairs, Pair[V]{Key: k, Value: m.values[k]})
	}
	return pairs
}

// IsZero reports whether the map is empty. yaml.v3 uses it for omitempty.
func (m Map[V]) IsZero() bool {
	return len(m.keys) == 0
}

// UnmarshalYAML decodes a YAML mapping node, keeping document order.
// A null node decodes to an empty map. A repeated key is an error.
func (m *Map[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*m = Map[V]{}
		return nil
	}

	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, kindName(node.Kind))
	}

	out := Map[V]{}
	lines := make(map[string]int, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		if first, dup := lines[keyNode.Value]; dup {
			return fmt.Errorf("line %d: duplicate key %q, first defined at line %d", keyNode.Line, keyNode.Value, first)
		}
		lines[keyNode.Value] = keyNode.Line

		var value V
		if err := valueNode.Decode(&value); err != nil {
			return fmt.Errorf("key %q: %w", keyNode.Value, err)
		}
		out.Set(keyNode.Value, value)
	}

	*m = out
	return nil
}

// MarshalYAML encodes the map as a YAML mapping node in insertion order.
func (m Map[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		var valueNode yaml.Node
		if err := valueNode.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&valueNode,
		)
	}
	return node, nil
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "empty node"
	}
}
