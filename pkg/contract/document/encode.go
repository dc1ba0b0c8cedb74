package document

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Marshal serializes a value tree to YAML, preserving mapping key order.
func Marshal(v Value) ([]byte, error) {
	node, err := toNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

// Unmarshal parses plain YAML (no include directives) into a value tree.
// It is the inverse of Marshal and is used to restore persisted snapshots.
func Unmarshal(data []byte) (Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if node.Kind == 0 {
		return nil, nil
	}
	return fromNode(&node)
}

// toNode converts a value into a YAML node tree.
func toNode(v Value) (*yaml.Node, error) {
	switch value := v.(type) {
	case *Mapping:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range value.keys {
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
			valueNode, err := toNode(value.values[key])
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, keyNode, valueNode)
		}
		return node, nil

	case []Value:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range value {
			itemNode, err := toNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, itemNode)
		}
		return node, nil

	default:
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, fmt.Errorf("cannot encode value of type %T: %w", v, err)
		}
		return node, nil
	}
}

// fromNode converts a YAML node tree into a value.
func fromNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromNode(node.Content[0])

	case yaml.AliasNode:
		return fromNode(node.Alias)

	case yaml.MappingNode:
		m := NewMapping()
		for i := 0; i+1 < len(node.Content); i += 2 {
			var key string
			if err := node.Content[i].Decode(&key); err != nil {
				return nil, fmt.Errorf("unsupported mapping key at line %d: %w", node.Content[i].Line, err)
			}
			value, err := fromNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key, value)
		}
		return m, nil

	case yaml.SequenceNode:
		seq := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			value, err := fromNode(child)
			if err != nil {
				return nil, err
			}
			seq = append(seq, value)
		}
		return seq, nil

	case yaml.ScalarNode:
		var value interface{}
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("invalid scalar at line %d: %w", node.Line, err)
		}
		return value, nil
	}

	return nil, fmt.Errorf("unsupported YAML node kind %d", node.Kind)
}
