package linkml

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type named interface {
	elementName() string
}

type settable[T any] interface {
	*T
	named
	setElementName(string)
}

// marshalNamed writes items as a mapping keyed by element name, in order.
func marshalNamed[T named](items []T) (any, error) {
	if len(items) == 0 {
		return nil, nil
	}

	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, it := range items {
		var value yaml.Node
		if err := value.Encode(it); err != nil {
			return nil, fmt.Errorf("encode %s: %w", it.elementName(), err)
		}

		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: it.elementName()}
		node.Content = append(node.Content, key, &value)
	}

	return node, nil
}

// unmarshalNamed reads a mapping keyed by element name, keeping key order.
// A missing name inside the value is taken from the key.
func unmarshalNamed[T any, P settable[T]](node *yaml.Node) ([]P, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of named elements", node.Line)
	}

	out := make([]P, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		item := P(new(T))
		if !(value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
			if err := value.Decode(item); err != nil {
				return nil, fmt.Errorf("%s: %w", key.Value, err)
			}
		}

		if item.elementName() == "" {
			item.setElementName(key.Value)
		}

		out = append(out, item)
	}

	return out, nil
}

// MarshalYAML implements yaml.Marshaler for Classes.
func (c Classes) MarshalYAML() (any, error) { return marshalNamed(c) }

// UnmarshalYAML implements yaml.Unmarshaler for Classes.
func (c *Classes) UnmarshalYAML(node *yaml.Node) error {
	items, err := unmarshalNamed[ClassDefinition](node)
	*c = items

	return err
}

// MarshalYAML implements yaml.Marshaler for Slots.
func (s Slots) MarshalYAML() (any, error) { return marshalNamed(s) }

// UnmarshalYAML implements yaml.Unmarshaler for Slots.
func (s *Slots) UnmarshalYAML(node *yaml.Node) error {
	items, err := unmarshalNamed[SlotDefinition](node)
	*s = items

	return err
}

// MarshalYAML implements yaml.Marshaler for Types.
func (t Types) MarshalYAML() (any, error) { return marshalNamed(t) }

// UnmarshalYAML implements yaml.Unmarshaler for Types.
func (t *Types) UnmarshalYAML(node *yaml.Node) error {
	items, err := unmarshalNamed[TypeDefinition](node)
	*t = items

	return err
}

// MarshalYAML implements yaml.Marshaler for Enums.
func (e Enums) MarshalYAML() (any, error) { return marshalNamed(e) }

// UnmarshalYAML implements yaml.Unmarshaler for Enums.
func (e *Enums) UnmarshalYAML(node *yaml.Node) error {
	items, err := unmarshalNamed[EnumDefinition](node)
	*e = items

	return err
}

// MarshalYAML implements yaml.Marshaler for PermissibleValues.
func (p PermissibleValues) MarshalYAML() (any, error) { return marshalNamed(p) }

// UnmarshalYAML implements yaml.Unmarshaler for PermissibleValues.
func (p *PermissibleValues) UnmarshalYAML(node *yaml.Node) error {
	items, err := unmarshalNamed[PermissibleValue](node)
	*p = items

	return err
}

// --- Annotations YAML methods ---

// MarshalYAML writes annotations as a tag: value mapping.
func (a Annotations) MarshalYAML() (any, error) {
	if len(a) == 0 {
		return nil, nil
	}

	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, ann := range a {
		var value yaml.Node
		if err := value.Encode(ann.Value); err != nil {
			return nil, fmt.Errorf("annotation %s: %w", ann.Tag, err)
		}

		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ann.Tag}
		node.Content = append(node.Content, key, &value)
	}

	return node, nil
}

// UnmarshalYAML accepts tag: value pairs and the expanded
// tag: {tag: ..., value: ...} form.
func (a *Annotations) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: annotations must be a mapping", node.Line)
	}

	result := make(Annotations, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		var decoded any
		if err := value.Decode(&decoded); err != nil {
			return fmt.Errorf("annotation %s: %w", key.Value, err)
		}

		if m, ok := decoded.(map[string]any); ok {
			if v, hasValue := m["value"]; hasValue {
				decoded = v
			}
		}

		result = append(result, Annotation{Tag: key.Value, Value: decoded})
	}

	*a = result

	return nil
}
