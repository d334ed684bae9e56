package nwbschema

import (
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

const nullTag = "!!null"

var quantityWords = map[string]Quantity{
	"1":            QuantityOne,
	"zero_or_one":  QuantityOptional,
	"zero_or_many": QuantityZeroOrMany,
	"one_or_many":  QuantityOneOrMany,
}

// --- Quantity YAML methods ---

// UnmarshalYAML accepts the marker symbols, their word forms and the integer 1.
// Any other integer is kept verbatim and rejected later by the quantity map.
func (q *Quantity) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: quantity must be a scalar", node.Line)
	}

	if node.Tag == nullTag {
		*q = QuantityOne
		return nil
	}

	if mapped, ok := quantityWords[node.Value]; ok {
		*q = mapped
		return nil
	}

	*q = Quantity(node.Value)

	return nil
}

// --- DType YAML methods ---

// UnmarshalYAML decodes a flat name, a reference mapping or a compound list.
func (d *DType) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == nullTag {
			return nil
		}

		d.Flat = node.Value

		return nil
	case yaml.MappingNode:
		var ref ReferenceDType
		if err := node.Decode(&ref); err != nil {
			return err
		}

		if ref.TargetType == "" {
			return fmt.Errorf("line %d: reference dtype without target_type", node.Line)
		}

		d.Reference = &ref

		return nil
	case yaml.SequenceNode:
		var fields []CompoundField
		if err := node.Decode(&fields); err != nil {
			return err
		}

		d.Compound = fields

		return nil
	default:
		return fmt.Errorf("line %d: expected dtype name, reference or compound list", node.Line)
	}
}

// MarshalYAML writes the dtype back in the variant it was read from.
func (d DType) MarshalYAML() (any, error) {
	switch {
	case d.Reference != nil:
		return d.Reference, nil
	case len(d.Compound) > 0:
		return d.Compound, nil
	default:
		return d.Flat, nil
	}
}

// String renders the dtype for messages.
func (d *DType) String() string {
	switch {
	case d.IsEmpty():
		return "<none>"
	case d.Reference != nil:
		return "ref(" + d.Reference.TargetType + ")"
	case len(d.Compound) > 0:
		return fmt.Sprintf("compound(%d fields)", len(d.Compound))
	default:
		return d.Flat
	}
}

// --- Dims YAML methods ---

// UnmarshalYAML accepts a flat list of names or a list of lists.
func (d *Dims) UnmarshalYAML(node *yaml.Node) error {
	nested, err := nestedSequence(node)
	if err != nil {
		return fmt.Errorf("dims: %w", err)
	}

	if !nested {
		var flat []string
		if err := node.Decode(&flat); err != nil {
			return err
		}

		if len(flat) > 0 {
			*d = Dims{flat}
		}

		return nil
	}

	var variants [][]string
	if err := node.Decode(&variants); err != nil {
		return err
	}

	*d = variants

	return nil
}

// --- Shape YAML methods ---

// UnmarshalYAML accepts a flat list of sizes or a list of lists. null entries
// stay nil.
func (s *Shape) UnmarshalYAML(node *yaml.Node) error {
	nested, err := nestedSequence(node)
	if err != nil {
		return fmt.Errorf("shape: %w", err)
	}

	if !nested {
		sizes, err := decodeSizes(node)
		if err != nil {
			return err
		}

		if len(sizes) > 0 {
			*s = Shape{sizes}
		}

		return nil
	}

	result := make(Shape, 0, len(node.Content))

	for _, child := range node.Content {
		sizes, err := decodeSizes(child)
		if err != nil {
			return err
		}

		result = append(result, sizes)
	}

	*s = result

	return nil
}

func decodeSizes(node *yaml.Node) ([]*int, error) {
	sizes := make([]*int, 0, len(node.Content))

	for _, child := range node.Content {
		if child.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: shape entry must be an integer or null", child.Line)
		}

		if child.Tag == nullTag {
			sizes = append(sizes, nil)
			continue
		}

		n, err := strconv.Atoi(child.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid shape size %q", child.Line, child.Value)
		}

		sizes = append(sizes, &n)
	}

	return sizes, nil
}

// nestedSequence reports whether node is a list of lists. Mixing scalars and
// lists is rejected.
func nestedSequence(node *yaml.Node) (bool, error) {
	if node.Kind != yaml.SequenceNode {
		return false, fmt.Errorf("line %d: expected a list", node.Line)
	}

	var lists, scalars int

	for _, child := range node.Content {
		if child.Kind == yaml.SequenceNode {
			lists++
		} else {
			scalars++
		}
	}

	if lists > 0 && scalars > 0 {
		return false, errors.New("cannot mix names and nested lists")
	}

	return lists > 0, nil
}

// --- StringOrArray YAML methods ---

// UnmarshalYAML implements yaml.Unmarshaler for StringOrArray.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*s = []string{node.Value}
		return nil
	}

	var multi []string
	if err := node.Decode(&multi); err != nil {
		return errors.New("expected string or list of strings")
	}

	*s = multi

	return nil
}
