package adapter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/diagnostic"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/linkml"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/maps"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/match"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/nwbschema"
)

// nameSeparator joins a parent's name and a nested node's name.
const nameSeparator = "__"

// Options tunes adapter behavior for one build.
type Options struct {
	// Strict makes a dataset that matches no pattern an error. Without it the
	// dataset keeps its base class, so plain typed datasets without a shape
	// still build, and an info diagnostic records the miss.
	Strict bool
	// Debug annotates classes with the schema file they came from.
	Debug bool
	// Diagnostics collects non-fatal warnings. May be nil.
	Diagnostics *diagnostic.Diagnostics
}

// ClassAdapter holds what dataset and group adapters share: the node being
// translated and the adapter of its enclosing node.
type ClassAdapter struct {
	Node   nwbschema.Node
	Parent *ClassAdapter
	opts   *Options
}

func newClassAdapter(node nwbschema.Node, parent *ClassAdapter, opts *Options) ClassAdapter {
	if opts == nil {
		opts = &Options{}
	}

	return ClassAdapter{Node: node, Parent: parent, opts: opts}
}

func (a *ClassAdapter) common() *nwbschema.Common {
	return a.Node.Base()
}

func (a *ClassAdapter) describe() string {
	c := a.common()
	switch {
	case c.NeurodataTypeDef != "":
		return c.NeurodataTypeDef
	case c.Name != "":
		return strconv.Quote(c.Name)
	default:
		return "anonymous node"
	}
}

// AttributeName is how a node is named when it stands alone: its type
// definition, else its fixed name, else its included type.
func (a *ClassAdapter) AttributeName() (string, error) {
	c := a.common()
	switch {
	case c.NeurodataTypeDef != "":
		return c.NeurodataTypeDef, nil
	case c.Name != "":
		return c.Name, nil
	case c.NeurodataTypeInc != "":
		return c.NeurodataTypeInc, nil
	default:
		return "", &NamingError{What: "attribute name", Node: a.describe()}
	}
}

// FullName is the class name of a nested node. A node with only a fixed name
// is qualified by the last segment of its parent's full name, so the name
// never grows with depth. A fixed name wins over an included type: a named
// inclusion named after its type would otherwise declare itself as parent.
func (a *ClassAdapter) FullName() (string, error) {
	c := a.common()
	switch {
	case c.NeurodataTypeDef != "":
		return c.NeurodataTypeDef, nil
	case c.Name != "":
		if a.Parent == nil {
			return c.Name, nil
		}

		parent, err := a.Parent.FullName()
		if err != nil {
			return "", err
		}

		if i := strings.LastIndex(parent, nameSeparator); i >= 0 {
			parent = parent[i+len(nameSeparator):]
		}

		return parent + nameSeparator + c.Name, nil
	case c.NeurodataTypeInc != "":
		return c.NeurodataTypeInc, nil
	default:
		return "", &NamingError{What: "full name", Node: a.describe()}
	}
}

// ClassName is the full name for nested nodes and the attribute name for
// top-level ones.
func (a *ClassAdapter) ClassName() (string, error) {
	if a.Parent != nil {
		return a.FullName()
	}

	return a.AttributeName()
}

// SlotName is the attribute name a parent uses for this node.
func (a *ClassAdapter) SlotName() (string, error) {
	c := a.common()
	switch {
	case c.NeurodataTypeDef != "":
		return match.CamelToSnake(c.NeurodataTypeDef), nil
	case c.Name != "":
		return c.Name, nil
	case c.NeurodataTypeInc != "":
		return match.CamelToSnake(c.NeurodataTypeInc), nil
	default:
		return "", &NamingError{What: "slot name", Node: a.describe()}
	}
}

// NameSlot builds the identifier slot every class carries. A fixed name pins
// the value; a default name only supplies it when absent.
func (a *ClassAdapter) NameSlot() *linkml.SlotDefinition {
	c := a.common()
	slot := &linkml.SlotDefinition{
		Name:       "name",
		Range:      "string",
		Required:   true,
		Identifier: true,
	}

	switch {
	case c.Name != "":
		slot.IfAbsent = ifAbsentString(c.Name)
		slot.EqualsString = c.Name
	case c.DefaultName != "":
		slot.IfAbsent = ifAbsentString(c.DefaultName)
	}

	return slot
}

// SelfSlot is the slot through which the parent holds this node.
func (a *ClassAdapter) SelfSlot() (*linkml.SlotDefinition, error) {
	name, err := a.SlotName()
	if err != nil {
		return nil, err
	}

	rng, err := a.FullName()
	if err != nil {
		return nil, err
	}

	return quantitySlot(name, a.common().Doc, rng, a.common().Quantity)
}

// BuildBase builds the class for this node: the name slot, one slot per
// attribute, then extra. A nested node also gets its self slot.
func (a *ClassAdapter) BuildBase(extra []*linkml.SlotDefinition) (BuildResult, error) {
	c := a.common()

	name, err := a.ClassName()
	if err != nil {
		return BuildResult{}, err
	}

	attrs := linkml.Slots{a.NameSlot()}

	for i := range c.Attributes {
		slot, err := a.attributeSlot(&c.Attributes[i], name)
		if err != nil {
			return BuildResult{}, err
		}

		attrs = append(attrs, slot)
	}

	attrs = append(attrs, extra...)

	cls := &linkml.ClassDefinition{
		Name:        name,
		Description: c.Doc,
		IsA:         c.NeurodataTypeInc,
		TreeRoot:    a.Parent == nil,
		Attributes:  attrs,
	}

	res := BuildResult{Classes: []*linkml.ClassDefinition{cls}}

	if a.Parent != nil {
		slot, err := a.SelfSlot()
		if err != nil {
			return BuildResult{}, err
		}

		res.Slots = append(res.Slots, slot)
	}

	return res, nil
}

func (a *ClassAdapter) attributeSlot(attr *nwbschema.Attribute, owner string) (*linkml.SlotDefinition, error) {
	rng, err := handleDType(attr.DType, a.opts.Diagnostics, owner+"."+attr.Name)
	if err != nil {
		return nil, fmt.Errorf("attribute %s of %s: %w", attr.Name, owner, err)
	}

	slot := &linkml.SlotDefinition{
		Name:        attr.Name,
		Description: attr.Doc,
		Range:       rng,
		Required:    attr.Required == nil || *attr.Required,
		Multivalued: len(attr.Dims) > 0,
	}

	switch {
	case attr.Value != nil:
		slot.IfAbsent = ifAbsent(attr.Value)
		if s, ok := attr.Value.(string); ok {
			slot.EqualsString = s
		}
	case attr.DefaultValue != nil:
		slot.IfAbsent = ifAbsent(attr.DefaultValue)
	}

	return slot, nil
}

// handleDType returns the range for a dtype: the referenced type, the flat
// dtype's own name, or AnyType when there is none. Compound dtypes fall back
// to AnyType with a warning.
func handleDType(dt *nwbschema.DType, diags *diagnostic.Diagnostics, where string) (string, error) {
	switch {
	case dt.IsEmpty():
		return maps.AnyType, nil
	case dt.Reference != nil:
		return dt.Reference.TargetType, nil
	case len(dt.Compound) > 0:
		diags.AddWarning(diagnostic.CodeCompoundDType,
			fmt.Sprintf("compound dtype with %d fields replaced with %s", len(dt.Compound), maps.AnyType), "", where)
		logrus.Debugf("compound dtype on %s falls back to %s", where, maps.AnyType)

		return maps.AnyType, nil
	default:
		if _, err := maps.LinkMLType(dt.Flat); err != nil {
			return "", err
		}

		return dt.Flat, nil
	}
}

func quantitySlot(name, doc, rng string, q nwbschema.Quantity) (*linkml.SlotDefinition, error) {
	card, err := maps.Quantity(q)
	if err != nil {
		return nil, fmt.Errorf("slot %s: %w", name, err)
	}

	return &linkml.SlotDefinition{
		Name:        name,
		Description: doc,
		Range:       rng,
		Required:    card.Required,
		Multivalued: card.Multivalued,
	}, nil
}

func ifAbsentString(s string) string {
	return "string(" + s + ")"
}

// ifAbsent renders a schema value as a typed default expression.
func ifAbsent(v any) string {
	switch val := v.(type) {
	case string:
		return ifAbsentString(val)
	case bool:
		if val {
			return "True"
		}

		return "False"
	case int:
		return "int(" + strconv.Itoa(val) + ")"
	case float64:
		return "float(" + strconv.FormatFloat(val, 'g', -1, 64) + ")"
	default:
		return ifAbsentString(fmt.Sprint(val))
	}
}
