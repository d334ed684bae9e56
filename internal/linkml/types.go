package linkml

import "slices"

// TypesImport is the import name of the LinkML builtin types.
const TypesImport = "linkml:types"

// IncludeSuffix names the half of a split schema holding nested classes.
const IncludeSuffix = ".include"

// BuiltinTypes lists the LinkML builtin type names.
var BuiltinTypes = map[string]bool{
	"string":           true,
	"integer":          true,
	"float":            true,
	"double":           true,
	"boolean":          true,
	"date":             true,
	"datetime":         true,
	"date_or_datetime": true,
	"time":             true,
	"decimal":          true,
	"uri":              true,
	"uriorcurie":       true,
	"curie":            true,
	"ncname":           true,
	"objectidentifier": true,
	"nodeidentifier":   true,
	"jsonpointer":      true,
	"jsonpath":         true,
	"sparqlpath":       true,
}

// SchemaDefinition is one LinkML schema document.
type SchemaDefinition struct {
	Name          string            `yaml:"name"`
	ID            string            `yaml:"id"`
	Title         string            `yaml:"title,omitempty"`
	Description   string            `yaml:"description,omitempty"`
	Version       string            `yaml:"version,omitempty"`
	Annotations   Annotations       `yaml:"annotations,omitempty"`
	Imports       []string          `yaml:"imports,omitempty"`
	Prefixes      map[string]string `yaml:"prefixes,omitempty"`
	DefaultPrefix string            `yaml:"default_prefix,omitempty"`
	DefaultRange  string            `yaml:"default_range,omitempty"`
	Classes       Classes           `yaml:"classes,omitempty"`
	Slots         Slots             `yaml:"slots,omitempty"`
	Types         Types             `yaml:"types,omitempty"`
	Enums         Enums             `yaml:"enums,omitempty"`
}

// ClassDefinition is a LinkML class with inline attributes.
type ClassDefinition struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	IsA         string      `yaml:"is_a,omitempty"`
	Mixins      []string    `yaml:"mixins,omitempty"`
	Abstract    bool        `yaml:"abstract,omitempty"`
	Mixin       bool        `yaml:"mixin,omitempty"`
	TreeRoot    bool        `yaml:"tree_root,omitempty"`
	ClassURI    string      `yaml:"class_uri,omitempty"`
	Slots       []string    `yaml:"slots,omitempty"`
	Attributes  Slots       `yaml:"attributes,omitempty"`
	Annotations Annotations `yaml:"annotations,omitempty"`
}

// SlotDefinition is a LinkML slot, used both for class attributes and for
// free-standing schema slots.
type SlotDefinition struct {
	Name               string                    `yaml:"name"`
	Description        string                    `yaml:"description,omitempty"`
	Range              string                    `yaml:"range,omitempty"`
	AnyOf              []AnonymousSlotExpression `yaml:"any_of,omitempty"`
	Required           bool                      `yaml:"required,omitempty"`
	Multivalued        bool                      `yaml:"multivalued,omitempty"`
	Identifier         bool                      `yaml:"identifier,omitempty"`
	DesignatesType     bool                      `yaml:"designates_type,omitempty"`
	Inlined            *bool                     `yaml:"inlined,omitempty"`
	InlinedAsList      *bool                     `yaml:"inlined_as_list,omitempty"`
	MinimumCardinality *int                      `yaml:"minimum_cardinality,omitempty"`
	MaximumCardinality *int                      `yaml:"maximum_cardinality,omitempty"`
	IfAbsent           string                    `yaml:"ifabsent,omitempty"`
	EqualsString       string                    `yaml:"equals_string,omitempty"`
	Annotations        Annotations               `yaml:"annotations,omitempty"`
}

// AnonymousSlotExpression is one alternative of an any_of range.
type AnonymousSlotExpression struct {
	Range string `yaml:"range"`
}

// TypeDefinition is a named alias of another type.
type TypeDefinition struct {
	Name         string `yaml:"name"`
	Description  string `yaml:"description,omitempty"`
	Typeof       string `yaml:"typeof,omitempty"`
	Base         string `yaml:"base,omitempty"`
	URI          string `yaml:"uri,omitempty"`
	Repr         string `yaml:"repr,omitempty"`
	MinimumValue *int   `yaml:"minimum_value,omitempty"`
	MaximumValue *int   `yaml:"maximum_value,omitempty"`
}

// EnumDefinition is a closed set of permissible string values.
type EnumDefinition struct {
	Name              string            `yaml:"name"`
	Description       string            `yaml:"description,omitempty"`
	PermissibleValues PermissibleValues `yaml:"permissible_values,omitempty"`
}

// PermissibleValue is one member of an enum.
type PermissibleValue struct {
	Text        string `yaml:"text"`
	Description string `yaml:"description,omitempty"`
}

// Annotation is a free-form tag/value pair.
type Annotation struct {
	Tag   string
	Value any
}

type (
	Classes           []*ClassDefinition
	Slots             []*SlotDefinition
	Types             []*TypeDefinition
	Enums             []*EnumDefinition
	PermissibleValues []*PermissibleValue
	Annotations       []Annotation
)

func (c *ClassDefinition) elementName() string { return c.Name }
func (c *ClassDefinition) setElementName(n string) { c.Name = n }
func (s *SlotDefinition) elementName() string { return s.Name }
func (s *SlotDefinition) setElementName(n string) { s.Name = n }
func (t *TypeDefinition) elementName() string { return t.Name }
func (t *TypeDefinition) setElementName(n string) { t.Name = n }
func (e *EnumDefinition) elementName() string { return e.Name }
func (e *EnumDefinition) setElementName(n string) { e.Name = n }
func (p *PermissibleValue) elementName() string { return p.Text }
func (p *PermissibleValue) setElementName(n string) { p.Text = n }

// Get returns the element with the given name, or nil.
func (c Classes) Get(name string) *ClassDefinition { return find(c, name) }

// Get returns the element with the given name, or nil.
func (s Slots) Get(name string) *SlotDefinition { return find(s, name) }

// Get returns the element with the given name, or nil.
func (t Types) Get(name string) *TypeDefinition { return find(t, name) }

// Get returns the element with the given name, or nil.
func (e Enums) Get(name string) *EnumDefinition { return find(e, name) }

// Names returns the class names in order.
func (c Classes) Names() []string {
	names := make([]string, len(c))
	for i, cls := range c {
		names[i] = cls.Name
	}

	return names
}

func find[T interface{ elementName() string }](items []T, name string) T {
	for _, it := range items {
		if it.elementName() == name {
			return it
		}
	}

	var zero T

	return zero
}

// Get returns the value of a tag.
func (a Annotations) Get(tag string) (any, bool) {
	for _, ann := range a {
		if ann.Tag == tag {
			return ann.Value, true
		}
	}

	return nil, false
}

// Set replaces the value of tag, appending it when absent.
func (a Annotations) Set(tag string, value any) Annotations {
	for i := range a {
		if a[i].Tag == tag {
			a[i].Value = value
			return a
		}
	}

	return append(a, Annotation{Tag: tag, Value: value})
}

// Attribute returns the inline attribute with the given name, or nil.
func (c *ClassDefinition) Attribute(name string) *SlotDefinition {
	return c.Attributes.Get(name)
}

// SetAttribute replaces the attribute with the same name or appends slot.
func (c *ClassDefinition) SetAttribute(slot *SlotDefinition) {
	for i, existing := range c.Attributes {
		if existing.Name == slot.Name {
			c.Attributes[i] = slot
			return
		}
	}

	c.Attributes = append(c.Attributes, slot)
}

// Parents returns is_a followed by the mixins.
func (c *ClassDefinition) Parents() []string {
	var parents []string
	if c.IsA != "" {
		parents = append(parents, c.IsA)
	}

	return append(parents, c.Mixins...)
}

// Clone returns a deep copy of the class.
func (c *ClassDefinition) Clone() *ClassDefinition {
	out := *c
	out.Mixins = slices.Clone(c.Mixins)
	out.Slots = slices.Clone(c.Slots)
	out.Annotations = slices.Clone(c.Annotations)

	out.Attributes = make(Slots, len(c.Attributes))
	for i, a := range c.Attributes {
		out.Attributes[i] = a.Clone()
	}

	return &out
}

// Clone returns a deep copy of the slot.
func (s *SlotDefinition) Clone() *SlotDefinition {
	out := *s
	out.AnyOf = slices.Clone(s.AnyOf)
	out.Annotations = slices.Clone(s.Annotations)

	return &out
}

// Ranges returns every range the slot may take: the any_of alternatives when
// present, otherwise the single range.
func (s *SlotDefinition) Ranges() []string {
	if len(s.AnyOf) > 0 {
		out := make([]string, 0, len(s.AnyOf))
		for _, a := range s.AnyOf {
			out = append(out, a.Range)
		}

		return out
	}

	if s.Range == "" {
		return nil
	}

	return []string{s.Range}
}
