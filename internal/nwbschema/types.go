package nwbschema

// Quantity is the cardinality marker of a group, dataset or link.
// The zero value means exactly one.
type Quantity string

const (
	QuantityOne        Quantity = ""
	QuantityOptional   Quantity = "?"
	QuantityZeroOrMany Quantity = "*"
	QuantityOneOrMany  Quantity = "+"
)

// Optional reports whether the quantity allows zero instances.
func (q Quantity) Optional() bool {
	return q == QuantityOptional || q == QuantityZeroOrMany
}

// Many reports whether the quantity allows more than one instance.
func (q Quantity) Many() bool {
	return q == QuantityZeroOrMany || q == QuantityOneOrMany
}

// Common holds the fields shared by groups and datasets.
type Common struct {
	NeurodataTypeDef string      `yaml:"neurodata_type_def,omitempty"`
	NeurodataTypeInc string      `yaml:"neurodata_type_inc,omitempty"`
	Name             string      `yaml:"name,omitempty"`
	DefaultName      string      `yaml:"default_name,omitempty"`
	Doc              string      `yaml:"doc,omitempty"`
	Quantity         Quantity    `yaml:"quantity,omitempty"`
	Attributes       []Attribute `yaml:"attributes,omitempty"`
}

// Base returns the shared fields. It lets groups and datasets be handled
// through the Node interface.
func (c *Common) Base() *Common {
	return c
}

// Node is implemented by *Group and *Dataset.
type Node interface {
	Base() *Common
}

// Group is a container of attributes, datasets, nested groups and links.
type Group struct {
	Common   `yaml:",inline"`
	Datasets []*Dataset `yaml:"datasets,omitempty"`
	Groups   []*Group   `yaml:"groups,omitempty"`
	Links    []*Link    `yaml:"links,omitempty"`
}

// Dataset is an n-dimensional array with optional attributes.
type Dataset struct {
	Common       `yaml:",inline"`
	DType        *DType `yaml:"dtype,omitempty"`
	Dims         Dims   `yaml:"dims,omitempty"`
	Shape        Shape  `yaml:"shape,omitempty"`
	Value        any    `yaml:"value,omitempty"`
	DefaultValue any    `yaml:"default_value,omitempty"`
}

// Attribute is a small named value attached to a group or dataset.
type Attribute struct {
	Name         string `yaml:"name"`
	Doc          string `yaml:"doc,omitempty"`
	DType        *DType `yaml:"dtype,omitempty"`
	Dims         Dims   `yaml:"dims,omitempty"`
	Shape        Shape  `yaml:"shape,omitempty"`
	Value        any    `yaml:"value,omitempty"`
	DefaultValue any    `yaml:"default_value,omitempty"`
	Required     *bool  `yaml:"required,omitempty"`
}

// Fixed reports whether the attribute carries a constant value.
func (a Attribute) Fixed() bool {
	return a.Value != nil
}

// Link is a soft reference to an instance of another type.
type Link struct {
	Name       string   `yaml:"name,omitempty"`
	Doc        string   `yaml:"doc,omitempty"`
	TargetType string   `yaml:"target_type"`
	Quantity   Quantity `yaml:"quantity,omitempty"`
}

// DType is a dtype as written in a schema: exactly one of a flat primitive
// name, a reference to another type, or a compound list of fields.
type DType struct {
	Flat      string
	Reference *ReferenceDType
	Compound  []CompoundField
}

// ReferenceDType points at instances (or regions) of another type.
type ReferenceDType struct {
	TargetType string `yaml:"target_type"`
	RefType    string `yaml:"reftype,omitempty"`
}

// CompoundField is one column of a compound dtype.
type CompoundField struct {
	Name  string `yaml:"name"`
	Doc   string `yaml:"doc,omitempty"`
	DType DType  `yaml:"dtype"`
}

// IsEmpty reports whether no dtype variant is set.
func (d *DType) IsEmpty() bool {
	return d == nil || (d.Flat == "" && d.Reference == nil && len(d.Compound) == 0)
}

// Dims lists dimension names, one slice per allowed shape variant.
// A flat list in YAML decodes as a single variant.
type Dims [][]string

// Shape lists dimension sizes parallel to Dims. A nil entry is an
// unconstrained size.
type Shape [][]*int

// Variants returns the number of shape variants.
func (d Dims) Variants() int {
	return len(d)
}

// Schema is the content of one schema file.
type Schema struct {
	Groups   []*Group   `yaml:"groups,omitempty"`
	Datasets []*Dataset `yaml:"datasets,omitempty"`
}

// Namespaces is the content of a namespace file.
type Namespaces struct {
	Namespaces []*Namespace `yaml:"namespaces"`
}

// Namespace declares a versioned collection of schema files and the other
// namespaces it depends on.
type Namespace struct {
	Name     string        `yaml:"name"`
	Doc      string        `yaml:"doc,omitempty"`
	FullName string        `yaml:"full_name,omitempty"`
	Version  string        `yaml:"version"`
	Author   StringOrArray `yaml:"author,omitempty"`
	Contact  StringOrArray `yaml:"contact,omitempty"`
	Schema   []SchemaRef   `yaml:"schema"`
}

// SchemaRef is one entry of a namespace's schema list. It names either a
// local schema file (Source) or another namespace (Namespace).
type SchemaRef struct {
	Source         string   `yaml:"source,omitempty"`
	Namespace      string   `yaml:"namespace,omitempty"`
	Title          string   `yaml:"title,omitempty"`
	Doc            string   `yaml:"doc,omitempty"`
	NeurodataTypes []string `yaml:"neurodata_types,omitempty"`
}

// StringOrArray accepts either a single string or a list of strings.
type StringOrArray []string
