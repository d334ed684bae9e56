package linkml

import "fmt"

// SchemaView answers questions about a root schema and its import closure.
type SchemaView struct {
	root    string
	schemas map[string]*SchemaDefinition
	closure []string
	owner   map[string]string
}

// NewSchemaView indexes schemas and computes the import closure of root.
// Every non-builtin import reachable from root must be among schemas.
func NewSchemaView(root string, schemas ...*SchemaDefinition) (*SchemaView, error) {
	v := &SchemaView{
		root:    root,
		schemas: make(map[string]*SchemaDefinition, len(schemas)),
		owner:   make(map[string]string),
	}

	for _, s := range schemas {
		v.schemas[s.Name] = s
	}

	if _, ok := v.schemas[root]; !ok {
		return nil, fmt.Errorf("root schema %q not loaded", root)
	}

	seen := map[string]bool{root: true}
	queue := []string{root}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		v.closure = append(v.closure, name)

		for _, imp := range v.schemas[name].Imports {
			if isBuiltinImport(imp) || seen[imp] {
				continue
			}

			if _, ok := v.schemas[imp]; !ok {
				return nil, fmt.Errorf("schema %q imports %q which is not loaded", name, imp)
			}

			seen[imp] = true
			queue = append(queue, imp)
		}
	}

	// The first schema in closure order owns an element defined in several.
	for _, name := range v.closure {
		s := v.schemas[name]
		for _, c := range s.Classes {
			v.claim(c.Name, name)
		}

		for _, t := range s.Types {
			v.claim(t.Name, name)
		}

		for _, e := range s.Enums {
			v.claim(e.Name, name)
		}

		for _, sl := range s.Slots {
			v.claim(sl.Name, name)
		}
	}

	return v, nil
}

func (v *SchemaView) claim(element, schema string) {
	if _, ok := v.owner[element]; !ok {
		v.owner[element] = schema
	}
}

// Root returns the root schema.
func (v *SchemaView) Root() *SchemaDefinition {
	return v.schemas[v.root]
}

// Schema returns a loaded schema by name.
func (v *SchemaView) Schema(name string) (*SchemaDefinition, bool) {
	s, ok := v.schemas[name]
	return s, ok
}

// ImportsClosure returns the root followed by every schema it reaches through
// imports, breadth first. Builtin imports are not included.
func (v *SchemaView) ImportsClosure() []string {
	return append([]string(nil), v.closure...)
}

// ElementSchema returns the name of the schema that defines element.
func (v *SchemaView) ElementSchema(element string) (string, bool) {
	s, ok := v.owner[element]
	return s, ok
}

// GetClass looks a class up in the root or, with imports, the whole closure.
func (v *SchemaView) GetClass(name string, imports bool) *ClassDefinition {
	for _, s := range v.scope(imports) {
		if c := s.Classes.Get(name); c != nil {
			return c
		}
	}

	return nil
}

// GetType looks a type up like GetClass.
func (v *SchemaView) GetType(name string, imports bool) *TypeDefinition {
	for _, s := range v.scope(imports) {
		if t := s.Types.Get(name); t != nil {
			return t
		}
	}

	return nil
}

// GetSlot looks a schema-level slot up like GetClass.
func (v *SchemaView) GetSlot(name string, imports bool) *SlotDefinition {
	for _, s := range v.scope(imports) {
		if sl := s.Slots.Get(name); sl != nil {
			return sl
		}
	}

	return nil
}

// GetEnum looks an enum up like GetClass.
func (v *SchemaView) GetEnum(name string, imports bool) *EnumDefinition {
	for _, s := range v.scope(imports) {
		if e := s.Enums.Get(name); e != nil {
			return e
		}
	}

	return nil
}

// AllClasses returns every class, first definition wins, in closure order.
func (v *SchemaView) AllClasses(imports bool) []*ClassDefinition {
	var out []*ClassDefinition

	seen := make(map[string]bool)

	for _, s := range v.scope(imports) {
		for _, c := range s.Classes {
			if !seen[c.Name] {
				seen[c.Name] = true
				out = append(out, c)
			}
		}
	}

	return out
}

// AllEnums returns every enum, first definition wins, in closure order.
func (v *SchemaView) AllEnums(imports bool) []*EnumDefinition {
	var out []*EnumDefinition

	seen := make(map[string]bool)

	for _, s := range v.scope(imports) {
		for _, e := range s.Enums {
			if !seen[e.Name] {
				seen[e.Name] = true
				out = append(out, e)
			}
		}
	}

	return out
}

// ClassAncestors returns the ancestors of a class, most derived first. Each
// level lists is_a before mixins.
func (v *SchemaView) ClassAncestors(name string) []string {
	var out []string

	seen := map[string]bool{name: true}
	queue := []string{name}

	for len(queue) > 0 {
		c := v.GetClass(queue[0], true)
		queue = queue[1:]

		if c == nil {
			continue
		}

		for _, p := range c.Parents() {
			if seen[p] {
				continue
			}

			seen[p] = true
			out = append(out, p)
			queue = append(queue, p)
		}
	}

	return out
}

// InducedAttributes returns the attributes of a class including inherited
// ones. A descendant's definition overrides its ancestor's.
func (v *SchemaView) InducedAttributes(name string) Slots {
	lineage := append([]string{name}, v.ClassAncestors(name)...)

	var out Slots

	index := make(map[string]int)

	for i := len(lineage) - 1; i >= 0; i-- {
		c := v.GetClass(lineage[i], true)
		if c == nil {
			continue
		}

		for _, a := range c.Attributes {
			if j, ok := index[a.Name]; ok {
				out[j] = a
				continue
			}

			index[a.Name] = len(out)
			out = append(out, a)
		}
	}

	return out
}

// TypeBase follows the typeof chain of a type to a LinkML builtin.
func (v *SchemaView) TypeBase(name string) (string, bool) {
	seen := make(map[string]bool)

	for !BuiltinTypes[name] {
		if seen[name] {
			return "", false
		}

		seen[name] = true

		t := v.GetType(name, true)
		if t == nil || t.Typeof == "" {
			return "", false
		}

		name = t.Typeof
	}

	return name, true
}

func (v *SchemaView) scope(imports bool) []*SchemaDefinition {
	if !imports {
		return []*SchemaDefinition{v.schemas[v.root]}
	}

	out := make([]*SchemaDefinition, len(v.closure))
	for i, name := range v.closure {
		out[i] = v.schemas[name]
	}

	return out
}
