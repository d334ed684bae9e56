package gen

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/diagnostic"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/linkml"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/maps"
)

// anyClassURI marks a class that stands for any value.
const anyClassURI = "linkml:Any"

// moduleBuilder translates the classes of one module. In split mode schema is
// the main schema of the module and names rendered in other modules are
// imported.
type moduleBuilder struct {
	view   *linkml.SchemaView
	schema string
	diags  *diagnostic.Diagnostics

	nptyping map[string]bool
	imports  map[string]map[string]bool
}

func newModuleBuilder(view *linkml.SchemaView, schema string, diags *diagnostic.Diagnostics) *moduleBuilder {
	return &moduleBuilder{
		view:     view,
		schema:   schema,
		diags:    diags,
		nptyping: make(map[string]bool),
		imports:  make(map[string]map[string]bool),
	}
}

func isAnyClass(c *linkml.ClassDefinition) bool {
	return c.ClassURI == anyClassURI
}

func isArrayClass(c *linkml.ClassDefinition) bool {
	return c.IsA == maps.ArraylikeClass
}

// elided reports classes that are never rendered: array classes, their
// marker base and the any-value class.
func elided(c *linkml.ClassDefinition) bool {
	return isArrayClass(c) || c.Name == maps.ArraylikeClass || isAnyClass(c)
}

// reference records that name is used and imports it when another schema
// owns it. It reports whether the name was imported.
func (b *moduleBuilder) reference(name string) bool {
	if b.schema == "" {
		return false
	}

	owner, ok := b.view.ElementSchema(name)
	if !ok {
		return false
	}

	owner = moduleOf(b.view, owner)
	if owner == b.schema {
		return false
	}

	module := ModuleName(owner)
	if b.imports[module] == nil {
		b.imports[module] = make(map[string]bool)
	}

	b.imports[module][name] = true

	return true
}

// annotation builds the type annotation of a slot on cls.
func (b *moduleBuilder) annotation(cls *linkml.ClassDefinition, slot *linkml.SlotDefinition) (string, error) {
	if slot.EqualsString != "" {
		return b.optional(slot, "Literal["+pyString(slot.EqualsString)+"]"), nil
	}

	ranges := slot.Ranges()
	if len(ranges) == 0 {
		if def := b.view.Root().DefaultRange; def != "" {
			ranges = []string{def}
		}
	}

	if len(ranges) == 0 {
		return "", &RangeError{Class: cls.Name, Slot: slot.Name}
	}

	var types []string

	arrays := true

	for _, r := range ranges {
		t, isArray, err := b.rangeType(r)
		if err != nil {
			return "", &RangeError{Class: cls.Name, Slot: slot.Name, Range: r}
		}

		arrays = arrays && isArray

		if !slices.Contains(types, t) {
			types = append(types, t)
		}
	}

	ann := types[0]
	if len(types) > 1 {
		sort.Strings(types)
		ann = "Union[" + strings.Join(types, ", ") + "]"
	}

	if slot.Multivalued && !arrays {
		if key, ok := b.dictKey(slot, ranges); ok {
			ann = "Dict[" + key + ", " + ann + "]"
		} else {
			ann = "List[" + ann + "]"
		}
	}

	return b.optional(slot, ann), nil
}

func (b *moduleBuilder) optional(slot *linkml.SlotDefinition, ann string) string {
	if slot.Required || slot.DesignatesType {
		return ann
	}

	return "Optional[" + ann + "]"
}

// rangeType translates one range name. Array classes come back as NDArray
// annotations with isArray set.
func (b *moduleBuilder) rangeType(r string) (ann string, isArray bool, err error) {
	if c := b.view.GetClass(r, true); c != nil {
		switch {
		case isAnyClass(c):
			return "Any", false, nil
		case isArrayClass(c):
			return b.arrayAnnotation(c), true, nil
		}

		b.reference(c.Name)

		return c.Name, false, nil
	}

	if e := b.view.GetEnum(r, true); e != nil {
		b.reference(e.Name)
		return e.Name, false, nil
	}

	if base, ok := b.view.TypeBase(r); ok {
		return pythonType(base), false, nil
	}

	return "", false, fmt.Errorf("unknown range %s", r)
}

// dictKey returns the key type when a multivalued slot is inlined as a
// mapping: inlined, not as a list, with one class range that has an
// identifier.
func (b *moduleBuilder) dictKey(slot *linkml.SlotDefinition, ranges []string) (string, bool) {
	if slot.Inlined == nil || !*slot.Inlined || (slot.InlinedAsList != nil && *slot.InlinedAsList) || len(ranges) != 1 {
		return "", false
	}

	if b.view.GetClass(ranges[0], true) == nil {
		return "", false
	}

	for _, attr := range b.view.InducedAttributes(ranges[0]) {
		if !attr.Identifier {
			continue
		}

		if base, ok := b.view.TypeBase(attr.Range); ok {
			return pythonType(base), true
		}

		return "str", true
	}

	return "", false
}

// arrayAnnotation folds an array class into an NDArray annotation. Required
// dimensions lead; each optional dimension adds one more variant.
func (b *moduleBuilder) arrayAnnotation(c *linkml.ClassDefinition) string {
	var required, optional []*linkml.SlotDefinition

	var dtypes []string

	for _, dim := range c.Attributes {
		if dim.Required {
			required = append(required, dim)
		} else {
			optional = append(optional, dim)
		}

		if !slices.Contains(dtypes, dim.Range) {
			dtypes = append(dtypes, dim.Range)
		}
	}

	var elem string

	if len(dtypes) == 1 {
		elem, _ = maps.NPTypingType(dtypes[0])
	}

	if elem == "" {
		return b.arrayFallback(c, dtypes)
	}

	b.nptyping["NDArray"] = true
	b.nptyping["Shape"] = true

	if elem != "Any" {
		b.nptyping[elem] = true
	}

	var variants []string

	for i := 0; i <= len(optional); i++ {
		dims := slices.Concat(required, optional[:i])
		if len(dims) == 0 {
			continue
		}

		variants = append(variants, "NDArray[Shape["+pyString(shapeSpec(dims))+"], "+elem+"]")
	}

	switch len(variants) {
	case 0:
		return "NDArray[Any, " + elem + "]"
	case 1:
		return variants[0]
	default:
		return "Union[" + strings.Join(variants, ", ") + "]"
	}
}

// arrayFallback annotates an array whose element type has no typed-array
// equivalent as a list or a single value.
func (b *moduleBuilder) arrayFallback(c *linkml.ClassDefinition, dtypes []string) string {
	elem := "Any"
	if len(dtypes) == 1 {
		if t, _, err := b.rangeType(dtypes[0]); err == nil {
			elem = t
		}
	}

	b.diags.AddWarning(diagnostic.CodeArrayFallback,
		fmt.Sprintf("element type %s has no array equivalent, using a list of %s", strings.Join(dtypes, "|"), elem),
		b.schema, c.Name)
	logrus.Debugf("array class %s falls back to List[%s]", c.Name, elem)

	return "Union[List[" + elem + "], " + elem + "]"
}

func shapeSpec(dims []*linkml.SlotDefinition) string {
	parts := make([]string, len(dims))

	for i, dim := range dims {
		size := "*"
		if dim.MaximumCardinality != nil {
			size = fmt.Sprint(*dim.MaximumCardinality)
		}

		parts[i] = size + " " + dim.Name
	}

	return strings.Join(parts, ", ")
}
