package nwbschema

import (
	"errors"
	"fmt"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/diagnostic"
)

// ValidateNamespaces checks a namespace file for entries the adapters cannot
// resolve.
func ValidateNamespaces(ns *Namespaces) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	for i, n := range ns.Namespaces {
		if n.Name == "" {
			diags.AddError(diagnostic.CodeMissingName, fmt.Sprintf("namespace #%d has no name", i), "", "")
			continue
		}

		if n.Version == "" {
			diags.AddWarning(diagnostic.CodeMissingVersion, "namespace has no version", n.Name, "")
		}

		for j, ref := range n.Schema {
			if ref.Source == "" && ref.Namespace == "" {
				diags.AddError(diagnostic.CodeMissingSource,
					fmt.Sprintf("schema entry #%d has neither source nor namespace", j), n.Name, "")
			}
		}
	}

	return diags
}

// ValidateSchema checks one schema file: type names defined more than once
// and dims/shape pairs that cannot be zipped.
func ValidateSchema(name string, sch *Schema) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	seen := make(map[string]bool)

	var visit func(path string, n Node)
	visit = func(path string, n Node) {
		c := n.Base()
		if def := c.NeurodataTypeDef; def != "" {
			if seen[def] {
				diags.AddError(diagnostic.CodeDuplicateType, "type defined more than once", name, def)
			}

			seen[def] = true
		}

		if ds, ok := n.(*Dataset); ok {
			if err := CheckShape(ds.Dims, ds.Shape); err != nil {
				diags.AddError(diagnostic.CodeMalformedShape, err.Error(), name, path)
			}
		}

		if g, ok := n.(*Group); ok {
			for _, child := range g.Datasets {
				visit(path+"/"+label(&child.Common), child)
			}

			for _, child := range g.Groups {
				visit(path+"/"+label(&child.Common), child)
			}
		}

		if _, ok := quantityOK[c.Quantity]; !ok {
			diags.AddError(diagnostic.CodeUnknownQuantity,
				fmt.Sprintf("unsupported quantity %q", string(c.Quantity)), name, path)
		}
	}

	for _, ds := range sch.Datasets {
		visit(label(&ds.Common), ds)
	}

	for _, g := range sch.Groups {
		visit(label(&g.Common), g)
	}

	return diags
}

var quantityOK = map[Quantity]struct{}{
	QuantityOne:        {},
	QuantityOptional:   {},
	QuantityZeroOrMany: {},
	QuantityOneOrMany:  {},
}

// CheckShape reports whether dims and shape describe the same variants.
func CheckShape(dims Dims, shape Shape) error {
	switch {
	case len(dims) == 0 && len(shape) == 0:
		return nil
	case len(dims) == 0:
		return errors.New("shape given without dims")
	case len(shape) == 0:
		return errors.New("dims given without shape")
	case len(dims) != len(shape):
		return fmt.Errorf("dims has %d variants but shape has %d", len(dims), len(shape))
	}

	for i := range dims {
		if len(dims[i]) != len(shape[i]) {
			return fmt.Errorf("variant %d: %d dims but %d sizes", i, len(dims[i]), len(shape[i]))
		}
	}

	return nil
}

func label(c *Common) string {
	switch {
	case c.NeurodataTypeDef != "":
		return c.NeurodataTypeDef
	case c.Name != "":
		return c.Name
	case c.NeurodataTypeInc != "":
		return "<" + c.NeurodataTypeInc + ">"
	default:
		return "<anonymous>"
	}
}
