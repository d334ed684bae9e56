package adapter

import (
	"sort"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/nwbschema"
)

// Walk visits v and everything reachable from it depth first: schema
// nodes, attributes, links, dtypes, and plain sequences and mappings of
// values. visit returns false to skip a node's children.
func Walk(v any, visit func(v any) bool) {
	if v == nil || !visit(v) {
		return
	}

	switch n := v.(type) {
	case *SchemaAdapter:
		for _, ds := range n.Datasets {
			Walk(ds, visit)
		}

		for _, g := range n.Groups {
			Walk(g, visit)
		}
	case *nwbschema.Namespaces:
		for _, ns := range n.Namespaces {
			Walk(ns, visit)
		}
	case *nwbschema.Namespace:
		for i := range n.Schema {
			Walk(&n.Schema[i], visit)
		}
	case *nwbschema.Schema:
		for _, ds := range n.Datasets {
			Walk(ds, visit)
		}

		for _, g := range n.Groups {
			Walk(g, visit)
		}
	case *nwbschema.Group:
		walkAttributes(n.Attributes, visit)

		for _, ds := range n.Datasets {
			Walk(ds, visit)
		}

		for _, g := range n.Groups {
			Walk(g, visit)
		}

		for _, l := range n.Links {
			Walk(l, visit)
		}
	case *nwbschema.Dataset:
		if n.DType != nil {
			Walk(n.DType, visit)
		}

		walkAttributes(n.Attributes, visit)
		Walk(n.Value, visit)
		Walk(n.DefaultValue, visit)
	case *nwbschema.Attribute:
		if n.DType != nil {
			Walk(n.DType, visit)
		}

		Walk(n.Value, visit)
		Walk(n.DefaultValue, visit)
	case *nwbschema.DType:
		if n.Reference != nil {
			Walk(n.Reference, visit)
		}

		for i := range n.Compound {
			Walk(&n.Compound[i].DType, visit)
		}
	case []any:
		for _, item := range n {
			Walk(item, visit)
		}
	case map[string]any:
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for _, k := range keys {
			Walk(n[k], visit)
		}
	}
}

func walkAttributes(attrs []nwbschema.Attribute, visit func(any) bool) {
	for i := range attrs {
		Walk(&attrs[i], visit)
	}
}

// WalkTypes collects every value of type T reachable from root.
func WalkTypes[T any](root any) []T {
	var out []T

	Walk(root, func(v any) bool {
		if t, ok := v.(T); ok {
			out = append(out, t)
		}

		return true
	})

	return out
}

// WalkFieldValues collects the non-empty values of a named schema field
// (neurodata_type_def, neurodata_type_inc, target_type or name) reachable
// from root, without duplicates, in first-seen order.
func WalkFieldValues(root any, field string) []string {
	var out []string

	seen := make(map[string]bool)
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	Walk(root, func(v any) bool {
		switch n := v.(type) {
		case nwbschema.Node:
			c := n.Base()
			switch field {
			case "neurodata_type_def":
				add(c.NeurodataTypeDef)
			case "neurodata_type_inc":
				add(c.NeurodataTypeInc)
			case "name":
				add(c.Name)
			}
		case *nwbschema.ReferenceDType:
			if field == "target_type" {
				add(n.TargetType)
			}
		case *nwbschema.Link:
			switch field {
			case "target_type":
				add(n.TargetType)
			case "name":
				add(n.Name)
			}
		case *nwbschema.Attribute:
			if field == "name" {
				add(n.Name)
			}
		}

		return true
	})

	return out
}
