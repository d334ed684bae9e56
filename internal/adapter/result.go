package adapter

import (
	"slices"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/linkml"
)

// BuildResult accumulates what adapters produce.
type BuildResult struct {
	Classes []*linkml.ClassDefinition
	Slots   []*linkml.SlotDefinition
	Types   []*linkml.TypeDefinition
	Schemas []*linkml.SchemaDefinition
}

// Add returns a new result with other's elements after r's. Order is kept
// and nothing is deduplicated.
func (r BuildResult) Add(other BuildResult) BuildResult {
	return BuildResult{
		Classes: slices.Concat(r.Classes, other.Classes),
		Slots:   slices.Concat(r.Slots, other.Slots),
		Types:   slices.Concat(r.Types, other.Types),
		Schemas: slices.Concat(r.Schemas, other.Schemas),
	}
}

// ClassNames returns the names of the classes in order.
func (r BuildResult) ClassNames() []string {
	return linkml.Classes(r.Classes).Names()
}

// SlotNames returns the names of the slots in order.
func (r BuildResult) SlotNames() []string {
	names := make([]string, len(r.Slots))
	for i, s := range r.Slots {
		names[i] = s.Name
	}

	return names
}
