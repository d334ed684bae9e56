package adapter

import (
	"fmt"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/linkml"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/match"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/nwbschema"
)

// GroupAdapter translates one group and, recursively, what it contains.
type GroupAdapter struct {
	ClassAdapter
	Group *nwbschema.Group
}

// NewGroupAdapter adapts g nested under parent, or at the top of a schema
// file when parent is nil. opts may be nil.
func NewGroupAdapter(g *nwbschema.Group, parent *ClassAdapter, opts *Options) *GroupAdapter {
	return &GroupAdapter{
		ClassAdapter: newClassAdapter(g, parent, opts),
		Group:        g,
	}
}

// Build handles the two collapsing special cases, then the generic case:
// nested nodes are built with this group as parent, their slots become this
// class's attributes and their classes are returned alongside it.
func (a *GroupAdapter) Build() (BuildResult, error) {
	g := a.Group

	if a.isContainer() {
		return a.buildContainer()
	}

	if a.Parent != nil && g.NeurodataTypeInc != "" && len(g.Groups) == 0 && len(g.Datasets) == 0 {
		return a.buildTerminal()
	}

	nested, err := a.buildSubclasses()
	if err != nil {
		return BuildResult{}, err
	}

	links, err := a.buildLinks()
	if err != nil {
		return BuildResult{}, err
	}

	extra := append(nested.Slots, links...)

	res, err := a.BuildBase(extra)
	if err != nil {
		return BuildResult{}, err
	}

	res.Classes = append(res.Classes, nested.Classes...)

	return res, nil
}

// isContainer reports a nested group whose children are all anonymous,
// repeated inclusions of some type.
func (a *GroupAdapter) isContainer() bool {
	g := a.Group
	if a.Parent == nil || len(g.Groups) == 0 {
		return false
	}

	for _, child := range g.Groups {
		if child.Name != "" || child.NeurodataTypeInc == "" || !child.Quantity.Many() {
			return false
		}
	}

	return true
}

func (a *GroupAdapter) buildContainer() (BuildResult, error) {
	g := a.Group

	name := g.Name
	if name == "" {
		name = "children"
	}

	slot := &linkml.SlotDefinition{
		Name:        name,
		Description: g.Doc,
		Multivalued: true,
	}

	seen := make(map[string]bool)

	for _, child := range g.Groups {
		if seen[child.NeurodataTypeInc] {
			continue
		}

		seen[child.NeurodataTypeInc] = true
		slot.AnyOf = append(slot.AnyOf, linkml.AnonymousSlotExpression{Range: child.NeurodataTypeInc})
	}

	return BuildResult{Slots: []*linkml.SlotDefinition{slot}}, nil
}

func (a *GroupAdapter) buildTerminal() (BuildResult, error) {
	g := a.Group

	name := g.Name
	if name == "" {
		name = match.CamelToSnake(g.NeurodataTypeInc)
	}

	slot, err := quantitySlot(name, g.Doc, g.NeurodataTypeInc, g.Quantity)
	if err != nil {
		return BuildResult{}, err
	}

	return BuildResult{Slots: []*linkml.SlotDefinition{slot}}, nil
}

func (a *GroupAdapter) buildSubclasses() (BuildResult, error) {
	var res BuildResult

	for _, ds := range a.Group.Datasets {
		built, err := NewDatasetAdapter(ds, &a.ClassAdapter, a.opts).Build()
		if err != nil {
			return BuildResult{}, err
		}

		res = res.Add(built)
	}

	for _, child := range a.Group.Groups {
		built, err := NewGroupAdapter(child, &a.ClassAdapter, a.opts).Build()
		if err != nil {
			return BuildResult{}, err
		}

		res = res.Add(built)
	}

	return res, nil
}

func (a *GroupAdapter) buildLinks() ([]*linkml.SlotDefinition, error) {
	slots := make([]*linkml.SlotDefinition, 0, len(a.Group.Links))

	for _, link := range a.Group.Links {
		name := link.Name
		if name == "" {
			name = match.CamelToSnake(link.TargetType)
		}

		slot, err := quantitySlot(name, link.Doc, link.TargetType, link.Quantity)
		if err != nil {
			return nil, fmt.Errorf("link %s: %w", name, err)
		}

		slot.Annotations = slot.Annotations.Set("source_type", "link")
		slots = append(slots, slot)
	}

	return slots, nil
}
