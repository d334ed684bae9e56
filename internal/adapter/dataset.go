package adapter

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/diagnostic"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/linkml"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/maps"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/match"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/nwbschema"
)

//go:generate go tool stringer -type=PatternKind -output=patternkind_string.go

// PatternKind identifies one dataset translation pattern.
type PatternKind int

const (
	_ PatternKind = iota
	// PatternScalar collapses a named scalar to a slot on the parent.
	PatternScalar
	// PatternScalarAttributes keeps the class and adds a value slot.
	PatternScalarAttributes
	// PatternVector collapses a named plain vector to a multivalued slot.
	PatternVector
	// PatternListlike adds a multivalued slot of the referenced type.
	PatternListlike
	// PatternNVectors collapses anonymous repeated inclusions to one slot.
	PatternNVectors
	// PatternArraylikeAttributes keeps the class and adds an array slot.
	PatternArraylikeAttributes
	// PatternArraylike replaces the class with a slot ranged on its array.
	PatternArraylike
)

// ArraySuffix ends the name of every synthesized array class.
const ArraySuffix = "__Array"

// vectorTypes are inclusions treated as plain one-dimensional vectors.
var vectorTypes = map[string]bool{"VectorData": true}

type datasetPattern struct {
	kind  PatternKind
	check func(d *datasetContext) bool
	apply func(d *datasetContext, res BuildResult) (BuildResult, error)
}

// datasetContext carries what every pattern needs about one dataset.
type datasetContext struct {
	ds    *nwbschema.Dataset
	dtype string
	// name is the full name, used as the base of an array class name.
	name string
}

// DatasetPatterns lists the dataset patterns in evaluation order. Exactly one
// may match a dataset.
var DatasetPatterns = []datasetPattern{
	{kind: PatternScalar, check: isScalar, apply: applyScalar},
	{kind: PatternScalarAttributes, check: isScalarAttributes, apply: applyScalarAttributes},
	{kind: PatternVector, check: isVector, apply: applyVector},
	{kind: PatternListlike, check: isListlike, apply: applyListlike},
	{kind: PatternNVectors, check: isNVectors, apply: applyNVectors},
	{kind: PatternArraylikeAttributes, check: isArraylikeAttributes, apply: applyArraylikeAttributes},
	{kind: PatternArraylike, check: isArraylike, apply: applyArraylike},
}

// DatasetAdapter translates one dataset.
type DatasetAdapter struct {
	ClassAdapter
	Dataset *nwbschema.Dataset
}

// NewDatasetAdapter adapts ds nested under parent, or at the top of a schema
// file when parent is nil. opts may be nil.
func NewDatasetAdapter(ds *nwbschema.Dataset, parent *ClassAdapter, opts *Options) *DatasetAdapter {
	return &DatasetAdapter{
		ClassAdapter: newClassAdapter(ds, parent, opts),
		Dataset:      ds,
	}
}

// Build builds the base class and then applies the one matching pattern.
func (a *DatasetAdapter) Build() (BuildResult, error) {
	ds := a.Dataset
	label := a.describe()

	if err := nwbschema.CheckShape(ds.Dims, ds.Shape); err != nil {
		return BuildResult{}, &ShapeError{Dataset: label, Err: err}
	}

	res, err := a.BuildBase(nil)
	if err != nil {
		return BuildResult{}, err
	}

	name, err := a.ClassName()
	if err != nil {
		return BuildResult{}, err
	}

	dtype, err := handleDType(ds.DType, a.opts.Diagnostics, name)
	if err != nil {
		return BuildResult{}, fmt.Errorf("dataset %s: %w", label, err)
	}

	ctx := &datasetContext{ds: ds, dtype: dtype, name: name}

	pattern, err := a.match(ctx, label)
	if err != nil || pattern == nil {
		return res, err
	}

	logrus.Debugf("dataset %s: %s", label, pattern.kind)

	return pattern.apply(ctx, res)
}

func (a *DatasetAdapter) match(ctx *datasetContext, label string) (*datasetPattern, error) {
	var matched []*datasetPattern

	for i := range DatasetPatterns {
		if DatasetPatterns[i].check(ctx) {
			matched = append(matched, &DatasetPatterns[i])
		}
	}

	switch len(matched) {
	case 1:
		return matched[0], nil
	case 0:
		if a.opts.Strict {
			return nil, &PatternError{Dataset: label}
		}

		a.opts.Diagnostics.AddInfo(diagnostic.CodeUnmatchedDataset, "no pattern applies, keeping class", "", label)

		return nil, nil
	default:
		kinds := make([]PatternKind, len(matched))
		for i, p := range matched {
			kinds[i] = p.kind
		}

		return nil, &PatternError{Dataset: label, Matched: kinds}
	}
}

// hasAttrs reports attributes that carry data, i.e. are not fixed constants.
func hasAttrs(ds *nwbschema.Dataset) bool {
	if len(ds.Attributes) == 0 {
		return false
	}

	for _, attr := range ds.Attributes {
		if attr.Fixed() {
			return false
		}
	}

	return true
}

func hasShape(ds *nwbschema.Dataset) bool {
	return len(ds.Dims) > 0 && len(ds.Shape) > 0
}

func is1D(ds *nwbschema.Dataset) bool {
	return len(ds.Dims) == 1 && len(ds.Dims[0]) == 1
}

func isArrayDType(dtype string) bool {
	return dtype == maps.AnyType || maps.IsFlat(dtype)
}

func isScalar(d *datasetContext) bool {
	ds := d.ds
	return ds.NeurodataTypeInc == "" && len(ds.Attributes) == 0 && !hasShape(ds) && ds.Name != ""
}

func applyScalar(d *datasetContext, _ BuildResult) (BuildResult, error) {
	slot, err := quantitySlot(d.ds.Name, d.ds.Doc, d.dtype, d.ds.Quantity)
	if err != nil {
		return BuildResult{}, err
	}

	return BuildResult{Slots: []*linkml.SlotDefinition{slot}}, nil
}

func isScalarAttributes(d *datasetContext) bool {
	ds := d.ds
	return ds.NeurodataTypeInc == "" && len(ds.Attributes) > 0 && !hasShape(ds) && ds.Name != ""
}

func applyScalarAttributes(d *datasetContext, res BuildResult) (BuildResult, error) {
	res.Classes[0].SetAttribute(&linkml.SlotDefinition{
		Name:     "value",
		Range:    d.dtype,
		Required: true,
	})

	return res, nil
}

func isVector(d *datasetContext) bool {
	ds := d.ds
	return vectorTypes[ds.NeurodataTypeInc] && ds.NeurodataTypeDef == "" &&
		len(ds.Shape) == 0 && !hasAttrs(ds) && ds.Name != ""
}

func applyVector(d *datasetContext, _ BuildResult) (BuildResult, error) {
	slot, err := quantitySlot(d.ds.Name, d.ds.Doc, d.dtype, d.ds.Quantity)
	if err != nil {
		return BuildResult{}, err
	}

	slot.Multivalued = true

	return BuildResult{Slots: []*linkml.SlotDefinition{slot}}, nil
}

func isListlike(d *datasetContext) bool {
	return is1D(d.ds) && !isArrayDType(d.dtype)
}

func applyListlike(d *datasetContext, res BuildResult) (BuildResult, error) {
	res.Classes[0].SetAttribute(&linkml.SlotDefinition{
		Name:        match.CamelToSnake(d.dtype),
		Description: d.ds.Doc,
		Range:       d.dtype,
		Required:    !d.ds.Quantity.Optional(),
		Multivalued: true,
	})

	return res, nil
}

func isNVectors(d *datasetContext) bool {
	ds := d.ds
	return ds.Name == "" && ds.NeurodataTypeDef == "" && ds.NeurodataTypeInc != "" && ds.Quantity.Many()
}

func applyNVectors(d *datasetContext, _ BuildResult) (BuildResult, error) {
	inc := d.ds.NeurodataTypeInc

	slot, err := quantitySlot(match.CamelToSnake(inc), d.ds.Doc, inc, d.ds.Quantity)
	if err != nil {
		return BuildResult{}, err
	}

	return BuildResult{Slots: []*linkml.SlotDefinition{slot}}, nil
}

func isArraylikeAttributes(d *datasetContext) bool {
	ds := d.ds
	return hasShape(ds) && !vectorTypes[ds.NeurodataTypeInc] && hasAttrs(ds) && isArrayDType(d.dtype)
}

func applyArraylikeAttributes(d *datasetContext, res BuildResult) (BuildResult, error) {
	array, err := MakeArraylike(d.ds, d.dtype, d.name)
	if err != nil {
		return BuildResult{}, err
	}

	res.Classes[0].SetAttribute(&linkml.SlotDefinition{
		Name:     "array",
		Range:    array.Name,
		Required: true,
	})
	res.Classes = append(res.Classes, array)

	return res, nil
}

func isArraylike(d *datasetContext) bool {
	ds := d.ds
	return ds.Name != "" && hasShape(ds) && !hasAttrs(ds) && isArrayDType(d.dtype)
}

func applyArraylike(d *datasetContext, _ BuildResult) (BuildResult, error) {
	ds := d.ds

	pairs, err := dimShapePairs(ds.Dims, ds.Shape)
	if err != nil {
		return BuildResult{}, &ShapeError{Dataset: ds.Name, Err: err}
	}

	if len(pairs) == 1 {
		slot := &linkml.SlotDefinition{
			Name:        ds.Name,
			Description: ds.Doc,
			Range:       d.dtype,
			Required:    !ds.Quantity.Optional(),
			Multivalued: true,
		}

		return BuildResult{Slots: []*linkml.SlotDefinition{slot}}, nil
	}

	array, err := MakeArraylike(ds, d.dtype, d.name)
	if err != nil {
		return BuildResult{}, err
	}

	slot := &linkml.SlotDefinition{
		Name:        ds.Name,
		Description: ds.Doc,
		Range:       array.Name,
		Required:    !ds.Quantity.Optional(),
	}

	return BuildResult{
		Classes: []*linkml.ClassDefinition{array},
		Slots:   []*linkml.SlotDefinition{slot},
	}, nil
}

type dimShape struct {
	dim  string
	size *int
}

// dimShapePairs zips dims with shape across all variants and removes
// repeated pairs, keeping first-seen order.
func dimShapePairs(dims nwbschema.Dims, shape nwbschema.Shape) ([]dimShape, error) {
	if err := nwbschema.CheckShape(dims, shape); err != nil {
		return nil, err
	}

	var pairs []dimShape

	for v := range dims {
		for i, dim := range dims[v] {
			pair := dimShape{dim: dim, size: shape[v][i]}

			dup := slices.ContainsFunc(pairs, func(p dimShape) bool {
				return p.dim == pair.dim && sameSize(p.size, pair.size)
			})
			if !dup {
				pairs = append(pairs, pair)
			}
		}
	}

	return pairs, nil
}

func sameSize(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return *a == *b
}

// MakeArraylike synthesizes the array class for a dataset: one slot per
// distinct dimension, required when the dimension appears in every variant,
// with a fixed cardinality when its size is known. A dimension given two
// different fixed sizes is a ShapeError. The class is named
// "<name>__Array" where name is the override, else the dataset's type
// definition, else its fixed name.
func MakeArraylike(ds *nwbschema.Dataset, dtype, name string) (*linkml.ClassDefinition, error) {
	switch {
	case name != "":
	case ds.NeurodataTypeDef != "":
		name = ds.NeurodataTypeDef
	case ds.Name != "":
		name = ds.Name
	default:
		return nil, &NamingError{What: "array class name", Node: "anonymous dataset"}
	}

	pairs, err := dimShapePairs(ds.Dims, ds.Shape)
	if err != nil {
		return nil, &ShapeError{Dataset: name, Err: err}
	}

	cls := &linkml.ClassDefinition{
		Name: name + ArraySuffix,
		IsA:  maps.ArraylikeClass,
	}

	for _, p := range pairs {
		if prev := cls.Attribute(p.dim); prev != nil {
			if p.size != nil && prev.MinimumCardinality != nil && *p.size != *prev.MinimumCardinality {
				return nil, &ShapeError{
					Dataset: name,
					Err:     fmt.Errorf("dimension %s has sizes %d and %d", p.dim, *prev.MinimumCardinality, *p.size),
				}
			}

			continue
		}

		slot := &linkml.SlotDefinition{
			Name:     p.dim,
			Range:    dtype,
			Required: len(ds.Dims) == 1 || inEveryVariant(ds.Dims, p.dim),
		}

		if p.size != nil {
			size := *p.size
			slot.MinimumCardinality = &size
			slot.MaximumCardinality = &size
		}

		cls.Attributes = append(cls.Attributes, slot)
	}

	return cls, nil
}

func inEveryVariant(dims nwbschema.Dims, dim string) bool {
	for _, variant := range dims {
		if !slices.Contains(variant, dim) {
			return false
		}
	}

	return true
}
