package gen

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/template"

	"github.com/sirupsen/logrus"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/diagnostic"
	"github.com/p2p-ld/nwb-linkml-sub001/internal/linkml"
)

// Config holds configuration for code generation.
type Config struct {
	// Split renders one module per schema in the view, importing across
	// modules, instead of one module holding everything.
	Split bool
	// Diagnostics collects non-fatal warnings. May be nil.
	Diagnostics *diagnostic.Diagnostics
}

// Generator renders Python modules from a schema view.
type Generator struct {
	config Config
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config Config) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Python module.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "core_nwb_base.py").
	Filename string
	// Schema is the schema the module was rendered from.
	Schema string
	// Content is the module source.
	Content []byte
	// Classes lists the rendered classes in emission order.
	Classes []RenderedClass
}

// RenderedClass records a rendered class and its ancestors, most derived
// first.
type RenderedClass struct {
	Name      string
	Ancestors []string
}

// Generate renders the view. In split mode every schema of the import
// closure becomes its own module, except that the include half of a split
// schema shares the module of its main half, so their mutual references
// never become circular imports. Otherwise one module named after the root holds every class of the
// closure.
func (g *Generator) Generate(view *linkml.SchemaView) ([]GeneratedFile, error) {
	if !g.config.Split {
		root := view.Root()

		file, err := g.generateModule(view, root, "", view.AllClasses(true), view.AllEnums(true))
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", root.Name, err)
		}

		return []GeneratedFile{*file}, nil
	}

	var order []string

	parts := make(map[string][]*linkml.SchemaDefinition)

	for _, name := range view.ImportsClosure() {
		schema, _ := view.Schema(name)

		module := moduleOf(view, name)
		if _, ok := parts[module]; !ok {
			order = append(order, module)
		}

		parts[module] = append(parts[module], schema)
	}

	files := make([]GeneratedFile, 0, len(order))

	for _, module := range order {
		var (
			classes []*linkml.ClassDefinition
			enums   []*linkml.EnumDefinition
		)

		for _, schema := range parts[module] {
			classes = append(classes, schema.Classes...)
			enums = append(enums, schema.Enums...)
		}

		main, _ := view.Schema(module)

		file, err := g.generateModule(view, main, module, classes, enums)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", module, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

// moduleOf returns the schema whose module renders schema.
func moduleOf(view *linkml.SchemaView, schema string) string {
	if main, ok := strings.CutSuffix(schema, linkml.IncludeSuffix); ok {
		if _, exists := view.Schema(main); exists {
			return main
		}
	}

	return schema
}

func (g *Generator) generateModule(
	view *linkml.SchemaView,
	schema *linkml.SchemaDefinition,
	owner string,
	classes []*linkml.ClassDefinition,
	enums []*linkml.EnumDefinition,
) (*GeneratedFile, error) {
	b := newModuleBuilder(view, owner, g.config.Diagnostics)

	data := &moduleData{
		Schema:  schema.Name,
		Version: schema.Version,
	}

	var rendered []*linkml.ClassDefinition

	for _, c := range classes {
		if !elided(c) {
			rendered = append(rendered, c)
		}
	}

	var imported []string

	for _, c := range rendered {
		for _, p := range c.Parents() {
			if b.reference(p) {
				imported = append(imported, p)
			}
		}
	}

	sorted, err := SortClasses(rendered, imported)
	if err != nil {
		return nil, err
	}

	file := &GeneratedFile{
		Filename: ModuleName(schema.Name) + ".py",
		Schema:   schema.Name,
	}

	for _, c := range sorted {
		cd, err := b.class(c)
		if err != nil {
			return nil, err
		}

		data.Classes = append(data.Classes, cd)
		file.Classes = append(file.Classes, RenderedClass{
			Name:      c.Name,
			Ancestors: view.ClassAncestors(c.Name),
		})
	}

	for _, e := range enums {
		data.Enums = append(data.Enums, enumFor(e))
	}

	// A schema made only of imports re-exports them.
	if owner != "" && len(rendered) == 0 && len(enums) == 0 {
		for _, imp := range schema.Imports {
			if _, ok := view.Schema(imp); !ok {
				continue
			}

			if moduleOf(view, imp) == owner {
				continue
			}

			module := ModuleName(moduleOf(view, imp))
			if !slices.Contains(data.Star, module) {
				data.Star = append(data.Star, module)
			}
		}
	}

	data.NPTyping = sortedKeys(b.nptyping)

	for _, module := range sortedKeys(b.imports) {
		data.Imports = append(data.Imports, importData{Module: module, Names: sortedKeys(b.imports[module])})
	}

	var buf bytes.Buffer
	if err := moduleTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	logrus.Debugf("rendered %s: %d classes, %d enums", file.Filename, len(data.Classes), len(data.Enums))

	file.Content = buf.Bytes()

	return file, nil
}

func (b *moduleBuilder) class(c *linkml.ClassDefinition) (classData, error) {
	cd := classData{Name: c.Name, Doc: c.Description, Bases: "ConfiguredBaseModel"}

	if parents := c.Parents(); len(parents) > 0 {
		cd.Bases = strings.Join(parents, ", ")
	}

	slots := slices.Clone(c.Attributes)

	for _, name := range c.Slots {
		slot := b.view.GetSlot(name, true)
		if slot == nil {
			return classData{}, &RangeError{Class: c.Name, Slot: name}
		}

		slots = append(slots, slot)
	}

	for _, slot := range slots {
		ann, err := b.annotation(c, slot)
		if err != nil {
			return classData{}, err
		}

		cd.Fields = append(cd.Fields, fieldData{
			Name:        pyIdent(slot.Name),
			Annotation:  ann,
			Default:     fieldDefault(slot),
			Description: slot.Description,
		})
	}

	return cd, nil
}

func fieldDefault(slot *linkml.SlotDefinition) string {
	switch {
	case slot.IfAbsent != "":
		return pyDefault(slot.IfAbsent)
	case slot.Required:
		return "..."
	default:
		return "None"
	}
}

func enumFor(e *linkml.EnumDefinition) enumData {
	ed := enumData{Name: e.Name, Doc: e.Description}
	for _, pv := range e.PermissibleValues {
		ed.Values = append(ed.Values, enumValue{Name: pyIdent(pv.Text), Value: pv.Text})
	}

	return ed
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

// moduleData holds everything the module template needs.
type moduleData struct {
	Schema   string
	Version  string
	NPTyping []string
	Imports  []importData
	Star     []string
	Enums    []enumData
	Classes  []classData
}

type importData struct {
	Module string
	Names  []string
}

type enumData struct {
	Name   string
	Doc    string
	Values []enumValue
}

type enumValue struct {
	Name  string
	Value string
}

type classData struct {
	Name   string
	Bases  string
	Doc    string
	Fields []fieldData
}

type fieldData struct {
	Name        string
	Annotation  string
	Default     string
	Description string
}

var moduleTemplate = template.Must(template.New("module").Funcs(template.FuncMap{
	"py":   pyString,
	"doc":  pyDoc,
	"join": strings.Join,
}).Parse(`# Code generated by nwb-linkml from {{.Schema}}. DO NOT EDIT.
from __future__ import annotations

from datetime import date, datetime, time
from decimal import Decimal
from enum import Enum
from typing import Any, Dict, List, Literal, Optional, Union

from pydantic import BaseModel, ConfigDict, Field
{{if .NPTyping}}from nptyping import {{join .NPTyping ", "}}
{{end}}{{range .Imports}}from .{{.Module}} import {{join .Names ", "}}
{{end}}{{range .Star}}from .{{.}} import *
{{end}}
metamodel_version = "None"
version = {{py .Version}}


class ConfiguredBaseModel(BaseModel):
    model_config = ConfigDict(
        validate_assignment=True,
        validate_default=True,
        extra="forbid",
        arbitrary_types_allowed=True,
        use_enum_values=True,
    )
{{range .Enums}}

class {{.Name}}(str, Enum):
{{if .Doc}}    {{doc .Doc}}

{{end}}{{range .Values}}    {{.Name}} = {{py .Value}}
{{else}}    pass
{{end}}{{end}}{{range .Classes}}

class {{.Name}}({{.Bases}}):
{{if .Doc}}    {{doc .Doc}}

{{end}}{{range .Fields}}    {{.Name}}: {{.Annotation}} = Field({{.Default}}{{if .Description}}, description={{py .Description}}{{end}})
{{else}}    pass
{{end}}{{end}}{{if .Classes}}

{{range .Classes}}{{.Name}}.model_rebuild()
{{end}}{{end}}`))
