// Package adapter translates NWB schema language definitions into LinkML.
//
// Translation runs bottom-up. Dataset and group adapters turn one node into
// classes and, for nested nodes, the slot the parent uses to hold it. A
// SchemaAdapter collects one schema file into schema definitions, and a
// NamespacesAdapter resolves type references across files and namespaces and
// emits the umbrella and language schemas.
//
// Every adapter returns a BuildResult. Results are only ever concatenated;
// nothing is deduplicated or removed until a schema is split.
package adapter
