// Package provider builds namespaces into a versioned on-disk cache.
//
// Artifacts live under <root>/<kind>/<namespace>/<version dir>/ where kind is
// linkml or pydantic. A namespace counts as built once its final file is in
// place; every file is written to a temporary name and renamed, and the
// final file is written last.
package provider
