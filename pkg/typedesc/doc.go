// Package typedesc models the type metadata consumed by the schema registry.
//
// A Type is an abstract, read-only view over some concrete introspection
// technology (Go reflection, a YAML catalog, a compiler front end). It exposes
// classification predicates, declared and inherited properties in declaration
// order, base and interface relationships, generic arguments, and a typed
// metadata tag set. Adapters translate their native annotations (struct tags,
// catalog keys) into Tags once, at the boundary, so downstream code never
// inspects raw annotations.
//
// Descriptor is the in-memory implementation used by the catalog adapter and
// by tests. It supports nested types, interfaces, enums and generic
// definitions with positional instantiation.
package typedesc
