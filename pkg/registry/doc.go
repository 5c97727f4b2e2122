// Package registry turns type descriptors into schema nodes and keeps the
// table of named, reusable schemas ("references") for one generation pass.
//
// Every object-classified type is built at most once per registry. Before its
// properties are visited, the type's key is inserted with a placeholder
// object node; any re-entrant resolution of the same type (self or mutual
// cycles) finds the key and returns a Reference instead of recursing. The
// placeholder is filled in place, so the registry acts as an arena indexed by
// reference key.
//
// Simple, enum, array and map shapes are returned inline and never stored.
//
// When construction of a key fails, that key and every entry inserted while
// it was being built are removed before the error is returned, so a failed
// resolution leaves the table as it was and a later call starts fresh.
//
// A Registry is not safe for concurrent use. Run one registry per document
// variant and parallelise whole passes instead.
package registry
