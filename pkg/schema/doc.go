// Package schema defines the schema node graph produced by the registry.
//
// A Schema is a tagged variant: primitive, enum, array, map, object or
// reference. Object nodes keep their properties in declaration order.
// Reference nodes are lightweight pointers whose Ref is a reference key into
// the registry that produced them.
package schema
