// Package discriminator resolves the discriminator property and mapping
// values used to describe polymorphic object schemas.
package discriminator

import (
	"strings"

	"github.com/goliatone/go-schemagen/pkg/typedesc"
)

// DefaultPropertyName is used when neither the type nor the resolver names a
// discriminator property.
const DefaultPropertyName = "$type"

// Resolver selects the discriminator property of a base type and the mapping
// key of each subtype.
type Resolver interface {
	ResolveProperty(t typedesc.Type) typedesc.Property
	ResolveMappingKey(prop typedesc.Property, subtype typedesc.Type) string
}

// Default reads DiscriminatorTag and DiscriminatorValueTag. When the base
// type declares (or inherits) a property with the discriminator name, that
// property is returned so naming strategies apply to it; otherwise a
// synthetic string property declared by the base type is returned.
type Default struct {
	// PropertyName overrides DefaultPropertyName for untagged types.
	PropertyName string
}

var _ Resolver = Default{}

// ResolveProperty implements Resolver.
func (d Default) ResolveProperty(t typedesc.Type) typedesc.Property {
	name := d.PropertyName
	if tag, ok := typedesc.Find[typedesc.DiscriminatorTag](t.Tags()); ok && strings.TrimSpace(tag.Property) != "" {
		name = strings.TrimSpace(tag.Property)
	}
	if name == "" {
		name = DefaultPropertyName
	}
	for _, prop := range t.Properties() {
		if prop.Name == name {
			return prop
		}
	}
	return typedesc.Property{
		Name:          name,
		Type:          typedesc.Builtin(typedesc.SimpleString),
		DeclaringType: t,
	}
}

// ResolveMappingKey implements Resolver.
func (Default) ResolveMappingKey(_ typedesc.Property, subtype typedesc.Type) string {
	if tag, ok := typedesc.Find[typedesc.DiscriminatorValueTag](subtype.Tags()); ok {
		if value := strings.TrimSpace(tag.Value); value != "" {
			return value
		}
	}
	return subtype.Name()
}
