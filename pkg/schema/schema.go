package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Kind tags the variant held by a Schema.
type Kind string

const (
	KindPrimitive Kind = "primitive"
	KindEnum      Kind = "enum"
	KindArray     Kind = "array"
	KindMap       Kind = "map"
	KindObject    Kind = "object"
	KindReference Kind = "reference"
)

// Schema is one node of the output description graph. Only the fields that
// belong to Kind are meaningful; Description applies to every kind.
type Schema struct {
	Kind        Kind
	Description string

	// Primitive. An empty Type is the "any" schema produced for unnameable
	// types.
	Type      string
	Format    string
	MinLength *int
	MaxLength *int
	Example   any

	// Enum.
	Enum     []string
	Nullable bool

	// Array and map.
	Items                *Schema
	AdditionalProperties *Schema

	// Object.
	Properties    *Properties
	Required      []string
	AllOf         []*Schema
	OneOf         []*Schema
	Discriminator *Discriminator

	// Reference.
	Ref string
}

// Discriminator describes how a polymorphic object selects its subtype.
type Discriminator struct {
	PropertyName string
	// Mapping maps discriminator values to reference keys.
	Mapping map[string]string
}

// MappingValues returns the mapping keys in sorted order.
func (d *Discriminator) MappingValues() []string {
	if d == nil || len(d.Mapping) == 0 {
		return nil
	}
	values := make([]string, 0, len(d.Mapping))
	for value := range d.Mapping {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}

// Empty returns the untyped primitive used for unnameable types.
func Empty() *Schema {
	return &Schema{Kind: KindPrimitive}
}

// Primitive returns a primitive schema.
func Primitive(baseType, format string) *Schema {
	return &Schema{Kind: KindPrimitive, Type: baseType, Format: format}
}

// Enum returns an enum schema over ordered member names.
func Enum(values []string, nullable bool) *Schema {
	return &Schema{Kind: KindEnum, Enum: append([]string(nil), values...), Nullable: nullable}
}

// Array returns an array schema.
func Array(items *Schema) *Schema {
	return &Schema{Kind: KindArray, Items: items}
}

// Map returns a map schema whose values follow additional.
func Map(additional *Schema) *Schema {
	return &Schema{Kind: KindMap, AdditionalProperties: additional}
}

// Object returns an object schema with no members.
func Object() *Schema {
	return &Schema{Kind: KindObject, Properties: NewProperties()}
}

// Reference returns a pointer to a registered schema.
func Reference(key string) *Schema {
	return &Schema{Kind: KindReference, Ref: key}
}

// IsReference reports whether s points at a registered schema.
func (s *Schema) IsReference() bool {
	return s != nil && s.Kind == KindReference
}

// AddRequired records name as required, keeping first-seen order.
func (s *Schema) AddRequired(name string) {
	for _, existing := range s.Required {
		if existing == name {
			return
		}
	}
	s.Required = append(s.Required, name)
}

// IsRequired reports whether name is required.
func (s *Schema) IsRequired(name string) bool {
	for _, existing := range s.Required {
		if existing == name {
			return true
		}
	}
	return false
}

// Clone creates a deep copy of the schema tree to avoid accidental mutation.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	cloned := *s
	if s.MinLength != nil {
		v := *s.MinLength
		cloned.MinLength = &v
	}
	if s.MaxLength != nil {
		v := *s.MaxLength
		cloned.MaxLength = &v
	}
	if s.Enum != nil {
		cloned.Enum = append([]string(nil), s.Enum...)
	}
	cloned.Items = s.Items.Clone()
	cloned.AdditionalProperties = s.AdditionalProperties.Clone()
	cloned.Properties = s.Properties.Clone()
	if s.Required != nil {
		cloned.Required = append([]string(nil), s.Required...)
	}
	cloned.AllOf = cloneList(s.AllOf)
	cloned.OneOf = cloneList(s.OneOf)
	if s.Discriminator != nil {
		disc := Discriminator{PropertyName: s.Discriminator.PropertyName}
		if s.Discriminator.Mapping != nil {
			disc.Mapping = make(map[string]string, len(s.Discriminator.Mapping))
			for k, v := range s.Discriminator.Mapping {
				disc.Mapping[k] = v
			}
		}
		cloned.Discriminator = &disc
	}
	return &cloned
}

func cloneList(list []*Schema) []*Schema {
	if list == nil {
		return nil
	}
	out := make([]*Schema, len(list))
	for i, item := range list {
		out[i] = item.Clone()
	}
	return out
}

// DebugString renders a short summary for logging.
func (s *Schema) DebugString() string {
	if s == nil {
		return "<nil>"
	}
	parts := []string{"kind=" + string(s.Kind)}
	switch s.Kind {
	case KindReference:
		parts = append(parts, "ref="+s.Ref)
	case KindPrimitive:
		if s.Type != "" {
			parts = append(parts, "type="+s.Type)
		}
		if s.Format != "" {
			parts = append(parts, "format="+s.Format)
		}
	case KindEnum:
		parts = append(parts, fmt.Sprintf("values=%d", len(s.Enum)))
		if s.Nullable {
			parts = append(parts, "nullable")
		}
	case KindObject:
		parts = append(parts, fmt.Sprintf("properties=%d", s.Properties.Len()))
		if len(s.Required) > 0 {
			parts = append(parts, fmt.Sprintf("required=%d", len(s.Required)))
		}
		if len(s.AllOf) > 0 {
			parts = append(parts, fmt.Sprintf("allOf=%d", len(s.AllOf)))
		}
		if len(s.OneOf) > 0 {
			parts = append(parts, fmt.Sprintf("oneOf=%d", len(s.OneOf)))
		}
	}
	return strings.Join(parts, ",")
}
