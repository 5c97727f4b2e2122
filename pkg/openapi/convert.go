package openapi

import (
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-schemagen/pkg/schema"
)

// ComponentsPrefix is the JSON pointer prefix of component schemas.
const ComponentsPrefix = "#/components/schemas/"

// RefPath returns the "$ref" value for a reference key.
func RefPath(key string) string {
	return ComponentsPrefix + key
}

// Components converts a reference table into component schemas. References
// between entries are linked to the converted values so the result can be
// validated without a loader.
func Components(refs map[string]*schema.Schema) openapi3.Schemas {
	out := make(openapi3.Schemas, len(refs))
	values := make(map[string]*openapi3.Schema, len(refs))
	for key := range refs {
		values[key] = &openapi3.Schema{}
	}
	for key, node := range refs {
		converted := convert(node, values)
		*values[key] = *converted
		out[key] = &openapi3.SchemaRef{Value: values[key]}
	}
	return out
}

// SchemaRef converts a single node. components links "$ref" pointers to
// their targets and may be nil.
func SchemaRef(node *schema.Schema, components openapi3.Schemas) *openapi3.SchemaRef {
	values := make(map[string]*openapi3.Schema, len(components))
	for key, ref := range components {
		if ref != nil {
			values[key] = ref.Value
		}
	}
	return toRef(node, values)
}

func toRef(node *schema.Schema, values map[string]*openapi3.Schema) *openapi3.SchemaRef {
	if node == nil {
		return &openapi3.SchemaRef{Value: &openapi3.Schema{}}
	}
	if node.IsReference() {
		ref := openapi3.NewSchemaRef(RefPath(node.Ref), values[node.Ref])
		if node.Description == "" {
			return ref
		}
		// "$ref" siblings are ignored by OpenAPI 3.0 tooling.
		return &openapi3.SchemaRef{Value: &openapi3.Schema{
			Description: node.Description,
			AllOf:       openapi3.SchemaRefs{ref},
		}}
	}
	return &openapi3.SchemaRef{Value: convert(node, values)}
}

func convert(node *schema.Schema, values map[string]*openapi3.Schema) *openapi3.Schema {
	out := &openapi3.Schema{Description: node.Description}

	switch node.Kind {
	case schema.KindPrimitive:
		if node.Type != "" {
			out.Type = &openapi3.Types{node.Type}
		}
		out.Format = node.Format
		if node.MinLength != nil && *node.MinLength > 0 {
			out.MinLength = uint64(*node.MinLength)
		}
		if node.MaxLength != nil && *node.MaxLength >= 0 {
			maxLength := uint64(*node.MaxLength)
			out.MaxLength = &maxLength
		}
		out.Example = node.Example
	case schema.KindEnum:
		out.Type = &openapi3.Types{openapi3.TypeString}
		out.Nullable = node.Nullable
		for _, member := range node.Enum {
			out.Enum = append(out.Enum, member)
		}
	case schema.KindArray:
		out.Type = &openapi3.Types{openapi3.TypeArray}
		out.Items = toRef(node.Items, values)
	case schema.KindMap:
		out.Type = &openapi3.Types{openapi3.TypeObject}
		out.AdditionalProperties = openapi3.AdditionalProperties{Schema: toRef(node.AdditionalProperties, values)}
	case schema.KindObject:
		out.Type = &openapi3.Types{openapi3.TypeObject}
		if node.Properties != nil && node.Properties.Len() > 0 {
			out.Properties = make(openapi3.Schemas, node.Properties.Len())
			node.Properties.Each(func(name string, value *schema.Schema) {
				out.Properties[name] = toRef(value, values)
			})
		}
		if len(node.Required) > 0 {
			out.Required = append([]string(nil), node.Required...)
		}
		for _, parent := range node.AllOf {
			out.AllOf = append(out.AllOf, toRef(parent, values))
		}
		for _, option := range node.OneOf {
			out.OneOf = append(out.OneOf, toRef(option, values))
		}
		if node.Discriminator != nil {
			out.Discriminator = discriminator(node.Discriminator)
		}
	}
	return out
}

func discriminator(in *schema.Discriminator) *openapi3.Discriminator {
	mapping := make(map[string]string, len(in.Mapping))
	for _, value := range in.MappingValues() {
		mapping[value] = RefPath(in.Mapping[value])
	}
	return &openapi3.Discriminator{
		PropertyName: in.PropertyName,
		Mapping:      mapping,
	}
}

// SortedKeys returns the component names in sorted order.
func SortedKeys(components openapi3.Schemas) []string {
	keys := make([]string, 0, len(components))
	for key := range components {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
