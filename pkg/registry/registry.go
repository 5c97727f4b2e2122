package registry

import (
	"fmt"
	"log/slog"

	"github.com/goliatone/go-schemagen/pkg/discriminator"
	"github.com/goliatone/go-schemagen/pkg/naming"
	"github.com/goliatone/go-schemagen/pkg/schema"
	"github.com/goliatone/go-schemagen/pkg/schemaid"
	"github.com/goliatone/go-schemagen/pkg/typedesc"
)

const zeroUUID = "00000000-0000-0000-0000-000000000000"

// Registry builds schema nodes and owns the reference table for one pass.
type Registry struct {
	names          naming.Resolver
	ids            schemaid.Resolver
	discriminators discriminator.Resolver
	inheritance    bool
	descriptions   DescriptionSource
	logger         *slog.Logger

	references map[string]*schema.Schema
	building   map[string]struct{}
	// journal records keys in insertion order, placeholders included.
	journal []string
}

// New constructs a Registry. Without options it uses the Default naming and
// id resolvers, flattens inheritance and has no discriminator support.
func New(options ...Option) *Registry {
	r := &Registry{
		names:      naming.Default{},
		ids:        schemaid.Default{},
		logger:     discardLogger(),
		references: make(map[string]*schema.Schema),
		building:   make(map[string]struct{}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Key returns the reference key for t without resolving it.
func (r *Registry) Key(t typedesc.Type) string {
	return r.ids.Resolve(t)
}

// FindOrAddReference is an alias for Resolve.
func (r *Registry) FindOrAddReference(t typedesc.Type) (*schema.Schema, error) {
	return r.Resolve(t)
}

// Resolve returns the schema for t. Object types are registered under their
// key and returned as a Reference; simple, enum, array and map types are
// returned inline. Unnameable types yield an empty primitive.
func (r *Registry) Resolve(t typedesc.Type) (*schema.Schema, error) {
	if typedesc.IsUnknown(t) {
		return schema.Empty(), nil
	}

	key := r.ids.Resolve(t)
	if !schemaid.Valid(key) {
		return nil, fmt.Errorf("%w: %q for %s", ErrInvalidKey, key, typedesc.Identity(t))
	}
	if _, ok := r.references[key]; ok {
		return schema.Reference(key), nil
	}

	if kind, ok := t.Simple(); ok {
		return primitive(kind), nil
	}
	if members, ok := t.EnumMembers(); ok {
		return schema.Enum(members, false), nil
	}
	if inner, ok := t.NullableOf(); ok {
		if members, isEnum := inner.EnumMembers(); isEnum {
			return schema.Enum(members, true), nil
		}
		return r.Resolve(inner)
	}
	if _, value, ok := t.DictionaryOf(); ok {
		additional, err := r.Resolve(value)
		if err != nil {
			return nil, err
		}
		return schema.Map(additional), nil
	}
	if elem, ok := t.EnumerableOf(); ok {
		items, err := r.Resolve(elem)
		if err != nil {
			return nil, err
		}
		return schema.Array(items), nil
	}
	return r.buildObject(t, key)
}

func (r *Registry) buildObject(t typedesc.Type, key string) (*schema.Schema, error) {
	node := schema.Object()
	mark := len(r.journal)
	r.references[key] = node
	r.building[key] = struct{}{}
	r.journal = append(r.journal, key)
	r.logger.Debug("registry: placeholder inserted", "key", key)

	if err := r.populate(t, node); err != nil {
		removed := r.rollback(mark)
		r.logger.Debug("registry: construction failed", "key", key, "removed", removed, "error", err)
		return nil, &SchemaConstructionError{Key: key, Err: err}
	}

	delete(r.building, key)
	r.references[key] = node
	r.logger.Debug("registry: schema completed", "key", key, "schema", node.DebugString())
	return schema.Reference(key), nil
}

// rollback removes every key inserted since mark and returns how many were
// dropped.
func (r *Registry) rollback(mark int) int {
	dropped := r.journal[mark:]
	for _, key := range dropped {
		delete(r.references, key)
		delete(r.building, key)
	}
	count := len(dropped)
	r.journal = r.journal[:mark]
	return count
}

func (r *Registry) populate(t typedesc.Type, node *schema.Schema) error {
	tags := t.Tags()
	names := r.names
	if tag, ok := typedesc.Find[typedesc.NamingTag](tags); ok {
		names = naming.ForStrategy(tag.Strategy, r.names)
	}
	node.Description = r.typeDescription(t, tags)

	var candidates []typedesc.Property
	if r.inheritance {
		candidates = t.DeclaredProperties()
		if base := t.BaseType(); base != nil && !typedesc.IsUnknown(base) {
			ref, err := r.Resolve(base)
			if err != nil {
				return err
			}
			node.AllOf = append(node.AllOf, ref)
		}
		if err := r.addSubtypes(t, tags, node, names); err != nil {
			return err
		}
	} else {
		candidates = t.Properties()
	}

	declaring := make(map[string]typedesc.Type, len(candidates))
	for _, prop := range candidates {
		inner, err := r.Resolve(prop.Type)
		if err != nil {
			return err
		}
		name := names.Resolve(prop)
		if r.descriptions != nil {
			if text, ok := r.descriptions.Description(prop.FullName()); ok {
				inner.Description = text
			}
		}
		if typedesc.Has[typedesc.IgnoreTag](prop.Tags) {
			continue
		}
		if typedesc.Has[typedesc.RequiredTag](prop.Tags) {
			node.AddRequired(name)
		}

		previous, seen := declaring[name]
		switch {
		case !seen:
			node.Properties.Set(name, inner)
			declaring[name] = prop.DeclaringType
		case overrides(prop.DeclaringType, previous):
			node.Properties.Set(name, inner)
			declaring[name] = prop.DeclaringType
		case overrides(previous, prop.DeclaringType):
			// hidden by the more derived declaration already recorded
		default:
			return &DuplicatePropertyError{
				Name:        name,
				Type:        typedesc.Identity(t),
				Existing:    typedesc.Identity(previous),
				Conflicting: typedesc.Identity(prop.DeclaringType),
			}
		}
	}
	return nil
}

func (r *Registry) addSubtypes(t typedesc.Type, tags typedesc.TagSet, node *schema.Schema, names naming.Resolver) error {
	if r.discriminators == nil {
		return nil
	}
	subtypes, ok := typedesc.Find[typedesc.SubtypesTag](tags)
	if !ok || len(subtypes.Types) == 0 {
		return nil
	}

	prop := r.discriminators.ResolveProperty(t)
	disc := &schema.Discriminator{
		PropertyName: names.Resolve(prop),
		Mapping:      make(map[string]string, len(subtypes.Types)),
	}
	for _, subtype := range subtypes.Types {
		value := r.discriminators.ResolveMappingKey(prop, subtype)
		key := r.Key(subtype)
		if existing, ok := disc.Mapping[value]; ok {
			if existing == key {
				continue
			}
			return &DuplicateMappingError{
				Value:       value,
				Type:        typedesc.Identity(t),
				Existing:    existing,
				Conflicting: key,
			}
		}
		ref, err := r.Resolve(subtype)
		if err != nil {
			return err
		}
		node.OneOf = append(node.OneOf, ref)
		disc.Mapping[value] = key
	}
	node.Discriminator = disc
	return nil
}

func (r *Registry) typeDescription(t typedesc.Type, tags typedesc.TagSet) string {
	if r.descriptions != nil {
		if text, ok := r.descriptions.Description(typedesc.QualifiedName(t)); ok {
			return text
		}
	}
	if tag, ok := typedesc.Find[typedesc.DescriptionTag](tags); ok {
		return tag.Text
	}
	return ""
}

// overrides reports whether a declaration in newer supersedes one in older:
// newer derives from older, or older is an interface newer implements.
func overrides(newer, older typedesc.Type) bool {
	return typedesc.IsSubclassOf(newer, older) || typedesc.Implements(newer, older)
}

func primitive(kind typedesc.SimpleKind) *schema.Schema {
	switch kind {
	case typedesc.SimpleChar:
		minLength, maxLength := 1, 1
		node := schema.Primitive("string", "")
		node.MinLength = &minLength
		node.MaxLength = &maxLength
		return node
	case typedesc.SimpleBoolean:
		return schema.Primitive("boolean", "")
	case typedesc.SimpleByte, typedesc.SimpleInt16, typedesc.SimpleInt32:
		return schema.Primitive("integer", "int32")
	case typedesc.SimpleInt64:
		return schema.Primitive("integer", "int64")
	case typedesc.SimpleFloat:
		return schema.Primitive("number", "float")
	case typedesc.SimpleDouble, typedesc.SimpleDecimal:
		return schema.Primitive("number", "double")
	case typedesc.SimpleDateTime:
		return schema.Primitive("string", "date-time")
	case typedesc.SimpleDate:
		return schema.Primitive("string", "date")
	case typedesc.SimpleTimeSpan:
		return schema.Primitive("string", "duration")
	case typedesc.SimpleUUID:
		node := schema.Primitive("string", "uuid")
		node.Example = zeroUUID
		return node
	case typedesc.SimpleURI:
		return schema.Primitive("string", "uri")
	case typedesc.SimpleBinary:
		return schema.Primitive("string", "binary")
	default:
		return schema.Primitive("string", "")
	}
}
