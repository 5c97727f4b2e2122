// Package catalog builds typedesc descriptors from declarative YAML or JSON
// type catalogs so schemas can be generated without Go source types.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-schemagen/internal/typeexpr"
	"github.com/goliatone/go-schemagen/pkg/descriptions"
	"github.com/goliatone/go-schemagen/pkg/source"
	"github.com/goliatone/go-schemagen/pkg/typedesc"
)

var (
	// ErrUnknownType is returned when an expression names a type that is
	// neither builtin nor declared in the catalog.
	ErrUnknownType = errors.New("catalog: unknown type")
	// ErrInvalidCatalog wraps structural problems in a catalog document.
	ErrInvalidCatalog = errors.New("catalog: invalid catalog")
)

// Catalog is a set of named type descriptors.
type Catalog struct {
	namespace    string
	types        map[string]*typedesc.Descriptor
	order        []string
	descriptions *descriptions.Set
}

// Load fetches src through loader and decodes it.
func Load(ctx context.Context, loader source.Loader, src source.Source) (*Catalog, error) {
	if loader == nil {
		return nil, errors.New("catalog: loader is required")
	}
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return Decode(doc)
}

// Decode builds a catalog from a YAML or JSON document.
func Decode(doc source.Document) (*Catalog, error) {
	var raw document
	if err := doc.Decode(&raw); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return build(raw)
}

// Namespace returns the namespace shared by every declared type.
func (c *Catalog) Namespace() string {
	return c.namespace
}

// Names returns declared type names in document order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Roots returns the declared types that can be resolved directly, i.e. every
// type except generic definitions.
func (c *Catalog) Roots() []string {
	roots := make([]string, 0, len(c.order))
	for _, name := range c.order {
		if !c.types[name].IsGenericDefinition() {
			roots = append(roots, name)
		}
	}
	return roots
}

// Descriptions returns the property descriptions declared in the catalog.
func (c *Catalog) Descriptions() *descriptions.Set {
	return c.descriptions
}

// Lookup resolves a type expression such as "Pet", "list<Pet>" or
// "Box<int32>" against the catalog.
func (c *Catalog) Lookup(expr string) (typedesc.Type, error) {
	parsed, err := typeexpr.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return c.resolve(parsed, nil)
}

func build(raw document) (*Catalog, error) {
	c := &Catalog{
		namespace:    strings.TrimSpace(raw.Namespace),
		types:        make(map[string]*typedesc.Descriptor, len(raw.Types)),
		descriptions: descriptions.New(),
	}

	specs := make(map[string]typeSpec, len(raw.Types))
	for i, spec := range raw.Types {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: type %d has no name", ErrInvalidCatalog, i)
		}
		if _, dup := specs[name]; dup {
			return nil, fmt.Errorf("%w: type %q declared twice", ErrInvalidCatalog, name)
		}
		spec.Name = name
		specs[name] = spec
		c.order = append(c.order, name)
	}

	// Outer types must exist before their nested types are declared.
	declare := append([]string(nil), c.order...)
	sort.SliceStable(declare, func(i, j int) bool {
		return strings.Count(declare[i], "+") < strings.Count(declare[j], "+")
	})
	for _, name := range declare {
		desc, err := c.declare(specs[name])
		if err != nil {
			return nil, err
		}
		c.types[name] = desc
	}

	for _, name := range c.order {
		if err := c.define(specs[name], c.types[name]); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) declare(spec typeSpec) (*typedesc.Descriptor, error) {
	kind := strings.ToLower(strings.TrimSpace(spec.Kind))
	if kind == "" {
		kind = kindObject
	}

	outerName, inner, nested := cutLast(spec.Name, "+")
	if nested {
		outer, ok := c.types[outerName]
		if !ok {
			return nil, fmt.Errorf("%w: nested type %q: %w %q", ErrInvalidCatalog, spec.Name, ErrUnknownType, outerName)
		}
		if kind != kindObject || len(spec.TypeParameters) > 0 {
			return nil, fmt.Errorf("%w: nested type %q must be a non-generic object", ErrInvalidCatalog, spec.Name)
		}
		return outer.Nested(inner), nil
	}

	switch kind {
	case kindObject:
		if len(spec.TypeParameters) > 0 {
			return typedesc.NewGeneric(c.namespace, spec.Name, spec.TypeParameters...), nil
		}
		return typedesc.NewObject(c.namespace, spec.Name), nil
	case kindInterface:
		return typedesc.NewInterface(c.namespace, spec.Name), nil
	case kindEnum:
		if len(spec.Members) == 0 {
			return nil, fmt.Errorf("%w: enum %q has no members", ErrInvalidCatalog, spec.Name)
		}
		return typedesc.NewEnum(c.namespace, spec.Name, spec.Members...), nil
	default:
		return nil, fmt.Errorf("%w: type %q has unsupported kind %q", ErrInvalidCatalog, spec.Name, spec.Kind)
	}
}

func (c *Catalog) define(spec typeSpec, desc *typedesc.Descriptor) error {
	scope := desc
	if !desc.IsGenericDefinition() {
		scope = nil
	}
	lookup := func(expr string) (typedesc.Type, error) {
		parsed, err := typeexpr.Parse(expr)
		if err != nil {
			return nil, err
		}
		return c.resolve(parsed, scope)
	}
	fail := func(what string, err error) error {
		return fmt.Errorf("catalog: type %q %s: %w", spec.Name, what, err)
	}

	if base := strings.TrimSpace(spec.Base); base != "" {
		t, err := lookup(base)
		if err != nil {
			return fail("base", err)
		}
		desc.SetBase(t)
	}
	for _, name := range spec.Interfaces {
		t, err := lookup(name)
		if err != nil {
			return fail("interface", err)
		}
		if !t.IsInterface() {
			return fail("interface", fmt.Errorf("%w: %q is not an interface", ErrInvalidCatalog, name))
		}
		desc.AddInterfaces(t)
	}

	var tags []typedesc.Tag
	switch typedesc.NamingStrategy(strings.TrimSpace(spec.Naming)) {
	case typedesc.NamingDefault:
	case typedesc.NamingCamelCase:
		tags = append(tags, typedesc.NamingTag{Strategy: typedesc.NamingCamelCase})
	default:
		return fail("naming", fmt.Errorf("%w: unsupported naming %q", ErrInvalidCatalog, spec.Naming))
	}
	if spec.Discriminator != "" {
		tags = append(tags, typedesc.DiscriminatorTag{Property: spec.Discriminator})
	}
	if spec.DiscriminatorValue != "" {
		tags = append(tags, typedesc.DiscriminatorValueTag{Value: spec.DiscriminatorValue})
	}
	if text := descriptions.Sanitize(spec.Description); text != "" {
		tags = append(tags, typedesc.DescriptionTag{Text: text})
	}
	if len(spec.Subtypes) > 0 {
		subtypes := make([]typedesc.Type, 0, len(spec.Subtypes))
		for _, name := range spec.Subtypes {
			t, err := lookup(name)
			if err != nil {
				return fail("subtype", err)
			}
			subtypes = append(subtypes, t)
		}
		tags = append(tags, typedesc.SubtypesTag{Types: subtypes})
	}
	desc.AddTags(tags...)

	for _, prop := range spec.Properties {
		name := strings.TrimSpace(prop.Name)
		if name == "" {
			return fail("property", fmt.Errorf("%w: property without a name", ErrInvalidCatalog))
		}
		t, err := lookup(prop.Type)
		if err != nil {
			return fail(fmt.Sprintf("property %q", name), err)
		}

		var propTags []typedesc.Tag
		if prop.JSONName != "" {
			propTags = append(propTags, typedesc.NameTag{Name: prop.JSONName})
		}
		if prop.Required {
			propTags = append(propTags, typedesc.RequiredTag{})
		}
		if prop.Ignore {
			propTags = append(propTags, typedesc.IgnoreTag{})
		}
		desc.AddProperty(name, t, propTags...)

		if prop.Description != "" {
			c.descriptions.Add(typedesc.QualifiedName(desc)+"."+name, prop.Description)
		}
	}
	return nil
}

func (c *Catalog) resolve(expr *typeexpr.Expr, scope *typedesc.Descriptor) (typedesc.Type, error) {
	switch expr.Name {
	case typeexpr.List:
		elem, err := c.resolve(expr.Args[0], scope)
		if err != nil {
			return nil, err
		}
		return typedesc.ListOf(elem), nil
	case typeexpr.Map:
		key, err := c.resolve(expr.Args[0], scope)
		if err != nil {
			return nil, err
		}
		value, err := c.resolve(expr.Args[1], scope)
		if err != nil {
			return nil, err
		}
		return typedesc.MapOf(key, value), nil
	case typeexpr.Nullable:
		inner, err := c.resolve(expr.Args[0], scope)
		if err != nil {
			return nil, err
		}
		return typedesc.NullableOf(inner), nil
	}

	if len(expr.Args) == 0 {
		if scope != nil {
			if param := scope.Param(expr.Name); param != nil {
				return param, nil
			}
		}
		if kind, ok := builtin(expr.Name); ok {
			return typedesc.Builtin(kind), nil
		}
	}

	desc, ok := c.declared(expr.Name)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownType, expr.Name)
	}
	if len(expr.Args) == 0 {
		if desc.IsGenericDefinition() {
			return nil, fmt.Errorf("%w: generic type %q used without type arguments", ErrInvalidCatalog, expr.Name)
		}
		return desc, nil
	}

	args := make([]typedesc.Type, len(expr.Args))
	for i, arg := range expr.Args {
		t, err := c.resolve(arg, scope)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	inst, err := desc.Instantiate(args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	return inst, nil
}

func (c *Catalog) declared(name string) (*typedesc.Descriptor, bool) {
	if desc, ok := c.types[name]; ok {
		return desc, true
	}
	if c.namespace != "" {
		if short, ok := strings.CutPrefix(name, c.namespace+"."); ok {
			desc, ok := c.types[short]
			return desc, ok
		}
	}
	return nil, false
}

var builtinAliases = map[string]typedesc.SimpleKind{
	"bool":     typedesc.SimpleBoolean,
	"int":      typedesc.SimpleInt32,
	"long":     typedesc.SimpleInt64,
	"datetime": typedesc.SimpleDateTime,
	"duration": typedesc.SimpleTimeSpan,
	"guid":     typedesc.SimpleUUID,
	"bytes":    typedesc.SimpleBinary,
}

func builtin(name string) (typedesc.SimpleKind, bool) {
	for _, kind := range typedesc.SimpleKinds() {
		if string(kind) == name {
			return kind, true
		}
	}
	kind, ok := builtinAliases[name]
	return kind, ok
}

func cutLast(s, sep string) (before, after string, found bool) {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}
