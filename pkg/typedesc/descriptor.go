package typedesc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

type descriptorKind int

const (
	kindObject descriptorKind = iota
	kindInterface
	kindEnum
	kindSimple
	kindList
	kindMap
	kindNullable
	kindParameter
)

// Descriptor is an in-memory Type. Object, interface and generic definitions
// are mutable while being assembled; once they are handed to a registry they
// must not change.
type Descriptor struct {
	kind      descriptorKind
	namespace string
	name      string
	outer     *Descriptor

	simple  SimpleKind
	members []string

	// elem is the list element, map value or nullable inner type.
	elem Type
	key  Type

	base       Type
	interfaces []Type
	props      []Property
	tags       TagSet

	// Generic definitions list their parameters; instances point back to the
	// definition and carry positional arguments.
	params    []*Descriptor
	owner     *Descriptor
	index     int
	def       *Descriptor
	args      []Type
	instMu    sync.Mutex
	instances map[string]*Descriptor
	once      sync.Once
}

var _ Type = (*Descriptor)(nil)

// NewObject constructs an object (class-like) type.
func NewObject(namespace, name string) *Descriptor {
	return &Descriptor{kind: kindObject, namespace: namespace, name: name}
}

// NewInterface constructs an interface type.
func NewInterface(namespace, name string) *Descriptor {
	return &Descriptor{kind: kindInterface, namespace: namespace, name: name}
}

// NewEnum constructs an enum with ordered member names.
func NewEnum(namespace, name string, members ...string) *Descriptor {
	return &Descriptor{
		kind:      kindEnum,
		namespace: namespace,
		name:      name,
		members:   append([]string(nil), members...),
	}
}

// NewSimple constructs a named simple type, e.g. a domain-specific string.
func NewSimple(namespace, name string, kind SimpleKind) *Descriptor {
	return &Descriptor{kind: kindSimple, namespace: namespace, name: name, simple: kind}
}

// NewGeneric constructs a generic object definition with named type
// parameters. Use Param to reference a parameter inside property types and
// Instantiate to bind it.
func NewGeneric(namespace, name string, params ...string) *Descriptor {
	d := NewObject(namespace, name)
	for i, param := range params {
		d.params = append(d.params, &Descriptor{kind: kindParameter, name: param, owner: d, index: i})
	}
	return d
}

var (
	builtinOnce sync.Once
	builtins    map[SimpleKind]*Descriptor
)

// Builtin returns the shared descriptor for a builtin simple kind.
func Builtin(kind SimpleKind) *Descriptor {
	builtinOnce.Do(func() {
		builtins = make(map[SimpleKind]*Descriptor)
		for _, k := range SimpleKinds() {
			builtins[k] = NewSimple("", string(k), k)
		}
	})
	if d, ok := builtins[kind]; ok {
		return d
	}
	return NewSimple("", string(kind), kind)
}

// ListOf constructs an enumerable type over elem.
func ListOf(elem Type) *Descriptor {
	return &Descriptor{kind: kindList, name: "List", elem: elem}
}

// MapOf constructs a dictionary type.
func MapOf(key, value Type) *Descriptor {
	return &Descriptor{kind: kindMap, name: "Map", key: key, elem: value}
}

// NullableOf constructs a nullable wrapper over inner.
func NullableOf(inner Type) *Descriptor {
	return &Descriptor{kind: kindNullable, name: "Nullable", elem: inner}
}

// Nested constructs an object type declared inside d.
func (d *Descriptor) Nested(name string) *Descriptor {
	child := NewObject(d.namespace, name)
	child.outer = d
	return child
}

// AddProperty declares a property on d. It returns d for chaining.
func (d *Descriptor) AddProperty(name string, t Type, tags ...Tag) *Descriptor {
	d.props = append(d.props, Property{
		Name:          name,
		Type:          t,
		DeclaringType: d,
		Tags:          TagSet(nil).With(tags...),
	})
	return d
}

// SetBase sets the base type.
func (d *Descriptor) SetBase(base Type) *Descriptor {
	d.base = base
	return d
}

// AddInterfaces records directly implemented interfaces.
func (d *Descriptor) AddInterfaces(ifaces ...Type) *Descriptor {
	d.interfaces = append(d.interfaces, ifaces...)
	return d
}

// AddTags attaches type-level tags.
func (d *Descriptor) AddTags(tags ...Tag) *Descriptor {
	d.tags = d.tags.With(tags...)
	return d
}

// Param returns the named type parameter of a generic definition.
func (d *Descriptor) Param(name string) Type {
	for _, p := range d.params {
		if p.name == name {
			return p
		}
	}
	return nil
}

// TypeParameters lists the parameter names of a generic definition.
func (d *Descriptor) TypeParameters() []string {
	names := make([]string, len(d.params))
	for i, p := range d.params {
		names[i] = p.name
	}
	return names
}

// IsGenericDefinition reports whether d declares type parameters.
func (d *Descriptor) IsGenericDefinition() bool {
	return len(d.params) > 0 && d.def == nil
}

// Instantiate binds the type parameters of a generic definition. Repeated
// calls with the same arguments return the same descriptor.
func (d *Descriptor) Instantiate(args ...Type) (*Descriptor, error) {
	if !d.IsGenericDefinition() {
		return nil, fmt.Errorf("%w: %s", ErrNotGeneric, d.String())
	}
	if len(args) != len(d.params) {
		return nil, fmt.Errorf("typedesc: %s expects %d type arguments, got %d", d.FullName(), len(d.params), len(args))
	}
	for i, arg := range args {
		if arg == nil {
			return nil, fmt.Errorf("typedesc: %s argument %d is nil", d.FullName(), i)
		}
	}

	cacheKey := joinIdentities(args)
	d.instMu.Lock()
	defer d.instMu.Unlock()
	if d.instances == nil {
		d.instances = make(map[string]*Descriptor)
	}
	if inst, ok := d.instances[cacheKey]; ok {
		return inst, nil
	}
	inst := &Descriptor{
		kind:      d.kind,
		namespace: d.namespace,
		name:      d.name,
		outer:     d.outer,
		def:       d,
		args:      append([]Type(nil), args...),
	}
	d.instances[cacheKey] = inst
	return inst, nil
}

// MustInstantiate panics when Instantiate fails. Useful for fixtures.
func (d *Descriptor) MustInstantiate(args ...Type) *Descriptor {
	inst, err := d.Instantiate(args...)
	if err != nil {
		panic(err)
	}
	return inst
}

// materialize substitutes the definition's members for an instance.
func (d *Descriptor) materialize() {
	if d.def == nil {
		return
	}
	d.once.Do(func() {
		def := d.def
		d.props = make([]Property, 0, len(def.props))
		for _, prop := range def.props {
			d.props = append(d.props, Property{
				Name:          prop.Name,
				Type:          d.substitute(prop.Type),
				DeclaringType: d,
				Tags:          prop.Tags,
			})
		}
		d.base = d.substitute(def.base)
		d.interfaces = make([]Type, 0, len(def.interfaces))
		for _, iface := range def.interfaces {
			d.interfaces = append(d.interfaces, d.substitute(iface))
		}
		d.tags = def.tags
	})
}

func (d *Descriptor) substitute(t Type) Type {
	desc, ok := t.(*Descriptor)
	if !ok || desc == nil {
		return t
	}
	switch {
	case desc.kind == kindParameter && desc.owner == d.def:
		return d.args[desc.index]
	case desc.kind == kindList:
		return ListOf(d.substitute(desc.elem))
	case desc.kind == kindMap:
		return MapOf(d.substitute(desc.key), d.substitute(desc.elem))
	case desc.kind == kindNullable:
		return NullableOf(d.substitute(desc.elem))
	case desc.def != nil:
		args := make([]Type, len(desc.args))
		changed := false
		for i, arg := range desc.args {
			args[i] = d.substitute(arg)
			changed = changed || args[i] != arg
		}
		if !changed {
			return desc
		}
		inst, err := desc.def.Instantiate(args...)
		if err != nil {
			return desc
		}
		return inst
	default:
		return desc
	}
}

// FullName implements Type.
func (d *Descriptor) FullName() string {
	switch d.kind {
	case kindParameter:
		return ""
	case kindList:
		return compositeName("List", d.elem)
	case kindMap:
		return compositeName("Map", d.key, d.elem)
	case kindNullable:
		return compositeName("Nullable", d.elem)
	}

	var base string
	switch {
	case d.outer != nil:
		base = d.outer.FullName() + "+" + d.name
	case d.namespace != "":
		base = d.namespace + "." + d.name
	default:
		base = d.name
	}
	if d.def != nil {
		return compositeName(base, d.args...)
	}
	if len(d.params) > 0 {
		return base + "`" + strconv.Itoa(len(d.params))
	}
	return base
}

// compositeName renders "Name`N[Arg1,Arg2]". It returns "" when any argument
// is unnameable, so open instantiations classify as unknown.
func compositeName(name string, args ...Type) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		id := Identity(arg)
		if id == "" {
			return ""
		}
		parts[i] = id
	}
	return name + "`" + strconv.Itoa(len(args)) + "[" + strings.Join(parts, ",") + "]"
}

func joinIdentities(args []Type) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		if id := Identity(arg); id != "" {
			parts[i] = id
			continue
		}
		parts[i] = fmt.Sprintf("%p", arg)
	}
	return strings.Join(parts, ",")
}

// Name implements Type.
func (d *Descriptor) Name() string { return d.name }

// Namespace implements Type.
func (d *Descriptor) Namespace() string {
	if d.outer != nil {
		return QualifiedName(d.outer)
	}
	return d.namespace
}

// Simple implements Type.
func (d *Descriptor) Simple() (SimpleKind, bool) {
	return d.simple, d.kind == kindSimple
}

// EnumMembers implements Type.
func (d *Descriptor) EnumMembers() ([]string, bool) {
	if d.kind != kindEnum {
		return nil, false
	}
	return append([]string(nil), d.members...), true
}

// NullableOf implements Type.
func (d *Descriptor) NullableOf() (Type, bool) {
	if d.kind != kindNullable {
		return nil, false
	}
	return d.elem, true
}

// DictionaryOf implements Type.
func (d *Descriptor) DictionaryOf() (Type, Type, bool) {
	if d.kind != kindMap {
		return nil, nil, false
	}
	return d.key, d.elem, true
}

// EnumerableOf implements Type. Dictionaries are enumerable over their values.
func (d *Descriptor) EnumerableOf() (Type, bool) {
	switch d.kind {
	case kindList, kindMap:
		return d.elem, true
	default:
		return nil, false
	}
}

// IsInterface implements Type.
func (d *Descriptor) IsInterface() bool { return d.kind == kindInterface }

// BaseType implements Type.
func (d *Descriptor) BaseType() Type {
	d.materialize()
	if d.base == nil {
		return nil
	}
	return d.base
}

// Interfaces implements Type.
func (d *Descriptor) Interfaces() []Type {
	d.materialize()
	return append([]Type(nil), d.interfaces...)
}

// GenericArguments implements Type.
func (d *Descriptor) GenericArguments() []Type {
	switch d.kind {
	case kindList, kindNullable:
		return []Type{d.elem}
	case kindMap:
		return []Type{d.key, d.elem}
	}
	return append([]Type(nil), d.args...)
}

// DeclaredProperties implements Type.
func (d *Descriptor) DeclaredProperties() []Property {
	d.materialize()
	return append([]Property(nil), d.props...)
}

// Properties implements Type.
func (d *Descriptor) Properties() []Property {
	return FlattenProperties(d)
}

// Tags implements Type.
func (d *Descriptor) Tags() TagSet {
	d.materialize()
	return append(TagSet(nil), d.tags...)
}

// String returns the full name, falling back to the short name for
// unnameable types.
func (d *Descriptor) String() string {
	if name := d.FullName(); name != "" {
		return name
	}
	return d.name
}

// ErrNotGeneric is returned by helpers that require a generic definition.
var ErrNotGeneric = errors.New("typedesc: type is not a generic definition")
