package typedesc

// SimpleKind enumerates the primitive shapes a Type may classify as.
type SimpleKind string

const (
	SimpleString   SimpleKind = "string"
	SimpleChar     SimpleKind = "char"
	SimpleBoolean  SimpleKind = "boolean"
	SimpleByte     SimpleKind = "byte"
	SimpleInt16    SimpleKind = "int16"
	SimpleInt32    SimpleKind = "int32"
	SimpleInt64    SimpleKind = "int64"
	SimpleFloat    SimpleKind = "float"
	SimpleDouble   SimpleKind = "double"
	SimpleDecimal  SimpleKind = "decimal"
	SimpleDateTime SimpleKind = "date-time"
	SimpleDate     SimpleKind = "date"
	SimpleTimeSpan SimpleKind = "time-span"
	SimpleUUID     SimpleKind = "uuid"
	SimpleURI      SimpleKind = "uri"
	// SimpleBinary identifies byte streams.
	SimpleBinary SimpleKind = "binary"
)

// SimpleKinds lists every builtin simple kind in a stable order.
func SimpleKinds() []SimpleKind {
	return []SimpleKind{
		SimpleString, SimpleChar, SimpleBoolean, SimpleByte, SimpleInt16,
		SimpleInt32, SimpleInt64, SimpleFloat, SimpleDouble, SimpleDecimal,
		SimpleDateTime, SimpleDate, SimpleTimeSpan, SimpleUUID, SimpleURI,
		SimpleBinary,
	}
}

// Type is the capability surface the registry needs from a type. Predicates
// are independent: a type may report more than one shape (a string is both
// simple and enumerable in some type systems) and consumers apply their own
// priority order.
type Type interface {
	// FullName returns the canonical fully-qualified signature, including
	// generic arguments. It is empty for unnameable types such as unbound
	// generic parameters.
	FullName() string
	// Name returns the short type name without namespace or arguments.
	Name() string
	// Namespace returns the enclosing namespace or package, if any.
	Namespace() string

	Simple() (SimpleKind, bool)
	EnumMembers() ([]string, bool)
	// NullableOf reports the wrapped type for nullable wrappers.
	NullableOf() (Type, bool)
	DictionaryOf() (key, value Type, ok bool)
	EnumerableOf() (Type, bool)

	IsInterface() bool
	// BaseType returns nil when the type derives directly from the root
	// object type.
	BaseType() Type
	Interfaces() []Type
	GenericArguments() []Type

	// DeclaredProperties returns the properties declared by the type itself,
	// in declaration order.
	DeclaredProperties() []Property
	// Properties returns declared properties followed by inherited ones
	// (base chain, then directly implemented interfaces), flattened.
	Properties() []Property

	Tags() TagSet
}

// Property is a single member of an object type.
type Property struct {
	Name          string
	Type          Type
	DeclaringType Type
	Tags          TagSet
}

// FullName returns the fully-qualified property name in the form
// "Namespace.DeclaringType.Property". Description overrides are keyed by it.
func (p Property) FullName() string {
	if p.DeclaringType == nil {
		return p.Name
	}
	return QualifiedName(p.DeclaringType) + "." + p.Name
}

// QualifiedName joins namespace and short name without generic arguments.
func QualifiedName(t Type) string {
	if t == nil {
		return ""
	}
	if ns := t.Namespace(); ns != "" {
		return ns + "." + t.Name()
	}
	return t.Name()
}
