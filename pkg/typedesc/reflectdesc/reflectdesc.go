// Package reflectdesc adapts Go types to typedesc.Type so structs declared in
// Go code can be fed directly into the schema registry.
//
// Struct tags are translated once, when a type is first described:
//
//	json:"name"      NameTag
//	json:"-"         IgnoreTag
//	schema:"required" RequiredTag
//	schema:"-"       IgnoreTag
//
// The first embedded struct of a struct is treated as its base type. Named
// types implementing Enumer become enums, and types implementing Tagger
// contribute type-level tags.
package reflectdesc

import (
	"encoding/json"
	"io"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-schemagen/pkg/typedesc"
)

// Enumer is implemented by named types that should be described as enums.
type Enumer interface {
	SchemaEnum() []string
}

// Tagger is implemented by types that attach type-level tags to themselves.
type Tagger interface {
	SchemaTags() []typedesc.Tag
}

var (
	timeType     = reflect.TypeOf((*time.Time)(nil)).Elem()
	durationType = reflect.TypeOf((*time.Duration)(nil)).Elem()
	urlType      = reflect.TypeOf((*url.URL)(nil)).Elem()
	rawType      = reflect.TypeOf((*json.RawMessage)(nil)).Elem()
	readerType   = reflect.TypeOf((*io.Reader)(nil)).Elem()
	enumerType   = reflect.TypeOf((*Enumer)(nil)).Elem()
	taggerType   = reflect.TypeOf((*Tagger)(nil)).Elem()
)

// Adapter describes Go types. Descriptors are memoized per reflect.Type and
// are safe for concurrent reads once returned.
type Adapter struct {
	mu    sync.Mutex
	cache map[reflect.Type]typedesc.Type

	tags          map[reflect.Type]typedesc.TagSet
	subtypes      map[reflect.Type][]reflect.Type
	discriminator map[reflect.Type]string
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithTags attaches type-level tags to rt.
func WithTags(rt reflect.Type, tags ...typedesc.Tag) Option {
	return func(a *Adapter) {
		if rt == nil {
			return
		}
		a.tags[rt] = a.tags[rt].With(tags...)
	}
}

// WithSubtypes declares the known subtypes of a polymorphic base type.
func WithSubtypes(base reflect.Type, subtypes ...reflect.Type) Option {
	return func(a *Adapter) {
		if base == nil {
			return
		}
		a.subtypes[base] = append(a.subtypes[base], subtypes...)
	}
}

// WithDiscriminator names the discriminator property of a polymorphic base.
func WithDiscriminator(base reflect.Type, property string) Option {
	return func(a *Adapter) {
		if base == nil || strings.TrimSpace(property) == "" {
			return
		}
		a.discriminator[base] = strings.TrimSpace(property)
	}
}

// New constructs an Adapter.
func New(options ...Option) *Adapter {
	a := &Adapter{
		cache:         make(map[reflect.Type]typedesc.Type),
		tags:          make(map[reflect.Type]typedesc.TagSet),
		subtypes:      make(map[reflect.Type][]reflect.Type),
		discriminator: make(map[reflect.Type]string),
	}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Of describes the dynamic type of v.
func (a *Adapter) Of(v any) typedesc.Type {
	return a.For(reflect.TypeOf(v))
}

// For describes rt. It returns nil for types that have no schema identity,
// such as anonymous structs, channels, functions and the empty interface.
func (a *Adapter) For(rt reflect.Type) typedesc.Type {
	if rt == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.describe(rt)
}

// TypeOf describes T using a fresh Adapter.
func TypeOf[T any](options ...Option) typedesc.Type {
	return New(options...).For(reflect.TypeOf((*T)(nil)).Elem())
}

func (a *Adapter) describe(rt reflect.Type) typedesc.Type {
	if cached, ok := a.cache[rt]; ok {
		return cached
	}
	if kind, ok := simpleKind(rt); ok {
		desc := typedesc.Builtin(kind)
		a.cache[rt] = desc
		return desc
	}
	if members, ok := enumMembers(rt); ok {
		desc := typedesc.NewEnum(rt.PkgPath(), rt.Name(), members...)
		a.cache[rt] = desc
		return desc
	}

	var out typedesc.Type
	switch rt.Kind() {
	case reflect.Pointer:
		inner := a.describe(rt.Elem())
		if inner != nil {
			if _, isEnum := inner.EnumMembers(); isEnum {
				inner = typedesc.NullableOf(inner)
			}
		}
		out = inner
	case reflect.Slice, reflect.Array:
		out = typedesc.ListOf(a.describe(rt.Elem()))
	case reflect.Map:
		out = typedesc.MapOf(a.describe(rt.Key()), a.describe(rt.Elem()))
	case reflect.Struct:
		if rt.Name() == "" {
			break
		}
		desc := typedesc.NewObject(rt.PkgPath(), rt.Name())
		a.cache[rt] = desc
		a.fillStruct(rt, desc)
		return desc
	case reflect.Interface:
		if rt.Name() == "" {
			break
		}
		desc := typedesc.NewInterface(rt.PkgPath(), rt.Name())
		a.cache[rt] = desc
		desc.AddTags(a.typeTags(rt)...)
		return desc
	}
	if out != nil {
		a.cache[rt] = out
	}
	return out
}

func (a *Adapter) fillStruct(rt reflect.Type, desc *typedesc.Descriptor) {
	desc.AddTags(a.typeTags(rt)...)

	hasBase := false
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.Anonymous && !hasJSONName(field) {
			embedded := field.Type
			if embedded.Kind() == reflect.Pointer {
				embedded = embedded.Elem()
			}
			if embedded.Kind() != reflect.Struct {
				continue
			}
			if !hasBase {
				if base := a.describe(embedded); base != nil {
					desc.SetBase(base)
					hasBase = true
					continue
				}
			}
			a.addFields(embedded, desc)
			continue
		}
		a.addField(field, desc)
	}
}

// addFields declares the exported fields of an additional embedded struct on
// desc, mirroring how encoding/json promotes them.
func (a *Adapter) addFields(rt reflect.Type, desc *typedesc.Descriptor) {
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.Anonymous {
			continue
		}
		a.addField(field, desc)
	}
}

func (a *Adapter) addField(field reflect.StructField, desc *typedesc.Descriptor) {
	if !field.IsExported() {
		return
	}
	desc.AddProperty(field.Name, a.describe(field.Type), fieldTags(field)...)
}

func (a *Adapter) typeTags(rt reflect.Type) typedesc.TagSet {
	var tags typedesc.TagSet
	if rt.Kind() != reflect.Interface {
		if tagger, ok := instance(rt, taggerType).(Tagger); ok {
			tags = tags.With(tagger.SchemaTags()...)
		}
	}
	tags = tags.With(a.tags[rt]...)
	if property, ok := a.discriminator[rt]; ok {
		tags = tags.With(typedesc.DiscriminatorTag{Property: property})
	}
	if subtypes := a.subtypes[rt]; len(subtypes) > 0 {
		described := make([]typedesc.Type, 0, len(subtypes))
		for _, subtype := range subtypes {
			if d := a.describe(subtype); d != nil {
				described = append(described, d)
			}
		}
		tags = tags.With(typedesc.SubtypesTag{Types: described})
	}
	return tags
}

func simpleKind(rt reflect.Type) (typedesc.SimpleKind, bool) {
	switch rt {
	case timeType:
		return typedesc.SimpleDateTime, true
	case durationType:
		return typedesc.SimpleTimeSpan, true
	case urlType:
		return typedesc.SimpleURI, true
	case rawType:
		return typedesc.SimpleBinary, true
	}
	if rt.Kind() == reflect.Interface && rt.Implements(readerType) {
		return typedesc.SimpleBinary, true
	}
	if rt.Implements(enumerType) || reflect.PointerTo(rt).Implements(enumerType) {
		return "", false
	}

	switch rt.Kind() {
	case reflect.Bool:
		return typedesc.SimpleBoolean, true
	case reflect.Int8, reflect.Uint8:
		return typedesc.SimpleByte, true
	case reflect.Int16, reflect.Uint16:
		return typedesc.SimpleInt16, true
	case reflect.Int32:
		return typedesc.SimpleInt32, true
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return typedesc.SimpleInt64, true
	case reflect.Float32:
		return typedesc.SimpleFloat, true
	case reflect.Float64:
		return typedesc.SimpleDouble, true
	case reflect.String:
		return typedesc.SimpleString, true
	case reflect.Slice:
		if rt.Elem().Kind() == reflect.Uint8 {
			return typedesc.SimpleBinary, true
		}
	case reflect.Array:
		if rt.Len() == 16 && rt.Elem().Kind() == reflect.Uint8 && strings.EqualFold(rt.Name(), "UUID") {
			return typedesc.SimpleUUID, true
		}
	}
	return "", false
}

func enumMembers(rt reflect.Type) ([]string, bool) {
	if rt.Name() == "" || rt.Kind() == reflect.Interface {
		return nil, false
	}
	enumer, ok := instance(rt, enumerType).(Enumer)
	if !ok {
		return nil, false
	}
	return enumer.SchemaEnum(), true
}

// instance returns a zero value of rt (or of *rt when only the pointer
// implements iface) boxed as any, or nil when neither implements iface.
func instance(rt reflect.Type, iface reflect.Type) any {
	switch {
	case rt.Implements(iface):
		return reflect.New(rt).Elem().Interface()
	case reflect.PointerTo(rt).Implements(iface):
		return reflect.New(rt).Interface()
	default:
		return nil
	}
}
