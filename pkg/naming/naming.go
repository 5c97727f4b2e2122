// Package naming provides the strategies that turn a property declaration
// into its serialized name.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-schemagen/pkg/typedesc"
)

// Resolver maps a property to its serialized name.
type Resolver interface {
	Resolve(prop typedesc.Property) string
}

// Func adapts a function to the Resolver interface.
type Func func(prop typedesc.Property) string

// Resolve implements Resolver.
func (f Func) Resolve(prop typedesc.Property) string {
	return f(prop)
}

// Default returns the declared property name unless the property carries an
// explicit NameTag.
type Default struct{}

var _ Resolver = Default{}

// Resolve implements Resolver.
func (Default) Resolve(prop typedesc.Property) string {
	if tag, ok := typedesc.Find[typedesc.NameTag](prop.Tags); ok {
		if name := strings.TrimSpace(tag.Name); name != "" {
			return name
		}
	}
	return prop.Name
}

// CamelCase lower-cases the first character of the Default result.
type CamelCase struct{}

var _ Resolver = CamelCase{}

// Resolve implements Resolver.
func (CamelCase) Resolve(prop typedesc.Property) string {
	return LowerFirst(Default{}.Resolve(prop))
}

// LowerFirst lower-cases the first rune of s.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// ForStrategy returns the resolver implementing strategy, or fallback when
// the strategy is the default.
func ForStrategy(strategy typedesc.NamingStrategy, fallback Resolver) Resolver {
	switch strategy {
	case typedesc.NamingCamelCase:
		return CamelCase{}
	default:
		if fallback == nil {
			return Default{}
		}
		return fallback
	}
}
