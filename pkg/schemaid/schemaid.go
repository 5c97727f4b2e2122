// Package schemaid derives reference keys for types. A reference key indexes
// a reusable schema inside one registry and must match ^[A-Za-z0-9.\-_]+$.
package schemaid

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-schemagen/pkg/typedesc"
)

var (
	keyPattern   = regexp.MustCompile(`^[A-Za-z0-9.\-_]+$`)
	arityPattern = regexp.MustCompile("`[0-9]+")
)

// Resolver maps a type to its reference key.
type Resolver interface {
	Resolve(t typedesc.Type) string
}

// Func adapts a function to the Resolver interface.
type Func func(t typedesc.Type) string

// Resolve implements Resolver.
func (f Func) Resolve(t typedesc.Type) string {
	return f(t)
}

// Default sanitizes the canonical full name of the type.
type Default struct{}

var _ Resolver = Default{}

// Resolve implements Resolver. Unnameable types yield an empty key.
func (Default) Resolve(t typedesc.Type) string {
	return Sanitize(typedesc.Identity(t))
}

// Sanitize turns a canonical type name into a reference key:
//
//  1. nested-type separators ("+") become "."
//  2. generic arity markers ("`2") are removed
//  3. commas between generic arguments become "-"
//  4. any other character outside [A-Za-z0-9.\-_] becomes "_"
//
// Argument names are kept, so distinct instantiations yield distinct keys.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	out := strings.ReplaceAll(raw, "+", ".")
	out = arityPattern.ReplaceAllString(out, "")

	var builder strings.Builder
	builder.Grow(len(out))
	runes := []rune(out)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == ',':
			builder.WriteByte('-')
			for i+1 < len(runes) && runes[i+1] == ' ' {
				i++
			}
		case isKeyRune(r):
			builder.WriteRune(r)
		default:
			builder.WriteByte('_')
		}
	}
	return builder.String()
}

func isKeyRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '-', r == '_':
		return true
	default:
		return false
	}
}

// Valid reports whether key is a well-formed reference key.
func Valid(key string) bool {
	return keyPattern.MatchString(key)
}
