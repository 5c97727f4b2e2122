package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateProperty matches DuplicatePropertyError via errors.Is.
	ErrDuplicateProperty = errors.New("registry: duplicate property")
	// ErrInvalidKey is returned when the id resolver produces a key outside
	// [A-Za-z0-9.\-_].
	ErrInvalidKey = errors.New("registry: invalid reference key")
)

// SchemaConstructionError wraps any failure while building the object schema
// stored under Key.
type SchemaConstructionError struct {
	Key string
	Err error
}

func (e *SchemaConstructionError) Error() string {
	return fmt.Sprintf("registry: build schema %q: %v", e.Key, e.Err)
}

func (e *SchemaConstructionError) Unwrap() error {
	return e.Err
}

// DuplicatePropertyError reports two properties that resolve to the same
// serialized name while their declaring types are unrelated, so neither can
// hide the other.
type DuplicatePropertyError struct {
	// Name is the serialized property name.
	Name string
	// Type is the object type being built.
	Type string
	// Existing and Conflicting are the declaring types of the two properties.
	Existing    string
	Conflicting string
}

func (e *DuplicatePropertyError) Error() string {
	return fmt.Sprintf("registry: property %q of %s is declared by unrelated types %s and %s",
		e.Name, e.Type, e.Existing, e.Conflicting)
}

// Is reports ErrDuplicateProperty as a match.
func (e *DuplicatePropertyError) Is(target error) bool {
	return target == ErrDuplicateProperty
}

// ErrDuplicateMapping matches DuplicateMappingError via errors.Is.
var ErrDuplicateMapping = errors.New("registry: duplicate discriminator mapping")

// DuplicateMappingError reports two subtypes of one polymorphic base that
// resolve to the same discriminator value.
type DuplicateMappingError struct {
	// Value is the discriminator mapping value.
	Value string
	// Type is the base type being built.
	Type string
	// Existing and Conflicting are the reference keys of the two subtypes.
	Existing    string
	Conflicting string
}

func (e *DuplicateMappingError) Error() string {
	return fmt.Sprintf("registry: discriminator value %q of %s maps to both %s and %s",
		e.Value, e.Type, e.Existing, e.Conflicting)
}

// Is reports ErrDuplicateMapping as a match.
func (e *DuplicateMappingError) Is(target error) bool {
	return target == ErrDuplicateMapping
}
