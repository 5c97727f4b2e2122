package typedesc

// Tag is a typed metadata annotation attached to a type or property.
type Tag interface {
	TagName() string
}

// TagSet is an ordered collection of tags. Lookups return the first match.
type TagSet []Tag

// Find returns the first tag of type T in the set.
func Find[T Tag](set TagSet) (T, bool) {
	for _, tag := range set {
		if typed, ok := tag.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}

// Has reports whether the set carries a tag of type T.
func Has[T Tag](set TagSet) bool {
	_, ok := Find[T](set)
	return ok
}

// With returns a copy of the set with the supplied tags appended.
func (s TagSet) With(tags ...Tag) TagSet {
	out := make(TagSet, 0, len(s)+len(tags))
	out = append(out, s...)
	for _, tag := range tags {
		if tag != nil {
			out = append(out, tag)
		}
	}
	return out
}

// NamingStrategy selects a property naming policy for a single type.
type NamingStrategy string

const (
	NamingDefault   NamingStrategy = ""
	NamingCamelCase NamingStrategy = "camelCase"
)

// NameTag overrides the serialized name of a property.
type NameTag struct {
	Name string
}

func (NameTag) TagName() string { return "name" }

// RequiredTag marks a property as always required.
type RequiredTag struct{}

func (RequiredTag) TagName() string { return "required" }

// IgnoreTag excludes a property from the schema.
type IgnoreTag struct{}

func (IgnoreTag) TagName() string { return "ignore" }

// NamingTag overrides the naming strategy for every property of a type.
type NamingTag struct {
	Strategy NamingStrategy
}

func (NamingTag) TagName() string { return "naming" }

// SubtypesTag lists the known subtypes of a polymorphic base type.
type SubtypesTag struct {
	Types []Type
}

func (SubtypesTag) TagName() string { return "subtypes" }

// DiscriminatorTag names the discriminator property of a polymorphic base.
type DiscriminatorTag struct {
	Property string
}

func (DiscriminatorTag) TagName() string { return "discriminator" }

// DiscriminatorValueTag pins the mapping value used for a subtype.
type DiscriminatorValueTag struct {
	Value string
}

func (DiscriminatorValueTag) TagName() string { return "discriminator-value" }

// DescriptionTag carries documentation text for a type.
type DescriptionTag struct {
	Text string
}

func (DescriptionTag) TagName() string { return "description" }
