package registry

import (
	"io"
	"log/slog"

	"github.com/goliatone/go-schemagen/pkg/discriminator"
	"github.com/goliatone/go-schemagen/pkg/naming"
	"github.com/goliatone/go-schemagen/pkg/schemaid"
)

// DescriptionSource supplies documentation overrides keyed by fully-qualified
// property name ("Namespace.Type.Property") or type name ("Namespace.Type").
type DescriptionSource interface {
	Description(name string) (string, bool)
}

// Option customises a Registry.
type Option func(*Registry)

// WithNameResolver sets the property naming strategy used unless a type
// carries a NamingTag.
func WithNameResolver(resolver naming.Resolver) Option {
	return func(r *Registry) {
		if resolver != nil {
			r.names = resolver
		}
	}
}

// WithIDResolver sets the strategy that derives reference keys.
func WithIDResolver(resolver schemaid.Resolver) Option {
	return func(r *Registry) {
		if resolver != nil {
			r.ids = resolver
		}
	}
}

// WithDiscriminator enables polymorphic schemas for types tagged with
// subtypes. It only takes effect together with WithInheritance.
func WithDiscriminator(resolver discriminator.Resolver) Option {
	return func(r *Registry) {
		r.discriminators = resolver
	}
}

// WithInheritance toggles inheritance tracking. When enabled, objects list
// only their declared properties and reference their base type via allOf;
// otherwise inherited properties are flattened into each object.
func WithInheritance(enabled bool) Option {
	return func(r *Registry) {
		r.inheritance = enabled
	}
}

// WithDescriptions supplies property and type description overrides.
func WithDescriptions(source DescriptionSource) Option {
	return func(r *Registry) {
		r.descriptions = source
	}
}

// WithLogger sets the logger used for construction tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
