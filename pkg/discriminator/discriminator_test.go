package discriminator

import (
	"testing"

	"github.com/goliatone/go-schemagen/pkg/typedesc"
)

func TestDefaultResolveProperty(t *testing.T) {
	declared := typedesc.NewObject("Acme", "Shape").
		AddProperty("Kind", typedesc.Builtin(typedesc.SimpleString)).
		AddTags(typedesc.DiscriminatorTag{Property: "Kind"})
	prop := Default{}.ResolveProperty(declared)
	if prop.Name != "Kind" || prop.DeclaringType != declared {
		t.Fatalf("expected declared Kind property, got %+v", prop)
	}

	untagged := typedesc.NewObject("Acme", "Vehicle")
	if got := (Default{}).ResolveProperty(untagged).Name; got != DefaultPropertyName {
		t.Fatalf("expected default property name, got %q", got)
	}
	if got := (Default{PropertyName: "kind"}).ResolveProperty(untagged).Name; got != "kind" {
		t.Fatalf("expected configured property name, got %q", got)
	}
}

func TestDefaultResolveMappingKey(t *testing.T) {
	circle := typedesc.NewObject("Acme", "Circle")
	square := typedesc.NewObject("Acme", "Square").AddTags(typedesc.DiscriminatorValueTag{Value: "sq"})
	prop := typedesc.Property{Name: "Kind"}

	if got := (Default{}).ResolveMappingKey(prop, circle); got != "Circle" {
		t.Fatalf("expected type name, got %q", got)
	}
	if got := (Default{}).ResolveMappingKey(prop, square); got != "sq" {
		t.Fatalf("expected tagged value, got %q", got)
	}
}
