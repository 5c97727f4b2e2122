package openapi

import (
	"context"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	discpkg "github.com/goliatone/go-schemagen/pkg/discriminator"
	"github.com/goliatone/go-schemagen/pkg/registry"
	"github.com/goliatone/go-schemagen/pkg/schema"
	"github.com/goliatone/go-schemagen/pkg/source"
	"github.com/goliatone/go-schemagen/pkg/typedesc"
)

func fixtureRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	str := typedesc.Builtin(typedesc.SimpleString)

	owner := typedesc.NewObject("Acme", "Owner").AddProperty("Name", str)
	status := typedesc.NewEnum("Acme", "Status", "available", "sold")
	shape := typedesc.NewObject("Acme", "Shape").AddProperty("Kind", str)
	circle := typedesc.NewObject("Acme", "Circle").SetBase(shape).
		AddProperty("Radius", typedesc.Builtin(typedesc.SimpleDouble))
	shape.AddTags(
		typedesc.SubtypesTag{Types: []typedesc.Type{circle}},
		typedesc.DiscriminatorTag{Property: "Kind"},
	)
	pet := typedesc.NewObject("Acme", "Pet").
		AddProperty("Name", str, typedesc.RequiredTag{}).
		AddProperty("Initial", typedesc.Builtin(typedesc.SimpleChar)).
		AddProperty("Owner", owner).
		AddProperty("Status", typedesc.NullableOf(status)).
		AddProperty("Tags", typedesc.ListOf(str)).
		AddProperty("Scores", typedesc.MapOf(str, typedesc.Builtin(typedesc.SimpleInt32))).
		AddProperty("Shape", shape)

	reg := registry.New(
		registry.WithInheritance(true),
		registry.WithDiscriminator(discpkg.Default{}),
		registry.WithDescriptions(descriptionMap{"Acme.Pet.Owner": "Who owns the pet."}),
	)
	if _, err := reg.Resolve(pet); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	return reg
}

type descriptionMap map[string]string

func (m descriptionMap) Description(name string) (string, bool) {
	text, ok := m[name]
	return text, ok
}

func TestComponentsConvertsEveryReference(t *testing.T) {
	components := Components(fixtureRegistry(t).References())

	want := []string{"Acme.Circle", "Acme.Owner", "Acme.Pet", "Acme.Shape"}
	if diff := cmp.Diff(want, SortedKeys(components)); diff != "" {
		t.Fatalf("component keys mismatch (-want +got):\n%s", diff)
	}

	pet := components["Acme.Pet"].Value
	if !pet.Type.Is(openapi3.TypeObject) {
		t.Fatalf("expected object, got %v", pet.Type)
	}
	if diff := cmp.Diff([]string{"Name"}, pet.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	initial := pet.Properties["Initial"].Value
	if initial.MinLength != 1 || initial.MaxLength == nil || *initial.MaxLength != 1 {
		t.Fatalf("expected char length bounds, got %d/%v", initial.MinLength, initial.MaxLength)
	}

	owner := pet.Properties["Owner"]
	if owner.Ref != "" || owner.Value.Description != "Who owns the pet." || len(owner.Value.AllOf) != 1 {
		t.Fatalf("expected described reference to be wrapped in allOf, got %+v", owner.Value)
	}
	if owner.Value.AllOf[0].Ref != "#/components/schemas/Acme.Owner" {
		t.Fatalf("unexpected owner ref %q", owner.Value.AllOf[0].Ref)
	}
	if owner.Value.AllOf[0].Value != components["Acme.Owner"].Value {
		t.Fatalf("expected ref to be linked to the component value")
	}

	status := pet.Properties["Status"].Value
	if !status.Nullable || len(status.Enum) != 2 {
		t.Fatalf("expected nullable enum, got %+v", status)
	}
	if tags := pet.Properties["Tags"].Value; !tags.Type.Is(openapi3.TypeArray) || !tags.Items.Value.Type.Is(openapi3.TypeString) {
		t.Fatalf("unexpected tags schema %+v", tags)
	}
	scores := pet.Properties["Scores"].Value
	if scores.AdditionalProperties.Schema == nil || scores.AdditionalProperties.Schema.Value.Format != "int32" {
		t.Fatalf("expected additionalProperties int32, got %+v", scores.AdditionalProperties)
	}
	if ref := pet.Properties["Shape"].Ref; ref != "#/components/schemas/Acme.Shape" {
		t.Fatalf("unexpected shape ref %q", ref)
	}

	shape := components["Acme.Shape"].Value
	if shape.Discriminator == nil || shape.Discriminator.PropertyName != "Kind" {
		t.Fatalf("expected discriminator, got %+v", shape.Discriminator)
	}
	if got := shape.Discriminator.Mapping["Circle"]; got != "#/components/schemas/Acme.Circle" {
		t.Fatalf("unexpected mapping %q", got)
	}
	if len(shape.OneOf) != 1 || shape.OneOf[0].Ref != "#/components/schemas/Acme.Circle" {
		t.Fatalf("unexpected oneOf %+v", shape.OneOf)
	}
	circle := components["Acme.Circle"].Value
	if len(circle.AllOf) != 1 || circle.AllOf[0].Ref != "#/components/schemas/Acme.Shape" {
		t.Fatalf("unexpected circle allOf %+v", circle.AllOf)
	}
}

func TestSchemaRefInlineShapes(t *testing.T) {
	if ref := SchemaRef(schema.Empty(), nil); ref.Value == nil || ref.Value.Type != nil {
		t.Fatalf("expected untyped schema, got %+v", ref.Value)
	}
	ref := SchemaRef(schema.Array(schema.Reference("Acme.Pet")), nil)
	if ref.Value.Items.Ref != "#/components/schemas/Acme.Pet" {
		t.Fatalf("unexpected items ref %q", ref.Value.Items.Ref)
	}
}

func TestDocumentValidatesAndRoundTrips(t *testing.T) {
	doc := NewDocument(fixtureRegistry(t).References(), WithTitle("Pets"), WithVersion("2.1.0"))
	ctx := context.Background()
	if err := Validate(ctx, doc); err != nil {
		t.Fatalf("validate: %v", err)
	}

	data, err := MarshalJSON(doc)
	if err != nil {
		t.Fatalf("marshal json: %v", err)
	}
	loaded, err := openapi3.NewLoader().LoadFromData(data)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Info.Title != "Pets" || loaded.Info.Version != "2.1.0" {
		t.Fatalf("unexpected info %+v", loaded.Info)
	}
	if err := loaded.Validate(ctx); err != nil {
		t.Fatalf("validate reloaded: %v", err)
	}
	owner := loaded.Components.Schemas["Acme.Pet"].Value.Properties["Owner"].Value.AllOf[0]
	if owner.Value == nil || owner.Value.Properties["Name"] == nil {
		t.Fatalf("expected reloaded ref to resolve")
	}
}

func TestMarshalYAML(t *testing.T) {
	doc := NewDocument(fixtureRegistry(t).References())
	data, err := Marshal(doc, source.FormatYAML)
	if err != nil {
		t.Fatalf("marshal yaml: %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "components:") && !strings.Contains(text, "\ncomponents:") {
		t.Fatalf("expected block yaml, got:\n%s", text)
	}
	if strings.Contains(text, "{\"") {
		t.Fatalf("expected no flow-style JSON objects, got:\n%s", text)
	}

	var decoded struct {
		OpenAPI string `yaml:"openapi"`
		Info    struct {
			Version string `yaml:"version"`
		} `yaml:"info"`
		Components struct {
			Schemas map[string]any `yaml:"schemas"`
		} `yaml:"components"`
	}
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if decoded.OpenAPI != DefaultOpenAPIVersion || decoded.Info.Version != "1.0.0" {
		t.Fatalf("unexpected envelope %+v", decoded)
	}
	if len(decoded.Components.Schemas) != 4 {
		t.Fatalf("expected four schemas, got %d", len(decoded.Components.Schemas))
	}

	if _, err := Marshal(doc, "toml"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}
