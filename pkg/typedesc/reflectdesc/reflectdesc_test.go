package reflectdesc_test

import (
	"io"
	"net/url"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemagen/pkg/registry"
	"github.com/goliatone/go-schemagen/pkg/typedesc"
	"github.com/goliatone/go-schemagen/pkg/typedesc/reflectdesc"
)

type UUID [16]byte

type Status string

func (Status) SchemaEnum() []string { return []string{"active", "suspended"} }

type Entity struct {
	ID        UUID      `json:"id" schema:"required"`
	CreatedAt time.Time `json:"createdAt"`
}

type User struct {
	Entity
	Email    string         `json:"email,omitempty"`
	Status   *Status        `json:"status"`
	Tags     []string       `json:"tags"`
	Meta     map[string]int `json:"meta"`
	Manager  *User          `json:"manager"`
	Password string         `json:"-"`
	Avatar   []byte         `json:"avatar"`
	Home     url.URL        `json:"home"`
	Timeout  time.Duration  `json:"timeout" schema:"required"`
	Body     io.Reader      `json:"body" schema:"-"`
	secret   string
}

type Shape struct {
	Kind string `json:"kind"`
}

type Circle struct {
	Shape
	Radius float64 `json:"radius"`
}

type Documented struct {
	Name string
}

func (Documented) SchemaTags() []typedesc.Tag {
	return []typedesc.Tag{typedesc.DescriptionTag{Text: "documented"}}
}

func propertyNames(props []typedesc.Property) []string {
	names := make([]string, 0, len(props))
	for _, prop := range props {
		names = append(names, prop.Name)
	}
	return names
}

func findProperty(t *testing.T, typ typedesc.Type, name string) typedesc.Property {
	t.Helper()
	for _, prop := range typ.Properties() {
		if prop.Name == name {
			return prop
		}
	}
	t.Fatalf("property %q not found on %s", name, typ.FullName())
	return typedesc.Property{}
}

func TestAdapterDescribesStructs(t *testing.T) {
	adapter := reflectdesc.New()
	userType := reflect.TypeOf((*User)(nil)).Elem()
	user := adapter.For(userType)

	if got, want := user.FullName(), userType.PkgPath()+".User"; got != want {
		t.Fatalf("full name: got %q want %q", got, want)
	}
	if base := user.BaseType(); !typedesc.Same(base, adapter.For(reflect.TypeOf((*Entity)(nil)).Elem())) {
		t.Fatalf("expected Entity base, got %v", base)
	}

	wantDeclared := []string{"Email", "Status", "Tags", "Meta", "Manager", "Password", "Avatar", "Home", "Timeout", "Body"}
	if diff := cmp.Diff(wantDeclared, propertyNames(user.DeclaredProperties())); diff != "" {
		t.Fatalf("declared properties mismatch (-want +got):\n%s", diff)
	}
	wantAll := append(append([]string(nil), wantDeclared...), "ID", "CreatedAt")
	if diff := cmp.Diff(wantAll, propertyNames(user.Properties())); diff != "" {
		t.Fatalf("flattened properties mismatch (-want +got):\n%s", diff)
	}

	if manager := findProperty(t, user, "Manager"); manager.Type != user {
		t.Fatalf("expected self reference to reuse the memoized descriptor")
	}
}

func TestAdapterSimpleKinds(t *testing.T) {
	user := reflectdesc.New().For(reflect.TypeOf((*User)(nil)).Elem())
	cases := map[string]typedesc.SimpleKind{
		"ID":        typedesc.SimpleUUID,
		"CreatedAt": typedesc.SimpleDateTime,
		"Email":     typedesc.SimpleString,
		"Avatar":    typedesc.SimpleBinary,
		"Home":      typedesc.SimpleURI,
		"Timeout":   typedesc.SimpleTimeSpan,
		"Body":      typedesc.SimpleBinary,
	}
	for name, want := range cases {
		kind, ok := findProperty(t, user, name).Type.Simple()
		if !ok || kind != want {
			t.Fatalf("%s: got %q (%v) want %q", name, kind, ok, want)
		}
	}

	tags, ok := findProperty(t, user, "Tags").Type.EnumerableOf()
	if !ok || !typedesc.Same(tags, typedesc.Builtin(typedesc.SimpleString)) {
		t.Fatalf("expected []string to be enumerable over string, got %v", tags)
	}
	key, value, ok := findProperty(t, user, "Meta").Type.DictionaryOf()
	if !ok || key.FullName() != "string" || value.FullName() != "int64" {
		t.Fatalf("unexpected dictionary %v -> %v", key, value)
	}
}

func TestAdapterEnumsAndNullability(t *testing.T) {
	adapter := reflectdesc.New()
	status := adapter.For(reflect.TypeOf((*Status)(nil)).Elem())
	members, ok := status.EnumMembers()
	if !ok {
		t.Fatalf("expected Status to be an enum")
	}
	if diff := cmp.Diff([]string{"active", "suspended"}, members); diff != "" {
		t.Fatalf("members mismatch (-want +got):\n%s", diff)
	}

	inner, ok := adapter.For(reflect.TypeOf((**Status)(nil)).Elem()).NullableOf()
	if !ok || inner != status {
		t.Fatalf("expected *Status to be a nullable wrapper over Status")
	}
	if got := adapter.For(reflect.TypeOf((**string)(nil)).Elem()); got != typedesc.Builtin(typedesc.SimpleString) {
		t.Fatalf("expected *string to unwrap to string, got %v", got)
	}
}

func TestAdapterFieldTags(t *testing.T) {
	user := reflectdesc.New().For(reflect.TypeOf((*User)(nil)).Elem())

	email := findProperty(t, user, "Email")
	if tag, ok := typedesc.Find[typedesc.NameTag](email.Tags); !ok || tag.Name != "email" {
		t.Fatalf("expected email name tag, got %v", email.Tags)
	}
	if !typedesc.Has[typedesc.IgnoreTag](findProperty(t, user, "Password").Tags) {
		t.Fatalf("json:\"-\" should ignore Password")
	}
	if !typedesc.Has[typedesc.IgnoreTag](findProperty(t, user, "Body").Tags) {
		t.Fatalf("schema:\"-\" should ignore Body")
	}
	if !typedesc.Has[typedesc.RequiredTag](findProperty(t, user, "ID").Tags) {
		t.Fatalf("schema:\"required\" should mark ID required")
	}
	if findProperty(t, user, "ID").DeclaringType.Name() != "Entity" {
		t.Fatalf("promoted fields keep their declaring type")
	}
}

func TestAdapterTypeLevelTags(t *testing.T) {
	shapeType, circleType := reflect.TypeOf((*Shape)(nil)).Elem(), reflect.TypeOf((*Circle)(nil)).Elem()
	adapter := reflectdesc.New(
		reflectdesc.WithSubtypes(shapeType, circleType),
		reflectdesc.WithDiscriminator(shapeType, "Kind"),
	)

	shape := adapter.For(shapeType)
	subtypes, ok := typedesc.Find[typedesc.SubtypesTag](shape.Tags())
	if !ok || len(subtypes.Types) != 1 || subtypes.Types[0] != adapter.For(circleType) {
		t.Fatalf("expected Circle subtype, got %v", shape.Tags())
	}
	if disc, ok := typedesc.Find[typedesc.DiscriminatorTag](shape.Tags()); !ok || disc.Property != "Kind" {
		t.Fatalf("expected discriminator tag, got %v", shape.Tags())
	}
	if base := adapter.For(circleType).BaseType(); base != shape {
		t.Fatalf("expected Circle to derive from Shape")
	}

	documented := adapter.For(reflect.TypeOf((*Documented)(nil)).Elem())
	if tag, ok := typedesc.Find[typedesc.DescriptionTag](documented.Tags()); !ok || tag.Text != "documented" {
		t.Fatalf("expected SchemaTags to contribute a description, got %v", documented.Tags())
	}
}

func TestAdapterUnnameableTypes(t *testing.T) {
	adapter := reflectdesc.New()
	for _, rt := range []reflect.Type{
		reflect.TypeOf((*struct{ A int })(nil)).Elem(),
		reflect.TypeOf((*any)(nil)).Elem(),
		reflect.TypeOf((*chan int)(nil)).Elem(),
		nil,
	} {
		if got := adapter.For(rt); got != nil {
			t.Fatalf("expected nil descriptor for %v, got %v", rt, got)
		}
	}
}

func TestAdapterConcurrentReads(t *testing.T) {
	adapter := reflectdesc.New()
	userType := reflect.TypeOf((*User)(nil)).Elem()

	var wg sync.WaitGroup
	results := make([]typedesc.Type, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = adapter.For(userType)
			_ = results[i].Properties()
		}(i)
	}
	wg.Wait()
	for i, got := range results {
		if got != results[0] {
			t.Fatalf("result %d is a different descriptor", i)
		}
	}
}

func TestAdapterFeedsRegistry(t *testing.T) {
	adapter := reflectdesc.New()
	reg := registry.New(registry.WithInheritance(true))

	ref, err := reg.Resolve(adapter.For(reflect.TypeOf((*User)(nil)).Elem()))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	node, ok := reg.Lookup(ref.Ref)
	if !ok {
		t.Fatalf("expected %q in registry", ref.Ref)
	}

	want := []string{"email", "status", "tags", "meta", "manager", "avatar", "home", "timeout"}
	if diff := cmp.Diff(want, node.Properties.Names()); diff != "" {
		t.Fatalf("property names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"timeout"}, node.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	status, _ := node.Properties.Get("status")
	if !status.Nullable {
		t.Fatalf("expected *Status to produce a nullable enum")
	}
	if len(node.AllOf) != 1 || !node.AllOf[0].IsReference() {
		t.Fatalf("expected allOf reference to Entity, got %s", node.DebugString())
	}
}
