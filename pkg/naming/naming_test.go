package naming

import (
	"testing"

	"github.com/goliatone/go-schemagen/pkg/typedesc"
)

func TestResolvers(t *testing.T) {
	cases := []struct {
		name     string
		resolver Resolver
		prop     typedesc.Property
		want     string
	}{
		{
			name:     "default identity",
			resolver: Default{},
			prop:     typedesc.Property{Name: "FirstName"},
			want:     "FirstName",
		},
		{
			name:     "default explicit name",
			resolver: Default{},
			prop:     typedesc.Property{Name: "FirstName", Tags: typedesc.TagSet{typedesc.NameTag{Name: "given_name"}}},
			want:     "given_name",
		},
		{
			name:     "default blank explicit name ignored",
			resolver: Default{},
			prop:     typedesc.Property{Name: "FirstName", Tags: typedesc.TagSet{typedesc.NameTag{Name: "  "}}},
			want:     "FirstName",
		},
		{
			name:     "camel case",
			resolver: CamelCase{},
			prop:     typedesc.Property{Name: "FirstName"},
			want:     "firstName",
		},
		{
			name:     "camel case over explicit name",
			resolver: CamelCase{},
			prop:     typedesc.Property{Name: "FirstName", Tags: typedesc.TagSet{typedesc.NameTag{Name: "GivenName"}}},
			want:     "givenName",
		},
		{
			name:     "camel case non letter",
			resolver: CamelCase{},
			prop:     typedesc.Property{Name: "$type"},
			want:     "$type",
		},
		{
			name:     "func adapter",
			resolver: Func(func(p typedesc.Property) string { return "x_" + p.Name }),
			prop:     typedesc.Property{Name: "Id"},
			want:     "x_Id",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.resolver.Resolve(tc.prop); got != tc.want {
				t.Fatalf("Resolve() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestForStrategy(t *testing.T) {
	if _, ok := ForStrategy(typedesc.NamingCamelCase, Default{}).(CamelCase); !ok {
		t.Fatalf("expected CamelCase resolver")
	}
	custom := Func(func(p typedesc.Property) string { return p.Name })
	if got := ForStrategy(typedesc.NamingDefault, custom); got == nil {
		t.Fatalf("expected fallback resolver")
	}
	if _, ok := ForStrategy(typedesc.NamingDefault, nil).(Default); !ok {
		t.Fatalf("expected Default when fallback is nil")
	}
}

func TestLowerFirst(t *testing.T) {
	if got := LowerFirst("Ürün"); got != "ürün" {
		t.Fatalf("LowerFirst() = %q", got)
	}
	if got := LowerFirst(""); got != "" {
		t.Fatalf("LowerFirst(\"\") = %q", got)
	}
}
