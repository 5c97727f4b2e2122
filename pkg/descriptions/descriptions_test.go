package descriptions

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemagen/internal/source/loader"
	"github.com/goliatone/go-schemagen/pkg/source"
)

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"  plain text ":                        "plain text",
		"The pet's <b>name</b>.":               "The pet's name.",
		"a & b <script>alert(1)</script>done":  "a & b done",
		"<p></p>":                              "",
	}
	for input, want := range cases {
		if got := Sanitize(input); got != want {
			t.Fatalf("Sanitize(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSetAddAndLookup(t *testing.T) {
	set := New()
	if !set.Add("Acme.Pet.Name", "The name.") {
		t.Fatalf("expected entry to be stored")
	}
	if set.Add("  ", "text") || set.Add("Acme.Pet.Tag", "<i></i>") {
		t.Fatalf("blank entries must be ignored")
	}
	if text, ok := set.Description("Acme.Pet.Name"); !ok || text != "The name." {
		t.Fatalf("unexpected lookup %q %v", text, ok)
	}
	if _, ok := set.Description("Acme.Pet.Missing"); ok {
		t.Fatalf("expected missing entry")
	}

	var nilSet *Set
	if _, ok := nilSet.Description("x"); ok || nilSet.Len() != 0 {
		t.Fatalf("nil set must be empty")
	}
}

func TestMerge(t *testing.T) {
	base := FromMap(map[string]string{"A.x": "one", "A.y": "two"})
	base.Merge(FromMap(map[string]string{"A.y": "replaced", "A.z": "three"}))

	if diff := cmp.Diff([]string{"A.x", "A.y", "A.z"}, base.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if text, _ := base.Description("A.y"); text != "replaced" {
		t.Fatalf("expected merged value, got %q", text)
	}
}

func TestLoad(t *testing.T) {
	files := fstest.MapFS{
		"descriptions.yaml": {Data: []byte("Acme.Pet.Name: The pet's name.\nAcme.Pet: A <em>pet</em>.\n")},
		"descriptions.json": {Data: []byte(`{"Acme.Pet.Name": "From JSON"}`)},
	}
	l := loader.New(source.NewLoaderOptions(source.WithFileSystem(files)))

	set, err := Load(context.Background(), l, source.FromFS("descriptions.yaml"))
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	if text, _ := set.Description("Acme.Pet"); text != "A pet." {
		t.Fatalf("unexpected type description %q", text)
	}

	set, err = Load(context.Background(), l, source.FromFS("descriptions.json"))
	if err != nil {
		t.Fatalf("load json: %v", err)
	}
	if text, _ := set.Description("Acme.Pet.Name"); text != "From JSON" {
		t.Fatalf("unexpected json description %q", text)
	}

	if _, err := Load(context.Background(), l, source.FromFS("missing.yaml")); err == nil {
		t.Fatalf("expected error for missing document")
	}
}
