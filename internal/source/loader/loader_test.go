package loader

import (
	"context"
	"errors"
	"strings"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-schemagen/pkg/source"
)

func TestLoaderReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "types.yaml")
	if err := os.WriteFile(path, []byte("types: []\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := New(source.NewLoaderOptions())
	doc, err := l.Load(context.Background(), source.FromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != "types: []\n" {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
}

func TestLoaderReadsFS(t *testing.T) {
	files := fstest.MapFS{"catalog/types.json": {Data: []byte(`{"types":[]}`)}}
	l := New(source.NewLoaderOptions(source.WithFileSystem(files)))
	doc, err := l.Load(context.Background(), source.FromFS("catalog/types.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Format() != source.FormatJSON {
		t.Fatalf("expected json format")
	}

	bare := New(source.NewLoaderOptions())
	if _, err := bare.Load(context.Background(), source.FromFS("catalog/types.json")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
}

func TestLoaderHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte("types: []\n"))
	}))
	defer server.Close()

	disabled := New(source.NewLoaderOptions())
	if _, err := disabled.Load(context.Background(), source.FromURL(server.URL+"/types.yaml")); err == nil {
		t.Fatalf("expected http to be disabled by default")
	}

	l := New(source.NewLoaderOptions(source.WithHTTPClient(server.Client())))
	doc, err := l.Load(context.Background(), source.FromURL(server.URL+"/types.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Location() != server.URL+"/types.yaml" {
		t.Fatalf("unexpected location %q", doc.Location())
	}
	if _, err := l.Load(context.Background(), source.FromURL(server.URL+"/missing")); err == nil {
		t.Fatalf("expected status error")
	}
}

func TestLoaderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := New(source.NewLoaderOptions())
	if _, err := l.Load(ctx, source.FromFile("types.yaml")); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestLoaderEnforcesSizeLimit(t *testing.T) {
	payload := "types: []\n" + strings.Repeat("#", 64) + "\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept"), "application/yaml") {
			t.Errorf("unexpected accept header %q", r.Header.Get("Accept"))
		}
		if r.URL.Path == "/stream" {
			w.Header().Set("Content-Type", "application/yaml")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(payload[:10]))
			w.(http.Flusher).Flush()
			_, _ = w.Write([]byte(payload[10:]))
			return
		}
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "types.yaml")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	files := fstest.MapFS{"types.yaml": {Data: []byte(payload)}}

	l := New(source.NewLoaderOptions(
		source.WithFileSystem(files),
		source.WithHTTPClient(server.Client()),
		source.WithMaxDocumentSize(16),
	))

	cases := []struct {
		name string
		src  source.Source
	}{
		{name: "file", src: source.FromFile(path)},
		{name: "fs", src: source.FromFS("types.yaml")},
		{name: "http content length", src: source.FromURL(server.URL + "/types.yaml")},
		{name: "http streamed", src: source.FromURL(server.URL + "/stream")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := l.Load(context.Background(), tc.src)
			if !errors.Is(err, source.ErrDocumentTooLarge) {
				t.Fatalf("expected ErrDocumentTooLarge, got %v", err)
			}
		})
	}

	roomy := New(source.NewLoaderOptions(source.WithFileSystem(files), source.WithMaxDocumentSize(int64(len(payload)))))
	if _, err := roomy.Load(context.Background(), source.FromFS("types.yaml")); err != nil {
		t.Fatalf("payload at the limit should load: %v", err)
	}
}
