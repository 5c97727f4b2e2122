// Package descriptions holds documentation overrides keyed by
// fully-qualified property name ("Namespace.Type.Property") or type name.
// Text is reduced to plain text before it is stored.
package descriptions

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-schemagen/pkg/source"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Set is a map of description overrides. The zero value is not usable; use
// New. A nil *Set reports no descriptions.
type Set struct {
	entries map[string]string
}

// New returns an empty Set.
func New() *Set {
	return &Set{entries: make(map[string]string)}
}

// FromMap builds a Set from name/text pairs, sanitising every entry.
func FromMap(entries map[string]string) *Set {
	set := New()
	for name, text := range entries {
		set.Add(name, text)
	}
	return set
}

// Add stores text under name. Blank names and text that sanitises to
// nothing are ignored; Add reports whether the entry was stored.
func (s *Set) Add(name, text string) bool {
	name = strings.TrimSpace(name)
	cleaned := Sanitize(text)
	if name == "" || cleaned == "" {
		return false
	}
	s.entries[name] = cleaned
	return true
}

// Description implements registry.DescriptionSource.
func (s *Set) Description(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	text, ok := s.entries[name]
	return text, ok
}

// Len returns the number of entries.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Names returns the entry names in sorted order.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge copies every entry of other into s, replacing existing names.
func (s *Set) Merge(other *Set) *Set {
	if other == nil {
		return s
	}
	for name, text := range other.entries {
		s.entries[name] = text
	}
	return s
}

// Decode reads a flat name: text mapping from a YAML or JSON document.
func Decode(doc source.Document) (*Set, error) {
	var entries map[string]string
	if err := doc.Decode(&entries); err != nil {
		return nil, fmt.Errorf("descriptions: %w", err)
	}
	return FromMap(entries), nil
}

// Load fetches src through loader and decodes it.
func Load(ctx context.Context, loader source.Loader, src source.Source) (*Set, error) {
	if loader == nil {
		return nil, fmt.Errorf("descriptions: loader is required")
	}
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("descriptions: %w", err)
	}
	return Decode(doc)
}

// Sanitize strips markup from text and normalises surrounding whitespace.
func Sanitize(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}
	cleaned := sanitizer().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func sanitizer() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}
