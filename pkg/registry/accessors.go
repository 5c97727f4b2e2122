package registry

import "github.com/goliatone/go-schemagen/pkg/schema"

// Lookup returns a copy of the completed schema stored under key.
// Placeholders of objects still under construction are not visible.
func (r *Registry) Lookup(key string) (*schema.Schema, bool) {
	if _, pending := r.building[key]; pending {
		return nil, false
	}
	node, ok := r.references[key]
	if !ok {
		return nil, false
	}
	return node.Clone(), true
}

// Has reports whether key is present, including placeholders.
func (r *Registry) Has(key string) bool {
	_, ok := r.references[key]
	return ok
}

// Keys returns completed reference keys in insertion order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.journal))
	for _, key := range r.journal {
		if _, pending := r.building[key]; pending {
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

// Len returns the number of completed references.
func (r *Registry) Len() int {
	return len(r.references) - len(r.building)
}

// References returns a deep copy of the completed reference table.
func (r *Registry) References() map[string]*schema.Schema {
	out := make(map[string]*schema.Schema, len(r.references))
	for _, key := range r.Keys() {
		out[key] = r.references[key].Clone()
	}
	return out
}
