package schema

// Properties is an insertion-ordered name to schema mapping.
type Properties struct {
	names  []string
	values map[string]*Schema
}

// NewProperties returns an empty property set.
func NewProperties() *Properties {
	return &Properties{values: make(map[string]*Schema)}
}

// Set stores value under name. Replacing an existing name keeps its
// original position.
func (p *Properties) Set(name string, value *Schema) {
	if p.values == nil {
		p.values = make(map[string]*Schema)
	}
	if _, ok := p.values[name]; !ok {
		p.names = append(p.names, name)
	}
	p.values[name] = value
}

// Get returns the schema stored under name.
func (p *Properties) Get(name string) (*Schema, bool) {
	if p == nil {
		return nil, false
	}
	value, ok := p.values[name]
	return value, ok
}

// Names returns property names in insertion order.
func (p *Properties) Names() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.names...)
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.names)
}

// Each visits properties in insertion order.
func (p *Properties) Each(fn func(name string, value *Schema)) {
	if p == nil {
		return
	}
	for _, name := range p.names {
		fn(name, p.values[name])
	}
}

// Clone deep-copies the property set.
func (p *Properties) Clone() *Properties {
	if p == nil {
		return nil
	}
	out := &Properties{
		names:  append([]string(nil), p.names...),
		values: make(map[string]*Schema, len(p.values)),
	}
	for name, value := range p.values {
		out.values[name] = value.Clone()
	}
	return out
}
