package typedesc

// Identity returns the canonical identity of t. Two types are the same type
// iff their identities are equal and non-empty.
func Identity(t Type) string {
	if t == nil {
		return ""
	}
	return t.FullName()
}

// IsUnknown reports whether t is the unnameable sentinel (nil or an unbound
// generic parameter).
func IsUnknown(t Type) bool {
	return Identity(t) == ""
}

// Same reports whether a and b denote the same nameable type.
func Same(a, b Type) bool {
	id := Identity(a)
	return id != "" && id == Identity(b)
}

// IsSubclassOf reports whether base appears in t's base type chain. A type is
// not a subclass of itself.
func IsSubclassOf(t, base Type) bool {
	if t == nil || IsUnknown(base) {
		return false
	}
	seen := make(map[string]struct{})
	for cur := t.BaseType(); cur != nil; cur = cur.BaseType() {
		id := Identity(cur)
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
		if id == Identity(base) {
			return true
		}
	}
	return false
}

// Implements reports whether iface is an interface reachable from t through
// its interfaces, their inherited interfaces, or its base chain.
func Implements(t, iface Type) bool {
	if t == nil || iface == nil || !iface.IsInterface() || IsUnknown(iface) {
		return false
	}
	target := Identity(iface)
	seen := make(map[string]struct{})
	queue := []Type{t}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == nil {
			continue
		}
		id := Identity(cur)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		for _, next := range cur.Interfaces() {
			if Identity(next) == target {
				return true
			}
			queue = append(queue, next)
		}
		if base := cur.BaseType(); base != nil {
			queue = append(queue, base)
		}
	}
	return false
}

// FlattenProperties merges declared properties with those inherited from the
// base chain and directly implemented interfaces. A property reached twice
// through the same declaring type (interface diamonds) is kept once.
func FlattenProperties(t Type) []Property {
	if t == nil {
		return nil
	}
	var (
		out  []Property
		seen = make(map[string]struct{})
	)
	add := func(props []Property) {
		for _, prop := range props {
			id := Identity(prop.DeclaringType) + "#" + prop.Name
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, prop)
		}
	}
	add(t.DeclaredProperties())
	if base := t.BaseType(); base != nil {
		add(base.Properties())
	}
	for _, iface := range t.Interfaces() {
		if iface != nil {
			add(iface.Properties())
		}
	}
	return out
}
