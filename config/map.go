package config

import "strings"

// ─────────────────────────────────────────────────────────────────────────────
// Dot-notation access for nested maps
//
// Map resolves keys either through nested maps or through literal keys that
// themselves contain dots, so both of these describe the same setting:
//
//	Map{"hashing": map[string]any{"bcrypt": map[string]any{"rounds": 12}}}
//	Map{"hashing.bcrypt": map[string]any{"rounds": 12}}
// ─────────────────────────────────────────────────────────────────────────────

// Map is an in-memory [Source] backed by a nested map[string]any.
//
// Map is not safe for concurrent mutation; populate it before handing it to
// a registry and treat it as read-only afterwards.
type Map map[string]any

// Get returns the value at the dot-notation key, or nil when absent.
//
//	m.Get("hashing.bcrypt.rounds") // 12
func (m Map) Get(key string) any {
	v, _ := lookup(m, key)
	return v
}

// IsSet reports whether the dot-notation key exists in m.
func (m Map) IsSet(key string) bool {
	_, ok := lookup(m, key)
	return ok
}

// Set writes value at the dot-notation key, creating intermediate maps as
// needed.
//
//	m.Set("hashing.argon.memory", 2048)
func (m Map) Set(key string, value any) {
	segments := strings.SplitN(key, ".", 2)
	if len(segments) == 1 {
		m[key] = value
		return
	}
	seg, rest := segments[0], segments[1]
	nested, ok := asMap(m[seg])
	if !ok {
		nested = make(map[string]any)
		m[seg] = nested
	}
	Map(nested).Set(rest, value)
}

// Dot flattens m into a single-level map keyed by dot-notation paths.
//
//	Map{"a": map[string]any{"b": 1}}.Dot() // → map[string]any{"a.b": 1}
func (m Map) Dot() map[string]any {
	out := make(map[string]any)
	dotFlatten("", m, out)
	return out
}

func dotFlatten(prefix string, m map[string]any, out map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := asMap(v); ok {
			dotFlatten(key, nested, out)
		} else {
			out[key] = v
		}
	}
}

// lookup tries the whole key as a literal first, then every dot boundary from
// left to right, descending into nested maps.
func lookup(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for i := 0; i < len(key); i++ {
		if key[i] != '.' {
			continue
		}
		nested, ok := asMap(m[key[:i]])
		if !ok {
			continue
		}
		if v, ok := lookup(nested, key[i+1:]); ok {
			return v, true
		}
	}
	return nil, false
}

func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case Map:
		return t, true
	default:
		return nil, false
	}
}
