package document

// Value represents a single node in a resolved contract tree.
// It holds one of:
//
//   - nil (null)
//   - bool
//   - int, int64, or float64 (numbers, as decoded by the YAML parser)
//   - string
//   - []Value (sequence, ordered)
//   - *Mapping (mapping, key order preserved)
//
// Every load produces a fresh tree; values are never shared between calls.
type Value interface{}

// Mapping is an insertion-ordered map from string keys to values.
// Keys are unique; setting an existing key replaces its value in place
// without changing its position.
type Mapping struct {
	keys   []string
	values map[string]Value
}

// NewMapping creates a new empty mapping.
func NewMapping() *Mapping {
	return &Mapping{
		values: make(map[string]Value),
	}
}

// Set stores a value under the given key.
// A new key is appended to the key order; an existing key keeps its position.
func (m *Mapping) Set(key string, value Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get retrieves the value stored under the given key.
func (m *Mapping) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether the mapping contains the given key.
func (m *Mapping) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Keys returns the mapping's keys in insertion order.
// The returned slice is a copy and may be modified by the caller.
func (m *Mapping) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of keys in the mapping.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// Equal reports whether two values are structurally equal.
// Mappings compare equal when they hold the same keys in the same order
// with equal values; sequences compare element-wise. Numbers compare by
// dynamic type, so int(1) and float64(1) are not equal.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case *Mapping:
		bv, ok := b.(*Mapping)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for i, key := range av.keys {
			if bv.keys[i] != key {
				return false
			}
			if !Equal(av.values[key], bv.values[key]) {
				return false
			}
		}
		return true
	case []Value:
		bv, ok := b.([]Value)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
