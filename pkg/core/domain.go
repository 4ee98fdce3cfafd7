// Package core holds the manifest model, the rewrite rule and the
// service that applies it through a Repository.
package core

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Manifest is a top-level manifest object (package.json and friends).
// Fields keep the order in which they were first seen.
//
// Values are opaque to the core. A serializer stores whatever raw
// representation it parsed (json.RawMessage, *yaml.Node) and gets it back
// unchanged; values set by the core are plain Go values the serializer
// encodes itself.
type Manifest struct {
	fields *orderedmap.OrderedMap[string, any]
}

// NewManifest returns an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{fields: orderedmap.New[string, any]()}
}

// Set assigns value to key. An existing key keeps its position, a new one
// is appended.
func (m *Manifest) Set(key string, value any) {
	m.fields.Set(key, value)
}

// Get returns the value stored under key.
func (m *Manifest) Get(key string) (any, bool) {
	return m.fields.Get(key)
}

// Has reports whether key is present.
func (m *Manifest) Has(key string) bool {
	_, ok := m.fields.Get(key)
	return ok
}

// Delete removes key and reports whether it was present.
func (m *Manifest) Delete(key string) bool {
	_, ok := m.fields.Delete(key)
	return ok
}

// Len returns the number of fields.
func (m *Manifest) Len() int {
	return m.fields.Len()
}

// Keys returns the field names in order.
func (m *Manifest) Keys() []string {
	keys := make([]string, 0, m.fields.Len())
	for pair := m.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Each calls fn for every field in order and stops at the first error.
func (m *Manifest) Each(fn func(key string, value any) error) error {
	for pair := m.fields.Oldest(); pair != nil; pair = pair.Next() {
		if err := fn(pair.Key, pair.Value); err != nil {
			return err
		}
	}
	return nil
}
