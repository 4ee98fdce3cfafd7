package core

// Defaults applied to the generated npm manifest of sejong-buffer.
const (
	NameKey     = "name"
	DefaultName = "sejong-buffer"
)

// DefaultDroppedKeys lists the fields removed by default.
// "files" is an allow-list that would hide the wasm bundle from the registry.
func DefaultDroppedKeys() []string {
	return []string{"files"}
}

// Rewrite describes the edit applied to a manifest.
type Rewrite struct {
	// Name is assigned to the "name" field, created if absent.
	Name string
	// Drop lists fields removed when present. Missing fields are ignored.
	Drop []string
}

// DefaultRewrite returns the rule used by the release pipeline.
func DefaultRewrite() Rewrite {
	return Rewrite{Name: DefaultName, Drop: DefaultDroppedKeys()}
}

// Changes reports what Apply did to a manifest.
type Changes struct {
	HadName      bool     `json:"had_name"`
	PreviousName any      `json:"previous_name,omitempty"`
	Dropped      []string `json:"dropped,omitempty"`
}

// Apply edits m in place: name first, then the drops.
func (r Rewrite) Apply(m *Manifest) Changes {
	var c Changes
	if prev, ok := m.Get(NameKey); ok {
		c.HadName = true
		c.PreviousName = prev
	}
	m.Set(NameKey, r.Name)

	for _, key := range r.Drop {
		if m.Delete(key) {
			c.Dropped = append(c.Dropped, key)
		}
	}
	return c
}
