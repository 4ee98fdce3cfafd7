package fs

import (
	"sort"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	WriteMode   string   `json:"write_mode"`
	Serializers []string `json:"serializers"`
	LastPath    string   `json:"last_path,omitempty"`
	LastFormat  string   `json:"last_format,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	serializers := make([]string, 0, len(r.serializers))
	for ext := range r.serializers {
		serializers = append(serializers, ext)
	}
	sort.Strings(serializers)

	return RepositoryState{
		WriteMode:   r.config.WriteMode.String(),
		Serializers: serializers,
		LastPath:    r.lastPath,
		LastFormat:  r.lastExt,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs-repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
