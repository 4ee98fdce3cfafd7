package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Name           string   `json:"name"`
	Drop           []string `json:"drop"`
	RepositoryType string   `json:"repository_type"`
	LastPath       string   `json:"last_path,omitempty"`
	LastBytes      int      `json:"last_bytes,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	repoType := "unknown"
	if s.repo != nil {
		repoType = "repository"
		if comp, ok := s.repo.(introspection.Component); ok {
			repoType = comp.ComponentType()
		}
	}

	st := ServiceState{
		Name:           s.rule.Name,
		Drop:           s.rule.Drop,
		RepositoryType: repoType,
	}
	if s.lastRun != nil {
		st.LastPath = s.lastRun.Path
		st.LastBytes = s.lastRun.Bytes
	}
	return st
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
