package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Result describes a completed rewrite.
type Result struct {
	Path    string
	Changes Changes
	Bytes   int
}

// Service applies a Rewrite to manifests held by a Repository.
type Service struct {
	repo    Repository
	rule    Rewrite
	logger  *slog.Logger
	mu      sync.RWMutex
	lastRun *Result
}

// NewService creates a new Service. A nil logger discards output.
func NewService(repo Repository, rule Rewrite, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, rule: rule, logger: logger}
}

// Rule returns the rewrite applied by the service.
func (s *Service) Rule() Rewrite {
	return s.rule
}

// Rewrite loads the manifest at path, applies the rule and writes it back.
func (s *Service) Rewrite(ctx context.Context, path string) (Result, error) {
	if path == "" {
		return Result{}, ErrEmptyPath
	}

	m, err := s.repo.Load(ctx, path)
	if err != nil {
		return Result{}, fmt.Errorf("load %s: %w", path, err)
	}

	changes := s.rule.Apply(m)
	s.logger.Debug("manifest edited",
		"path", path,
		"had_name", changes.HadName,
		"previous_name", changes.PreviousName,
		"dropped", changes.Dropped,
	)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	n, err := s.repo.Save(ctx, path, m)
	if err != nil {
		return Result{}, fmt.Errorf("save %s: %w", path, err)
	}

	res := Result{Path: path, Changes: changes, Bytes: n}
	s.mu.Lock()
	s.lastRun = &res
	s.mu.Unlock()

	s.logger.Debug("manifest written", "path", path, "bytes", n)
	return res, nil
}
