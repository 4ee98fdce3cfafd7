package pkgrewrite

import (
	"context"
	"log/slog"

	"github.com/aretw0/pkgrewrite/internal/platform"
	"github.com/aretw0/pkgrewrite/pkg/adapters/fs"
	"github.com/aretw0/pkgrewrite/pkg/core"
)

// --- Types ---

// Result describes a completed rewrite.
type Result = core.Result

// WriteMode selects how the manifest file is replaced.
type WriteMode = fs.WriteMode

const (
	// WriteAtomic writes a temp file and renames it over the manifest (default).
	WriteAtomic = fs.WriteAtomic
	// WriteInPlace truncates the manifest and writes into it.
	WriteInPlace = fs.WriteInPlace
)

// --- Configuration ---

// Option defines a functional option for configuring the rewriter.
type Option = platform.Option

// WithName sets the value assigned to the "name" field.
func WithName(name string) Option {
	return platform.WithName(name)
}

// WithDroppedKeys replaces the list of fields removed from the manifest.
func WithDroppedKeys(keys ...string) Option {
	return platform.WithDroppedKeys(keys...)
}

// WithWriteMode selects how the manifest file is replaced.
func WithWriteMode(mode WriteMode) Option {
	return platform.WithWriteMode(mode)
}

// WithSerializer registers a serializer for a file extension.
func WithSerializer(ext string, s fs.Serializer) Option {
	return platform.WithSerializer(ext, s)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// --- Factory ---

// New creates a new rewrite Service.
func New(opts ...Option) (*core.Service, error) {
	return platform.New(opts...)
}

// Rewrite rewrites the manifest at path with the given options.
func Rewrite(ctx context.Context, path string, opts ...Option) (Result, error) {
	svc, err := New(opts...)
	if err != nil {
		return Result{}, err
	}
	return svc.Rewrite(ctx, path)
}
