package platform

import (
	"log/slog"

	"github.com/aretw0/pkgrewrite/pkg/adapters/fs"
	"github.com/aretw0/pkgrewrite/pkg/core"
)

// options holds the internal configuration for the rewrite service.
type options struct {
	repository  core.Repository
	logger      *slog.Logger
	rule        core.Rewrite
	writeMode   fs.WriteMode
	serializers map[string]fs.Serializer
}

// Option defines a functional option for configuring the rewrite service.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		repository:  nil,
		logger:      nil,
		rule:        core.DefaultRewrite(),
		writeMode:   fs.WriteAtomic,
		serializers: make(map[string]fs.Serializer),
	}
}

// WithName sets the value assigned to the "name" field.
// Defaults to "sejong-buffer".
func WithName(name string) Option {
	return func(o *options) {
		o.rule.Name = name
	}
}

// WithDroppedKeys replaces the list of fields removed from the manifest.
// Defaults to ["files"]. Passing no keys disables removal.
func WithDroppedKeys(keys ...string) Option {
	return func(o *options) {
		o.rule.Drop = append([]string(nil), keys...)
	}
}

// WithWriteMode selects how the manifest file is replaced.
// Defaults to fs.WriteAtomic.
func WithWriteMode(mode fs.WriteMode) Option {
	return func(o *options) {
		o.writeMode = mode
	}
}

// WithSerializer registers a serializer for a file extension (e.g. ".json5").
func WithSerializer(ext string, s fs.Serializer) Option {
	return func(o *options) {
		o.serializers[ext] = s
	}
}

// WithLogger sets the logger for the service and the default repository.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. a mock).
// If provided, the filesystem adapter and its options are skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}
