package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aretw0/pkgrewrite/pkg/core"
)

// DefaultFilePerm is used when the target file does not exist yet.
const DefaultFilePerm os.FileMode = 0644

// Repository implements core.Repository on the local filesystem.
// The serializer is picked from the file extension; unknown extensions
// are treated as JSON.
type Repository struct {
	config      Config
	serializers map[string]Serializer
	logger      *slog.Logger

	mu       sync.RWMutex
	lastPath string
	lastExt  string
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Logger    *slog.Logger
	WriteMode WriteMode
	// Serializers overrides or extends DefaultSerializers, keyed by extension (".json").
	Serializers map[string]Serializer
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	serializers := DefaultSerializers()
	for ext, s := range config.Serializers {
		serializers[normalizeExt(ext)] = s
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Repository{
		config:      config,
		serializers: serializers,
		logger:      logger,
	}
}

// Load reads the manifest at path. The file handle is released before
// Load returns, whatever the outcome.
func (r *Repository) Load(ctx context.Context, path string) (*core.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext, s := r.serializerFor(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	m, err := s.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	r.logger.Debug("manifest loaded", "path", path, "format", ext, "fields", m.Len())
	return m, nil
}

// Save serializes m and replaces the file at path, keeping its permission bits.
func (r *Repository) Save(ctx context.Context, path string, m *core.Manifest) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	ext, s := r.serializerFor(path)
	data, err := s.Serialize(m)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize manifest: %w", err)
	}

	perm := DefaultFilePerm
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	switch r.config.WriteMode {
	case WriteInPlace:
		err = writeFileInPlace(path, data, perm)
	default:
		err = writeFileAtomic(path, data, perm)
	}
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	r.lastPath = path
	r.lastExt = ext
	r.mu.Unlock()

	r.logger.Debug("manifest saved", "path", path, "format", ext, "mode", r.config.WriteMode.String(), "bytes", len(data))
	return len(data), nil
}

// serializerFor returns the serializer registered for the extension of path,
// falling back to JSON.
func (r *Repository) serializerFor(path string) (string, Serializer) {
	ext := normalizeExt(filepath.Ext(path))
	if s, ok := r.serializers[ext]; ok {
		return ext, s
	}
	if s, ok := r.serializers[".json"]; ok {
		return ".json", s
	}
	return ".json", NewJSONSerializer()
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

var _ core.Repository = (*Repository)(nil)
