package core

import "context"

// Repository defines the contract for loading and storing manifests.
// Adhering to this interface keeps the core independent of where a
// manifest lives and which format it is written in.
type Repository interface {
	// Load reads and parses the manifest at path.
	// Nothing is written when Load fails.
	Load(ctx context.Context, path string) (*Manifest, error)

	// Save serializes m and replaces the manifest at path with it.
	// It returns the number of bytes written.
	Save(ctx context.Context, path string, m *Manifest) (int, error)
}
