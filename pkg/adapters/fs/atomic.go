package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// TempFilePrefix is the prefix used for temporary atomic write files.
	TempFilePrefix = "pkgrewrite-tmp-"
)

// WriteMode selects how a manifest replaces the file it was read from.
type WriteMode int

const (
	// WriteAtomic writes a sibling temp file and renames it over the target.
	// The original stays intact if anything fails.
	WriteAtomic WriteMode = iota
	// WriteInPlace truncates the target and writes into it. A failure
	// mid-write can leave the file empty or truncated.
	WriteInPlace
)

func (m WriteMode) String() string {
	switch m {
	case WriteAtomic:
		return "atomic"
	case WriteInPlace:
		return "in-place"
	default:
		return fmt.Sprintf("WriteMode(%d)", int(m))
	}
}

// writeFileAtomic writes data to a file atomically by writing to a temp file
// and then renaming it to the target filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	// Rename replaces a symlink itself, so write through to what it points at.
	if resolved, err := filepath.EvalSymlinks(filename); err == nil {
		filename = resolved
	}
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}

	return nil
}

// writeFileInPlace truncates filename and writes data into it.
func writeFileInPlace(filename string, data []byte, perm os.FileMode) (err error) {
	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("failed to open %s for writing: %w", filename, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", filename, cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
