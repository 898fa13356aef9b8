// Package tempfile manages the scratch files the processing pipeline writes
// under a fixed working directory. Paths are made collision-resistant with a
// random suffix rather than locking: each allocation is exclusive to the
// item that requested it.
package tempfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"audio2text/internal/app/util/files"
)

// DefaultDir is the working directory used when none is configured.
const DefaultDir = "temp_audio"

// Store allocates and releases scratch files under one working directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created on first
// allocation, not here, so constructing a store is side-effect free.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{dir: dir}
}

// Dir returns the working directory.
func (s *Store) Dir() string {
	return s.dir
}

// Allocate creates an empty scratch file named from the sanitized base name,
// an 8-hex random suffix and ext, and returns its path.
func (s *Store) Allocate(baseName, ext string) (string, error) {
	if err := files.EnsureDir(s.dir); err != nil {
		return "", err
	}

	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	name := fmt.Sprintf("%s_%s%s", files.SanitizeBaseName(baseName), suffix, ext)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to allocate temp file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// Release deletes the file at path. A missing file is a no-op so that
// release is idempotent.
func (s *Store) Release(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to release temp file %s: %w", path, err)
	}
	return nil
}
