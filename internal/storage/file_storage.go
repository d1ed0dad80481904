package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStorage manages downloaded assets under a single root directory.
// All names passed to its methods are paths relative to that root.
type FileStorage struct {
	root string
}

// NewFileStorage creates a new FileStorage rooted at dir.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{root: filepath.Clean(dir)}
}

// Exists reports whether the named asset is already present.
func (s *FileStorage) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.root, name))
	return err == nil
}

// Size returns the size of the named asset in bytes.
func (s *FileStorage) Size(name string) (int64, error) {
	info, err := os.Stat(filepath.Join(s.root, name))
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// WriteFile writes a fully-buffered asset body to the named path, creating
// parent directories as needed. The caller only hands over complete
// bodies, so a partial file is never left behind by a failed fetch.
func (s *FileStorage) WriteFile(name string, data []byte) error {
	path := filepath.Join(s.root, name)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// TotalSize walks the root and returns the aggregate size of all stored
// assets, for the end-of-run report.
func (s *FileStorage) TotalSize() (int64, error) {
	var total int64

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("walk storage root: %w", err)
	}

	return total, nil
}

// Root returns the storage root directory.
func (s *FileStorage) Root() string {
	return s.root
}
