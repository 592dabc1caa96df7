package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore writes uploads under an explicitly configured base directory.
// The directory is passed in rather than read from a package global, so
// two instances can coexist and tests can point one at a temp dir.
type LocalStore struct {
	BaseDir string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %v", baseDir, err)
	}
	return &LocalStore{BaseDir: baseDir}, nil
}

// sanitize strips any path components from a client-supplied filename.
func sanitize(filename string) string {
	name := filepath.Base(filepath.Clean(filename))
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	if name == "." || name == "" {
		name = "upload"
	}
	return name
}

// Save streams r to disk under a unique name and returns the stored path
// and byte count.
func (s *LocalStore) Save(filename string, r io.Reader) (string, int64, error) {
	storedName := uuid.New().String() + "-" + sanitize(filename)
	path := filepath.Join(s.BaseDir, storedName)

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("failed to write %s: %v", path, err)
	}
	return path, size, nil
}

// Size reports the byte count of a previously stored file.
func (s *LocalStore) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
