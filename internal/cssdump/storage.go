package cssdump

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// Storage abstracts the filesystem the dump step reads from and writes to.
// Paths use forward slashes; relative paths are resolved against the
// storage root and absolute paths are used as given.
type Storage interface {
	// EnsureDir creates dir and its parents. An existing directory is success.
	EnsureDir(dir string) error
	// WriteFile stores data at path. Parent directories must exist.
	WriteFile(path string, data []byte) error
	// Put streams r into path atomically, creating parent directories.
	Put(path string, r io.Reader) error
	// Get returns the full content of path.
	Get(path string) ([]byte, error)
}

// LocalStorage is the default Storage backed by the OS filesystem.
type LocalStorage struct {
	rootDir string
}

// NewLocalStorage returns a LocalStorage rooted at dir. An empty dir means
// the working directory.
func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{rootDir: dir}
}

// abs converts a forward-slash path to an OS path.
func (s *LocalStorage) abs(path string) string {
	p := filepath.FromSlash(path)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.rootDir, p)
}

// EnsureDir creates dir, tolerating concurrent creation by other writers.
func (s *LocalStorage) EnsureDir(dir string) error {
	if err := os.MkdirAll(s.abs(dir), 0750); err != nil {
		return &FatalError{Op: OpCreateDirectory, Path: dir, Err: err}
	}
	return nil
}

// WriteFile writes data atomically via a temp file in the target directory.
func (s *LocalStorage) WriteFile(path string, data []byte) error {
	if err := s.write(s.abs(path), bytes.NewReader(data)); err != nil {
		return &FatalError{Op: OpWriteFile, Path: path, Err: err}
	}
	return nil
}

// Put streams r into path atomically, creating parent directories as needed.
func (s *LocalStorage) Put(path string, r io.Reader) error {
	if err := s.EnsureDir(filepath.ToSlash(filepath.Dir(s.abs(path)))); err != nil {
		return err
	}
	if err := s.write(s.abs(path), r); err != nil {
		return &FatalError{Op: OpWriteFile, Path: path, Err: err}
	}
	return nil
}

// Get returns the full content of path.
func (s *LocalStorage) Get(path string) ([]byte, error) {
	return os.ReadFile(s.abs(path)) //nolint:gosec // G304: paths come from the build configuration
}

// write copies r into fullPath via temp file + rename so readers never see a
// partially written file.
func (s *LocalStorage) write(fullPath string, r io.Reader) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(fullPath), ".cssdump-*")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpName) // no-op if already renamed
	}()
	if _, err := io.Copy(tmpFile, r); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	return os.Rename(tmpName, fullPath)
}
