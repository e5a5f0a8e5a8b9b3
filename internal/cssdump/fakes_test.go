package cssdump

import (
	"errors"
	"io"
	"os"
	"sync"
)

// memStorage is an in-memory Storage. failDir and failWrite force errors
// for the named paths.
type memStorage struct {
	mu        sync.Mutex
	dirs      map[string]bool
	files     map[string][]byte
	failDir   string
	failWrite string
}

func newMemStorage() *memStorage {
	return &memStorage{dirs: make(map[string]bool), files: make(map[string][]byte)}
}

func (m *memStorage) EnsureDir(dir string) error {
	if dir == m.failDir {
		return errors.New("permission denied")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[dir] = true
	return nil
}

func (m *memStorage) WriteFile(path string, data []byte) error {
	if path == m.failWrite {
		return errors.New("disk full")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = append([]byte(nil), data...)
	return nil
}

func (m *memStorage) Put(path string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return m.WriteFile(path, data)
}

func (m *memStorage) Get(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

// fixedName names every asset "abc1234".
var fixedName = NamerFunc(func(string) string { return "abc1234" })
