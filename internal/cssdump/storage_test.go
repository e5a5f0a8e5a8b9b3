package cssdump

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageEnsureDirTwice(t *testing.T) {
	store := NewLocalStorage(t.TempDir())
	require.NoError(t, store.EnsureDir("web/img"))
	require.NoError(t, store.EnsureDir("web/img"), "an existing directory is not an error")
}

func TestLocalStorageEnsureDirConcurrent(t *testing.T) {
	store := NewLocalStorage(t.TempDir())
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.EnsureDir("web/fonts/deep")
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestLocalStorageEnsureDirOverFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "web"), []byte("x"), 0600))

	err := NewLocalStorage(root).EnsureDir("web/img")

	var fe *FatalError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, OpCreateDirectory, fe.Op)
	assert.Equal(t, "web/img", fe.Path)
}

func TestLocalStorageWriteFileNeedsDirectory(t *testing.T) {
	err := NewLocalStorage(t.TempDir()).WriteFile("missing/a.png", []byte("a"))

	var fe *FatalError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, OpWriteFile, fe.Op)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestLocalStoragePutAndGet(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStorage(root)

	require.NoError(t, store.Put("web/css/app.css", strings.NewReader("body{}")))
	got, err := store.Get("web/css/app.css")
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(got))

	abs := filepath.ToSlash(filepath.Join(root, "web", "css", "app.css"))
	got, err = store.Get(abs)
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(got), "absolute paths bypass the root")

	entries, err := os.ReadDir(filepath.Join(root, "web", "css"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStorageLoader(t *testing.T) {
	store := newMemStorage()
	store.files["a.png"] = []byte("a")
	loader := StorageLoader{Store: store}

	ok := loader.Load("a.png")
	assert.True(t, ok.OK())
	assert.Equal(t, []byte("a"), ok.Data)

	missing := loader.Load("b.png")
	assert.False(t, missing.OK())
	assert.ErrorIs(t, missing.Err, os.ErrNotExist)
}
