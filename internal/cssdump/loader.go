package cssdump

// LoadResult is the outcome of reading a referenced resource. Exactly one of
// Data or Err is meaningful.
type LoadResult struct {
	Data []byte
	Err  error
}

// OK reports whether the resource was read.
func (r LoadResult) OK() bool { return r.Err == nil }

// Loader reads the bytes of a referenced resource from its source location.
type Loader interface {
	Load(path string) LoadResult
}

// StorageLoader reads resources through a Storage.
type StorageLoader struct {
	Store Storage
}

// Load implements Loader.
func (l StorageLoader) Load(path string) LoadResult {
	data, err := l.Store.Get(path)
	if err != nil {
		return LoadResult{Err: err}
	}
	return LoadResult{Data: data}
}
