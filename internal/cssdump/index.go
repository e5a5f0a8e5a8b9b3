package cssdump

import (
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Recorder is notified of every resource copy written by the rewriter.
type Recorder interface {
	Record(res ResolvedResource)
}

// ManifestEntry records one materialized resource.
type ManifestEntry struct {
	Source      string `yaml:"source"`
	AssetName   string `yaml:"asset_name"`
	Destination string `yaml:"destination"`
}

// AssetIndex is a caller-owned naming table keyed by project-relative path.
// It memoizes the names of an underlying Namer and records every resource
// written during a run. Safe for concurrent use.
type AssetIndex struct {
	namer Namer

	mu      sync.Mutex
	names   map[string]string        // relative path → asset name
	entries map[string]ManifestEntry // destination → entry
}

// NewAssetIndex creates an empty index naming through namer
// (HashNamer when nil).
func NewAssetIndex(namer Namer) *AssetIndex {
	if namer == nil {
		namer = HashNamer{}
	}
	return &AssetIndex{
		namer:   namer,
		names:   make(map[string]string),
		entries: make(map[string]ManifestEntry),
	}
}

// AssetName returns the memoized, sanitized name for relativePath.
func (idx *AssetIndex) AssetName(relativePath string) string {
	key := ParseSegments(relativePath).Clean().String()

	idx.mu.Lock()
	defer idx.mu.Unlock()
	if name, ok := idx.names[key]; ok {
		return name
	}
	name := SanitizeAssetName(idx.namer.AssetName(key))
	if name == "" {
		name = HashNamer{}.AssetName(key)
	}
	idx.names[key] = name
	return name
}

// Record implements Recorder. Re-recording a destination keeps one entry.
func (idx *AssetIndex) Record(res ResolvedResource) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries[res.DestinationPath] = ManifestEntry{
		Source:      res.RelativePath,
		AssetName:   res.AssetName,
		Destination: res.DestinationPath,
	}
}

// Manifest returns the recorded entries sorted by source, then destination.
func (idx *AssetIndex) Manifest() []ManifestEntry {
	idx.mu.Lock()
	out := make([]ManifestEntry, 0, len(idx.entries))
	for _, e := range idx.entries {
		out = append(out, e)
	}
	idx.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Destination < out[j].Destination
	})
	return out
}

// MarshalManifest renders Manifest as YAML.
func (idx *AssetIndex) MarshalManifest() ([]byte, error) {
	return yaml.Marshal(struct {
		Resources []ManifestEntry `yaml:"resources"`
	}{Resources: idx.Manifest()})
}
