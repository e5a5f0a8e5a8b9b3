package cssdump

import (
	"crypto/sha1" //nolint:gosec // G505: names only, not a security boundary
	"encoding/hex"

	sanitize "github.com/mrz1836/go-sanitize"
)

// Namer assigns the canonical asset name for a project-relative resource path.
// Implementations must be deterministic.
type Namer interface {
	AssetName(relativePath string) string
}

// NamerFunc adapts a plain function to Namer.
type NamerFunc func(relativePath string) string

// AssetName implements Namer.
func (f NamerFunc) AssetName(relativePath string) string { return f(relativePath) }

// HashNamer names assets by the first seven hex digits of the SHA-1 of their
// relative path.
type HashNamer struct{}

// AssetName implements Namer.
func (HashNamer) AssetName(relativePath string) string {
	sum := sha1.Sum([]byte(relativePath)) //nolint:gosec // G401
	return hex.EncodeToString(sum[:])[:7]
}

// SanitizeAssetName keeps only [a-zA-Z0-9_-] so a name can never introduce
// path separators into a destination filename.
func SanitizeAssetName(name string) string {
	return sanitize.PathName(name)
}
