package cssdump

import (
	"path"
	"strings"
)

// Segments is a slash-separated path split into its components.
// Empty and "." components are dropped on parse; ".." is kept until Clean.
type Segments struct {
	Absolute bool
	Parts    []string
}

// ParseSegments splits p into Segments. Backslashes are treated as separators.
func ParseSegments(p string) Segments {
	p = ToPosix(p)
	s := Segments{Absolute: strings.HasPrefix(p, "/")}
	for _, part := range strings.Split(p, "/") {
		if part == "" || part == "." {
			continue
		}
		s.Parts = append(s.Parts, part)
	}
	return s
}

// Len returns the number of components.
func (s Segments) Len() int { return len(s.Parts) }

// Parent drops the last component. The parent of an empty path is itself.
func (s Segments) Parent() Segments {
	if len(s.Parts) == 0 {
		return s
	}
	return Segments{Absolute: s.Absolute, Parts: clonePartsN(s.Parts, len(s.Parts)-1)}
}

// HasPrefix reports whether the components of o lead the components of s.
// An empty relative path is a prefix of every path.
func (s Segments) HasPrefix(o Segments) bool {
	if o.Absolute && !s.Absolute {
		return false
	}
	if len(o.Parts) > len(s.Parts) {
		return false
	}
	for i, part := range o.Parts {
		if s.Parts[i] != part {
			return false
		}
	}
	return true
}

// TrimPrefix returns the relative remainder of s after o, or s unchanged
// when o is not a prefix.
func (s Segments) TrimPrefix(o Segments) Segments {
	if !s.HasPrefix(o) {
		return s
	}
	return Segments{Parts: clonePartsN(s.Parts[len(o.Parts):], len(s.Parts)-len(o.Parts))}
}

// Join appends o to s. Joining an absolute path replaces s.
func (s Segments) Join(o Segments) Segments {
	if o.Absolute {
		return Segments{Absolute: true, Parts: clonePartsN(o.Parts, len(o.Parts))}
	}
	parts := make([]string, 0, len(s.Parts)+len(o.Parts))
	parts = append(parts, s.Parts...)
	parts = append(parts, o.Parts...)
	return Segments{Absolute: s.Absolute, Parts: parts}
}

// Append adds literal components to the end of s.
func (s Segments) Append(parts ...string) Segments {
	return s.Join(Segments{Parts: parts})
}

// Clean folds ".." components into their parents. Leading ".." survive on
// relative paths and are discarded on absolute ones.
func (s Segments) Clean() Segments {
	out := make([]string, 0, len(s.Parts))
	for _, p := range s.Parts {
		if p == ".." {
			if n := len(out); n > 0 && out[n-1] != ".." {
				out = out[:n-1]
				continue
			}
			if s.Absolute {
				continue
			}
		}
		out = append(out, p)
	}
	return Segments{Absolute: s.Absolute, Parts: out}
}

// TrimLeadingParents drops any ".." components at the start of s.
func (s Segments) TrimLeadingParents() Segments {
	i := 0
	for i < len(s.Parts) && s.Parts[i] == ".." {
		i++
	}
	return Segments{Absolute: s.Absolute, Parts: clonePartsN(s.Parts[i:], len(s.Parts)-i)}
}

// String renders s with forward slashes. An empty relative path is "".
func (s Segments) String() string {
	joined := strings.Join(s.Parts, "/")
	if s.Absolute {
		return "/" + joined
	}
	return joined
}

func clonePartsN(parts []string, n int) []string {
	if n == 0 {
		return nil
	}
	out := make([]string, n)
	copy(out, parts[:n])
	return out
}

// ToPosix converts backslashes to forward slashes.
func ToPosix(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// IsStylesheet returns true when the path has a .css extension.
func IsStylesheet(filePath string) bool {
	return strings.ToLower(path.Ext(filePath)) == ".css"
}

// cutQuery splits a URL into its path and the trailing "?query" or
// "#fragment" (whichever comes first), if any.
func cutQuery(rawURL string) (string, string) {
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		return rawURL[:i], rawURL[i:]
	}
	return rawURL, ""
}
