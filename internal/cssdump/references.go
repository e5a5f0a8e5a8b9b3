package cssdump

import (
	"regexp"
	"strings"
)

// Kind classifies a url() reference.
type Kind int

const (
	KindDocumentRelative Kind = iota
	KindAbsolute
	KindProtocolRelative
	KindDataURI
	KindRootRelative
	// KindFragment covers empty references and same-document "#id" targets.
	KindFragment
)

func (k Kind) String() string {
	switch k {
	case KindDocumentRelative:
		return "document-relative"
	case KindAbsolute:
		return "absolute"
	case KindProtocolRelative:
		return "protocol-relative"
	case KindDataURI:
		return "data-uri"
	case KindRootRelative:
		return "root-relative"
	case KindFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Untouched reports whether references of this kind are never rewritten.
func (k Kind) Untouched() bool {
	return k == KindAbsolute || k == KindProtocolRelative || k == KindDataURI || k == KindFragment
}

// One pattern per quoting style, tried as alternatives so a single pass sees
// every token in document order.
var reURL = regexp.MustCompile(`(?i)url\(\s*(?:"([^"]*)"|'([^']*)'|([^)'"]*?))\s*\)`)

// Reference is one url() token found in a stylesheet.
type Reference struct {
	Raw   string // whole token, e.g. url("a.png")
	URL   string // text inside the token, without quotes
	Quote string // `"`, `'` or ""
	Kind  Kind

	// byte offsets into the scanned content
	Start, End       int
	URLStart, URLEnd int
}

// FindReferences returns every url() token in content, left to right.
func FindReferences(content string) []Reference {
	matches := reURL.FindAllStringSubmatchIndex(content, -1)
	refs := make([]Reference, 0, len(matches))
	for _, m := range matches {
		ref := Reference{Start: m[0], End: m[1], Raw: content[m[0]:m[1]]}
		switch {
		case m[2] >= 0:
			ref.Quote, ref.URLStart, ref.URLEnd = `"`, m[2], m[3]
		case m[4] >= 0:
			ref.Quote, ref.URLStart, ref.URLEnd = `'`, m[4], m[5]
		default:
			ref.URLStart, ref.URLEnd = m[6], m[7]
		}
		ref.URL = content[ref.URLStart:ref.URLEnd]
		ref.Kind = Classify(ref.URL)
		refs = append(refs, ref)
	}
	return refs
}

// Classify decides how a reference is treated by the rewriter.
func Classify(rawURL string) Kind {
	switch {
	case rawURL == "" || strings.HasPrefix(rawURL, "#"):
		return KindFragment
	case strings.HasPrefix(rawURL, "//"):
		return KindProtocolRelative
	case strings.Contains(rawURL, "://"):
		return KindAbsolute
	case strings.HasPrefix(strings.ToLower(rawURL), "data:"):
		return KindDataURI
	case strings.HasPrefix(rawURL, "/"):
		return KindRootRelative
	default:
		return KindDocumentRelative
	}
}
