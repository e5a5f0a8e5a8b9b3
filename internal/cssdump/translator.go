package cssdump

import (
	"path"
	"strings"

	"golang.org/x/net/idna"
)

// Location describes where a stylesheet comes from and where it is going.
// Empty SourcePath or TargetPath means the path is unknown.
type Location struct {
	SourceRoot      string
	SourcePath      string
	TargetPath      string
	SourceDirectory string
}

// Unchanged reports whether the stylesheet stays where it is, in which case
// no reference needs rewriting.
func (l Location) Unchanged() bool {
	return l.SourcePath == "" || l.TargetPath == "" || l.SourcePath == l.TargetPath
}

// RewriteContext is computed once per stylesheet.
type RewriteContext struct {
	// Host is "scheme://authority/" when the source root is a URL, else "".
	Host string
	// Prefix leads from the target's directory back to the source's directory.
	Prefix string
}

// ComputeContext works out how to get from targetPath back to sourcePath.
func ComputeContext(sourceRoot, sourcePath, targetPath string) RewriteContext {
	if strings.Contains(sourceRoot, "://") {
		return hostedContext(sourceRoot, sourcePath)
	}
	// same host assumed
	return RewriteContext{Prefix: relativePrefix(sourcePath, targetPath)}
}

func hostedContext(sourceRoot, sourcePath string) RewriteContext {
	joined := strings.TrimRight(sourceRoot, "/") + "/" + strings.TrimLeft(sourcePath, "/")
	scheme, rest, _ := strings.Cut(joined, "://")
	authority, p, _ := strings.Cut(rest, "/")

	prefix := "/"
	if strings.Contains(p, "/") {
		prefix = path.Dir(p) + "/"
	}
	return RewriteContext{
		Host:   scheme + "://" + asciiHost(authority) + "/",
		Prefix: prefix,
	}
}

// asciiHost converts an internationalized host to punycode, keeping any port.
// Hosts idna rejects are returned verbatim.
func asciiHost(authority string) string {
	hostname, port := authority, ""
	if i := strings.LastIndexByte(authority, ':'); i >= 0 && !strings.Contains(authority[i:], "]") {
		hostname, port = authority[:i], authority[i:]
	}
	ascii, err := idna.ToASCII(hostname)
	if err != nil || ascii == "" {
		return authority
	}
	return ascii + port
}

// relativePrefix pops directories off the target until it fits in the source.
func relativePrefix(sourcePath, targetPath string) string {
	sourceDir := path.Dir(ToPosix(sourcePath))
	if sourceDir == "." {
		return strings.Repeat("../", strings.Count(ToPosix(targetPath), "/"))
	}
	targetDir := path.Dir(ToPosix(targetPath))
	if targetDir == "." {
		return sourceDir + "/"
	}

	src := ParseSegments(sourceDir)
	dst := ParseSegments(targetDir)

	var b strings.Builder
	for !src.HasPrefix(dst) {
		dst = dst.Parent()
		b.WriteString("../")
		if dst.Len() == 0 {
			break
		}
	}
	if rest := src.TrimPrefix(dst); rest.Len() > 0 {
		b.WriteString(strings.Join(rest.Parts, "/"))
		b.WriteString("/")
	}
	return b.String()
}
