package cssdump

import (
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DefaultPublishDir is the directory under the project root that receives
// resource copies.
const DefaultPublishDir = "web"

// Options configures a Rewriter.
type Options struct {
	// ProjectRoot anchors relative source directories and the publish dir.
	ProjectRoot string
	// PublishDir is relative to ProjectRoot. Defaults to DefaultPublishDir.
	PublishDir string
	// KeepQuery reattaches a reference's ?query or #fragment to the
	// rewritten URL. Off by default: it is dropped.
	KeepQuery bool
}

// ResolvedResource is a document-relative reference after resolution.
type ResolvedResource struct {
	OriginalPath    string // where the resource is read from
	RelativePath    string // OriginalPath relative to the project root
	AssetName       string
	DestinationPath string // where the copy is written
	RewrittenURL    string // replacement for the reference text
}

// Rewriter rewrites url() references of one stylesheet and writes a copy of
// every document-relative resource under the publish directory.
type Rewriter struct {
	opts   Options
	root   Segments
	names  Namer
	loader Loader
	store  Storage
	log    *zap.Logger
}

// NewRewriter wires a Rewriter. A nil namer uses HashNamer and a nil logger
// discards output.
func NewRewriter(opts Options, names Namer, loader Loader, store Storage, log *zap.Logger) *Rewriter {
	if opts.PublishDir == "" {
		opts.PublishDir = DefaultPublishDir
	}
	if names == nil {
		names = HashNamer{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Rewriter{
		opts:   opts,
		root:   ParseSegments(opts.ProjectRoot).Clean(),
		names:  names,
		loader: loader,
		store:  store,
		log:    log,
	}
}

// Rewrite substitutes every url() reference in content in a single pass.
// A *FatalError aborts the pass; the partial result is discarded.
func (r *Rewriter) Rewrite(content, sourceDirectory string, rc RewriteContext) (string, error) {
	refs := FindReferences(content)
	if len(refs) == 0 {
		return content, nil
	}

	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, ref := range refs {
		replacement, err := r.rewriteReference(ref, sourceDirectory, rc)
		if err != nil {
			return "", err
		}
		b.WriteString(content[last:ref.URLStart])
		b.WriteString(replacement)
		last = ref.URLEnd
	}
	b.WriteString(content[last:])
	return b.String(), nil
}

func (r *Rewriter) rewriteReference(ref Reference, sourceDirectory string, rc RewriteContext) (string, error) {
	switch ref.Kind {
	case KindRootRelative:
		if rc.Host == "" {
			return ref.URL, nil
		}
		return strings.TrimSuffix(rc.Host, "/") + ref.URL, nil
	case KindDocumentRelative:
		res := r.Resolve(ref.URL, sourceDirectory)
		if err := r.materialize(res); err != nil {
			return "", err
		}
		r.log.Debug("reference rewritten",
			zap.String("from", ref.URL),
			zap.String("to", res.RewrittenURL))
		return res.RewrittenURL, nil
	default:
		return ref.URL, nil
	}
}

// Resolve computes where a document-relative reference lives, where its copy
// goes and what the reference becomes. It has no side effects.
func (r *Rewriter) Resolve(rawURL, sourceDirectory string) ResolvedResource {
	// Climb while the cursor keeps at least two segments; surplus "../"
	// stays in the URL.
	cursor := ParseSegments(sourceDirectory)
	remaining := rawURL
	for strings.HasPrefix(remaining, "../") && cursor.Len() >= 2 {
		cursor = cursor.Parent()
		remaining = remaining[len("../"):]
	}
	if !cursor.Absolute && !filepath.IsAbs(filepath.FromSlash(sourceDirectory)) {
		cursor = r.root.Join(cursor)
	}

	filePart, _ := cutQuery(remaining)
	original := cursor.Join(ParseSegments(filePart)).Clean()

	relative := original.String()
	if r.root.Len() > 0 && original.HasPrefix(r.root) {
		relative = original.TrimPrefix(r.root).String()
	}
	name := r.names.AssetName(relative)

	dir, file := path.Split(filePart)
	fileName := name + "_" + file

	dest := r.root.
		Join(ParseSegments(r.opts.PublishDir)).
		Join(ParseSegments(dir).Clean().TrimLeadingParents()).
		Append(fileName)

	urlPath, suffix := cutQuery(rawURL)
	urlDir, _ := path.Split(urlPath)
	rewritten := urlDir + fileName
	if r.opts.KeepQuery {
		rewritten += suffix
	}

	return ResolvedResource{
		OriginalPath:    original.String(),
		RelativePath:    relative,
		AssetName:       name,
		DestinationPath: dest.String(),
		RewrittenURL:    rewritten,
	}
}

// materialize copies the resource to its destination. A resource that cannot
// be read is skipped with a warning; directory and write failures are fatal.
func (r *Rewriter) materialize(res ResolvedResource) error {
	dir := path.Dir(res.DestinationPath)
	if err := r.store.EnsureDir(dir); err != nil {
		return asFatal(OpCreateDirectory, dir, err)
	}

	loaded := r.loader.Load(res.OriginalPath)
	if !loaded.OK() {
		r.log.Warn("resource not readable, reference rewritten without a copy",
			zap.String("resource", res.OriginalPath),
			zap.String("destination", res.DestinationPath),
			zap.Error(loaded.Err))
		return nil
	}

	if err := r.store.WriteFile(res.DestinationPath, loaded.Data); err != nil {
		return asFatal(OpWriteFile, res.DestinationPath, err)
	}
	if rec, ok := r.names.(Recorder); ok {
		rec.Record(res)
	}
	return nil
}
