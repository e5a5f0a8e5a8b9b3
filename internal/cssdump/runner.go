package cssdump

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sigman78/cssdump/internal/config"
)

// Summary reports the outcome of a Run.
type Summary struct {
	Stylesheets int
	Failed      int
	Resources   []ManifestEntry
}

// Runner dumps many stylesheets concurrently.
type Runner struct {
	cfg   *config.Config
	store Storage
	log   *zap.Logger
	index *AssetIndex
}

// NewRunner returns a Runner for cfg. A nil store uses the OS filesystem.
func NewRunner(cfg *config.Config, store Storage, log *zap.Logger) *Runner {
	if store == nil {
		store = NewLocalStorage(cfg.ProjectRoot)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		cfg:   cfg,
		store: store,
		log:   log,
		index: NewAssetIndex(HashNamer{}),
	}
}

// Options derives rewriter options from the configuration.
func (r *Runner) Options() Options {
	return Options{
		ProjectRoot: ToPosix(r.cfg.ProjectRoot),
		PublishDir:  r.cfg.PublishDir,
		KeepQuery:   r.cfg.KeepQuery,
	}
}

// Filter returns a Filter sharing the runner's storage and asset index.
func (r *Runner) Filter() *Filter {
	rw := NewRewriter(r.Options(), r.index, StorageLoader{Store: r.store}, r.store, r.log)
	return NewFilter(rw, r.log)
}

// Run dumps every job and writes each rewritten stylesheet to
// projectRoot/publishDir/targetPath.
func (r *Runner) Run(ctx context.Context, jobs []Job) (*Summary, error) {
	if len(jobs) == 0 {
		r.log.Info("no stylesheets to dump")
		return &Summary{}, nil
	}

	filter := r.Filter()

	pool, err := ants.NewPool(r.cfg.Threads)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var prog *Progress
	if !r.cfg.Quiet {
		prog = NewDumpProgress(len(jobs))
	}

	g, ctx := errgroup.WithContext(ctx)
	var failed atomic.Int32

	for _, job := range jobs {
		j := job
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			errCh := make(chan error, 1)
			if err := pool.Submit(func() {
				errCh <- r.dumpOne(filter, j, prog)
			}); err != nil {
				return fmt.Errorf("submit task: %w", err)
			}
			if err := <-errCh; err != nil {
				if r.cfg.StopOnError {
					return err
				}
				failed.Add(1)
				r.log.Error("stylesheet failed",
					zap.String("source", j.SourcePath),
					zap.Error(err))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	prog.Finish()

	if r.cfg.Manifest != "" {
		if err := r.writeManifest(); err != nil {
			return nil, err
		}
	}

	return &Summary{
		Stylesheets: len(jobs),
		Failed:      int(failed.Load()),
		Resources:   r.index.Manifest(),
	}, nil
}

// dumpOne rewrites a single stylesheet and stores the result.
func (r *Runner) dumpOne(filter *Filter, job Job, prog *Progress) error {
	defer prog.Inc()

	sheet, err := LoadStylesheet(r.store, job)
	if err != nil {
		return err
	}
	if err := filter.Dump(sheet); err != nil {
		return err
	}

	out := r.TargetFile(job.TargetPath)
	if err := r.store.Put(out, strings.NewReader(sheet.Content())); err != nil {
		return fmt.Errorf("store %s: %w", out, err)
	}
	r.log.Debug("stylesheet written", zap.String("path", out))
	return nil
}

// TargetFile is where a stylesheet with the given target path is written.
func (r *Runner) TargetFile(targetPath string) string {
	return path.Join(ToPosix(r.cfg.ProjectRoot), r.cfg.PublishDir, ToPosix(targetPath))
}

func (r *Runner) writeManifest() error {
	data, err := r.index.MarshalManifest()
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	out := ToPosix(r.cfg.Manifest)
	if !filepath.IsAbs(r.cfg.Manifest) {
		out = path.Join(ToPosix(r.cfg.ProjectRoot), out)
	}
	if err := r.store.Put(out, strings.NewReader(string(data))); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
