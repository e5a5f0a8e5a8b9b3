package cssdump

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/sigman78/cssdump/internal/config"
)

// DiscoverJobs expands every configured stylesheet entry into jobs.
func DiscoverJobs(cfg *config.Config) ([]Job, error) {
	var jobs []Job
	for i, entry := range cfg.Stylesheets {
		found, err := discoverEntry(cfg.ProjectRoot, entry)
		if err != nil {
			return nil, fmt.Errorf("stylesheets[%d]: %w", i, err)
		}
		jobs = append(jobs, found...)
	}
	return jobs, nil
}

func discoverEntry(projectRoot string, entry config.Stylesheet) ([]Job, error) {
	localRoot := entry.SourceRoot
	if !filepath.IsAbs(localRoot) {
		localRoot = filepath.Join(projectRoot, localRoot)
	}
	reported := ToPosix(localRoot)
	if entry.SourceURL != "" {
		reported = entry.SourceURL
	}

	if entry.Pattern == "" {
		return []Job{{
			SourceRoot: reported,
			LocalRoot:  ToPosix(localRoot),
			SourcePath: ToPosix(entry.Source),
			TargetPath: ToPosix(entry.Target),
		}}, nil
	}

	if !doublestar.ValidatePattern(entry.Pattern) {
		return nil, fmt.Errorf("invalid pattern %q", entry.Pattern)
	}
	matches, err := doublestar.Glob(os.DirFS(localRoot), entry.Pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", entry.Pattern, err)
	}
	sort.Strings(matches)

	base, _ := doublestar.SplitPattern(entry.Pattern)
	var jobs []Job
	for _, m := range matches {
		if !IsStylesheet(m) {
			continue
		}
		rel := m
		if base != "." {
			rel = strings.TrimPrefix(m, base+"/")
		}
		jobs = append(jobs, Job{
			SourceRoot: reported,
			LocalRoot:  ToPosix(localRoot),
			SourcePath: m,
			TargetPath: path.Join(ToPosix(entry.TargetDir), rel),
		})
	}
	return jobs, nil
}
