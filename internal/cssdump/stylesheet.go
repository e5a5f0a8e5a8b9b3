package cssdump

import (
	"fmt"
	"path"
)

// Stylesheet is the asset being dumped.
type Stylesheet interface {
	SourceRoot() string
	SourcePath() string
	TargetPath() string
	SourceDirectory() string
	Content() string
	SetContent(content string)
}

// LocationOf collects the location accessors of sheet.
func LocationOf(sheet Stylesheet) Location {
	return Location{
		SourceRoot:      sheet.SourceRoot(),
		SourcePath:      sheet.SourcePath(),
		TargetPath:      sheet.TargetPath(),
		SourceDirectory: sheet.SourceDirectory(),
	}
}

// Job names one stylesheet to dump.
type Job struct {
	// SourceRoot is reported to the filter. It may be a URL, in which case
	// root-relative references are prefixed with its host.
	SourceRoot string
	// LocalRoot is the directory the stylesheet is read from. Defaults to
	// SourceRoot.
	LocalRoot  string
	SourcePath string
	TargetPath string
}

func (j Job) localRoot() string {
	if j.LocalRoot != "" {
		return j.LocalRoot
	}
	return j.SourceRoot
}

// FileStylesheet is a Stylesheet read from Storage.
type FileStylesheet struct {
	job     Job
	content string
}

// LoadStylesheet reads the stylesheet named by job.
func LoadStylesheet(store Storage, job Job) (*FileStylesheet, error) {
	data, err := store.Get(path.Join(ToPosix(job.localRoot()), ToPosix(job.SourcePath)))
	if err != nil {
		return nil, fmt.Errorf("read stylesheet %s: %w", job.SourcePath, err)
	}
	return &FileStylesheet{job: job, content: string(data)}, nil
}

// NewStylesheet wraps in-memory content.
func NewStylesheet(job Job, content string) *FileStylesheet {
	return &FileStylesheet{job: job, content: content}
}

func (s *FileStylesheet) SourceRoot() string { return s.job.SourceRoot }
func (s *FileStylesheet) SourcePath() string { return s.job.SourcePath }
func (s *FileStylesheet) TargetPath() string { return s.job.TargetPath }

// SourceDirectory is the directory holding the original stylesheet.
func (s *FileStylesheet) SourceDirectory() string {
	return path.Dir(path.Join(ToPosix(s.job.localRoot()), ToPosix(s.job.SourcePath)))
}

func (s *FileStylesheet) Content() string           { return s.content }
func (s *FileStylesheet) SetContent(content string) { s.content = content }
