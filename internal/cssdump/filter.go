package cssdump

import (
	"fmt"

	"go.uber.org/zap"
)

// Filter fixes relative url() references when a stylesheet is dumped to a
// new location.
type Filter struct {
	rw  *Rewriter
	log *zap.Logger
}

// NewFilter returns a Filter around rw.
func NewFilter(rw *Rewriter, log *zap.Logger) *Filter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Filter{rw: rw, log: log}
}

// Dump rewrites sheet's references for its target location. The content is
// replaced only when every reference was processed.
func (f *Filter) Dump(sheet Stylesheet) error {
	loc := LocationOf(sheet)
	if loc.Unchanged() {
		f.log.Debug("stylesheet not moved, skipping",
			zap.String("source", loc.SourcePath),
			zap.String("target", loc.TargetPath))
		return nil
	}

	rc := ComputeContext(loc.SourceRoot, loc.SourcePath, loc.TargetPath)
	f.log.Debug("dumping stylesheet",
		zap.String("source", loc.SourcePath),
		zap.String("target", loc.TargetPath),
		zap.String("host", rc.Host),
		zap.String("prefix", rc.Prefix))

	content, err := f.rw.Rewrite(sheet.Content(), loc.SourceDirectory, rc)
	if err != nil {
		return fmt.Errorf("dump %s: %w", loc.SourcePath, err)
	}
	sheet.SetContent(content)
	return nil
}
