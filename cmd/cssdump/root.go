package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// usageError marks command-line mistakes (exit code 2).
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// app carries state shared by subcommands after flag parsing.
type app struct {
	configFile string
	logLevel   string
	jsonLogs   bool
	log        *zap.Logger
}

// newRootCommand creates a fresh command tree so tests never share state.
func newRootCommand() *cobra.Command {
	a := &app{log: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "cssdump",
		Short: "Rewrite stylesheet url() references for a new output location",
		Long: `cssdump moves stylesheets from their source location to a publish
directory and rewrites every url() reference so it still resolves. Each
document-relative resource is copied next to the published assets under a
deterministic name.

Examples:
   cssdump dump                       # dump stylesheets listed in cssdump.yaml
   cssdump dump --threads 8 --manifest assets.yaml
   cssdump rewrite --source-root src --source css/app.css --target app.css
   cssdump version`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newLogger(a.logLevel, a.jsonLogs)
			if err != nil {
				return &usageError{err: err}
			}
			a.log = log
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.log.Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (default: ./cssdump.yaml)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&a.jsonLogs, "json-logs", false, "Emit logs as JSON")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	cmd.Version = version
	cmd.SetVersionTemplate("cssdump {{.Version}}\n")

	cmd.AddCommand(newDumpCommand(a))
	cmd.AddCommand(newRewriteCommand(a))
	cmd.AddCommand(newVersionCommand())
	return cmd
}

// addRunFlags registers flags that override configuration keys.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("project-root", ".", "Project root directory")
	cmd.Flags().String("publish-dir", "web", "Publish directory, relative to the project root")
	cmd.Flags().Bool("keep-query", false, "Keep ?query and #fragment on rewritten references")
}
