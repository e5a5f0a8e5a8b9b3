package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sigman78/cssdump/internal/config"
	"github.com/sigman78/cssdump/internal/cssdump"
)

type rewriteFlags struct {
	sourceRoot string
	sourceURL  string
	source     string
	target     string
}

func newRewriteCommand(a *app) *cobra.Command {
	var f rewriteFlags

	cmd := &cobra.Command{
		Use:   "rewrite",
		Short: "Rewrite one stylesheet and print the result",
		Long: `Rewrite one stylesheet for its target location and print the rewritten
CSS to stdout. Referenced resources are copied into the publish directory;
the stylesheet itself is not written.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.source == "" || f.target == "" {
				return &usageError{err: errors.New("--source and --target are required")}
			}

			cfg, err := config.Load(a.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			cfg.Stylesheets = []config.Stylesheet{{
				SourceRoot: f.sourceRoot,
				SourceURL:  f.sourceURL,
				Source:     f.source,
				Target:     f.target,
			}}

			jobs, err := cssdump.DiscoverJobs(cfg)
			if err != nil {
				return err
			}
			store := cssdump.NewLocalStorage(cfg.ProjectRoot)
			runner := cssdump.NewRunner(cfg, store, a.log)

			sheet, err := cssdump.LoadStylesheet(store, jobs[0])
			if err != nil {
				return err
			}
			if err := runner.Filter().Dump(sheet); err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), sheet.Content())
			return err
		},
	}

	addRunFlags(cmd)
	cmd.Flags().StringVar(&f.sourceRoot, "source-root", ".", "Directory the stylesheet is read from")
	cmd.Flags().StringVar(&f.sourceURL, "source-url", "", "Public URL of the source root (prefixes root-relative references)")
	cmd.Flags().StringVar(&f.source, "source", "", "Stylesheet path relative to the source root")
	cmd.Flags().StringVar(&f.target, "target", "", "Stylesheet target path relative to the publish directory")
	return cmd
}
