package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sigman78/cssdump/internal/config"
	"github.com/sigman78/cssdump/internal/cssdump"
)

func newDumpCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump every configured stylesheet to the publish directory",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configFile, cmd.Flags())
			if err != nil {
				return err
			}

			jobs, err := cssdump.DiscoverJobs(cfg)
			if err != nil {
				return err
			}
			a.log.Info("dumping stylesheets",
				zap.Int("count", len(jobs)),
				zap.String("project_root", cfg.ProjectRoot),
				zap.String("publish_dir", cfg.PublishDir))

			summary, err := cssdump.NewRunner(cfg, nil, a.log).Run(cmd.Context(), jobs)
			if err != nil {
				return err
			}
			a.log.Info("dump finished",
				zap.Int("stylesheets", summary.Stylesheets),
				zap.Int("resources", len(summary.Resources)),
				zap.Int("failed", summary.Failed))
			if summary.Failed > 0 {
				return fmt.Errorf("%d stylesheet(s) failed", summary.Failed)
			}
			return nil
		},
	}

	addRunFlags(cmd)
	cmd.Flags().Int("threads", 3, "Concurrent stylesheets")
	cmd.Flags().Bool("stop-on-error", false, "Stop at the first failing stylesheet")
	cmd.Flags().String("manifest", "", "Write a YAML manifest of copied resources to this file")
	cmd.Flags().Bool("quiet", false, "Hide the progress bar")
	return cmd
}

func noArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return &usageError{err: fmt.Errorf("unexpected argument %q", args[0])}
	}
	return nil
}
