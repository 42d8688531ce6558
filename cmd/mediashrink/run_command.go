package main

import (
	"github.com/spf13/cobra"

	"mediashrink/internal/reencode"
	"mediashrink/internal/report"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Re-encode every asset under the root (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReencode(cmd, ctx)
		},
	}
}

func runReencode(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLogs, err := ctx.logger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeLogs() }()

	bar := newProgress(cmd.ErrOrStderr(), !ctx.flags.noProgress)
	processor := reencode.New(
		reencode.WithLogger(logger),
		reencode.WithWorkers(cfg.Encoder.Workers),
		reencode.WithTimeout(cfg.EncoderTimeout()),
		reencode.WithScratchBase(cfg.Paths.ScratchDir),
		reencode.WithProgress(bar.update),
	)

	summary, runErr := processor.Process(cmd.Context(), cfg.Paths.AssetRoot, cfg.Encoder.Binary)
	bar.finish()

	if summary.Discovered > 0 || summary.Skipped > 0 || summary.Interrupted {
		if err := report.WriteSummary(cmd.OutOrStdout(), summary); err != nil {
			return err
		}
	}
	return runErr
}
