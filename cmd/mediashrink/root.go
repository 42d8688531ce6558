package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	ctx := newCommandContext(flags)

	rootCmd := &cobra.Command{
		Use:           "mediashrink",
		Short:         "Re-encode image and video assets in place",
		Long:          "mediashrink walks an asset directory and re-encodes every JPEG, PNG, MP4, MOV and WebM file with ffmpeg, replacing each original atomically. Files that fail to encode are left untouched.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig(cmd)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReencode(cmd, ctx)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	pf.StringVar(&flags.root, "root", "", "Asset directory to process (default: ../assets relative to the binary)")
	pf.StringVar(&flags.tool, "tool", "", "Transcoding tool binary (default: ffmpeg)")
	pf.IntVar(&flags.workers, "workers", 1, "Number of files re-encoded concurrently")
	pf.DurationVar(&flags.timeout, "timeout", 0, "Per-file encoder timeout, 0 disables")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format (console, json)")
	pf.BoolVar(&flags.noProgress, "no-progress", false, "Disable the progress bar")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newScanCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
