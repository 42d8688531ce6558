package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediashrink/internal/media"
	"mediashrink/internal/reencode"
	"mediashrink/internal/report"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "List the assets a run would re-encode without changing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			root := cfg.Paths.AssetRoot
			if err := reencode.CheckRoot(root); err != nil {
				return err
			}

			assets, skipped := media.Discover(root)
			out := cmd.OutOrStdout()
			if len(assets) == 0 {
				fmt.Fprintf(out, "No assets found under %s\n", root)
			} else if err := report.WriteAssets(out, root, assets); err != nil {
				return err
			}
			for _, entry := range skipped {
				fmt.Fprintf(out, "skipped %s (%s)\n", entry.Path, entry.Reason)
			}
			return nil
		},
	}
}
