package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mediashrink/internal/deps"
	"mediashrink/internal/preflight"
	"mediashrink/internal/reencode"
	"mediashrink/internal/report"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report encoder availability and directory access",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}

			statuses := preflight.CheckSystemDeps(cfg)
			results := preflight.RunAll(cmd.Context(), cfg)

			rows := make([][]string, 0, len(statuses)+len(results))
			var missing *deps.Status
			for i, status := range statuses {
				detail := status.Path
				if !status.Available {
					detail = status.Detail
					if !status.Optional && missing == nil {
						missing = &statuses[i]
					}
				}
				rows = append(rows, []string{status.Name, statusLabel(status.Available), detail})
			}
			failed := 0
			for _, result := range results {
				if !result.Passed {
					failed++
				}
				rows = append(rows, []string{result.Name, statusLabel(result.Passed), result.Detail})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.RenderTable(
				[]string{"Check", "Status", "Detail"},
				rows,
				[]report.Alignment{report.AlignLeft, report.AlignLeft, report.AlignLeft},
			))

			if missing != nil {
				return &reencode.DependencyError{Tool: missing.Command, Err: errors.New(missing.Detail)}
			}
			if failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			return nil
		},
	}
}

func statusLabel(ok bool) string {
	if ok {
		return "ok"
	}
	return "FAIL"
}
