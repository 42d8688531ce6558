package preflight

import (
	"context"
	"os"

	"mediashrink/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the filesystem and encoder checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Asset root (always checked; originals are replaced in place)
	results = append(results, CheckDirectoryAccess("Asset root", cfg.Paths.AssetRoot))

	scratch := cfg.Paths.ScratchDir
	if scratch == "" {
		scratch = os.TempDir()
	}
	results = append(results, CheckDirectoryAccess("Scratch directory", scratch))
	results = append(results, CheckFreeSpace("Scratch space", scratch, MinScratchBytes))

	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	results = append(results, CheckEncoderVersion(ctx, cfg.Encoder.Binary))
	return results
}
