// Package main hosts the mediashrink CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once (file, then environment,
// then flags), builds the structured logger, and hands the asset root to the
// re-encoder. Running the binary without a subcommand is the same as
// "mediashrink run". Process exit codes: 0 on success (per-file failures
// included), 1 for configuration errors, 2 when the transform tool is
// unavailable and 130 when interrupted.
package main
