// Package reencode implements the safe in-place re-encoder.
//
// Processor.Process walks an asset root, re-encodes every recognised image
// and video with the external tool into a run-scoped scratch directory, and
// swaps each successful output over its original with an atomic rename.
// Failures are isolated per asset: the original stays byte-identical, a
// warning is logged and the run continues. The scratch directory is removed
// on every exit path, including cancellation.
//
// Fatal preconditions are reported before any filesystem mutation:
// *ConfigError for an unusable root and *DependencyError for a tool that
// cannot be resolved.
package reencode
