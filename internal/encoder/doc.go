// Package encoder runs the external transcoding tool.
//
// Client wraps a binary path with an optional per-invocation timeout and
// delegates process handling to an Executor so tests can substitute a fake.
// The default executor discards stdout and keeps only the tail of stderr for
// error messages; the tool is treated as a black box whose exit status is the
// only signal.
package encoder
