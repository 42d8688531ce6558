// Package logging assembles structured slog loggers and formatting helpers used
// across mediashrink.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so the re-encoder can tag every line
// with the run ID, asset path, and category. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits lines with the same shape.
package logging
