// Package config loads, normalizes, and validates mediashrink configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// MEDIASHRINK_ROOT and MEDIASHRINK_TOOL. The Config type centralizes the asset
// root, scratch location, encoder binary, and logging knobs so the CLI can
// resolve everything in one pass before a run starts.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
