package reencode

import (
	"fmt"

	"mediashrink/internal/media"
)

// ConfigError reports an unusable asset root.
type ConfigError struct {
	Root string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("asset root %q: %v", e.Root, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// DependencyError reports that the transform tool cannot be resolved.
type DependencyError struct {
	Tool string
	Err  error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("transform tool %q unavailable: %v", e.Tool, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

// Stage names the step of a per-asset transform that failed.
type Stage string

const (
	StageBuild   Stage = "build"
	StageScratch Stage = "scratch"
	StageEncode  Stage = "encode"
	StageVerify  Stage = "verify"
	StageReplace Stage = "replace"
)

// TransformError describes a recovered per-asset failure. The original file
// at Path is unchanged.
type TransformError struct {
	Path     string
	Category media.Category
	Stage    Stage
	Err      error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("%s %s (%s): %v", e.Stage, e.Path, e.Category, e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }
