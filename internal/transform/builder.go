package transform

import (
	"fmt"
	"strconv"

	"mediashrink/internal/media"
)

// preamble is shared by every invocation: no banner, never read stdin,
// overwrite the scratch output, and only report errors.
var preamble = []string{"-hide_banner", "-nostdin", "-y", "-loglevel", "error"}

// BuildArgs constructs the encoder argument slice (without the binary name)
// that re-encodes input into output for the given category.
func BuildArgs(category media.Category, input, output string) ([]string, error) {
	spec, ok := ForPath(category, input)
	if !ok {
		return nil, fmt.Errorf("no transform defined for category %q", category)
	}
	return spec.Args(input, output), nil
}

// Args renders the spec as an argument slice.
func (s Spec) Args(input, output string) []string {
	args := make([]string, 0, 24)
	args = append(args, preamble...)
	args = append(args, "-i", input)

	// --- Image scaling ---
	if s.MaxWidth > 0 {
		args = append(args, "-vf", ScaleFilter(s.MaxWidth))
	}
	if s.Quality > 0 {
		args = append(args, "-q:v", strconv.Itoa(s.Quality))
	}
	if s.CompressionLevel > 0 {
		args = append(args, "-compression_level", strconv.Itoa(s.CompressionLevel))
	}

	// --- Video ---
	if s.VideoCodec != "" {
		args = append(args, "-c:v", s.VideoCodec)
		if s.CRF > 0 {
			args = append(args, "-crf", strconv.Itoa(s.CRF))
		}
		if s.Preset != "" {
			args = append(args, "-preset", s.Preset)
		}
		args = append(args, s.ExtraVideo...)
	}

	// --- Audio ---
	if s.AudioCodec != "" {
		args = append(args, "-c:a", s.AudioCodec)
		if s.AudioBitrate != "" {
			args = append(args, "-b:a", s.AudioBitrate)
		}
	}

	args = append(args, s.ContainerFlags...)
	args = append(args, output)
	return args
}

// ScaleFilter returns a filter that limits width to maxWidth without
// upscaling and keeps the height even so chroma subsampling stays valid.
func ScaleFilter(maxWidth int) string {
	return fmt.Sprintf("scale='min(%d,iw)':-2", maxWidth)
}
