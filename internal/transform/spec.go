package transform

import (
	"path/filepath"
	"slices"
	"strings"

	"mediashrink/internal/media"
)

// Spec captures the encoder parameters applied to one category of asset.
// Zero values mean "not applicable" and are omitted from the command.
type Spec struct {
	// MaxWidth caps the output width for images; narrower inputs keep
	// their size.
	MaxWidth int
	// Quality is the JPEG qscale (2 best, 31 worst).
	Quality int
	// CompressionLevel is the PNG zlib level.
	CompressionLevel int

	VideoCodec   string
	CRF          int
	Preset       string
	ExtraVideo   []string
	AudioCodec   string
	AudioBitrate string

	// ContainerFlags are appended just before the output path.
	ContainerFlags []string
}

const (
	imageMaxWidth = 1280
	jpegQuality   = 3
	pngLevel      = 3
	videoCRF      = 28
	audioBitrate  = "96k"
)

var table = map[media.Category]Spec{
	media.CategoryJPEG: {
		MaxWidth: imageMaxWidth,
		Quality:  jpegQuality,
	},
	media.CategoryPNG: {
		MaxWidth:         imageMaxWidth,
		CompressionLevel: pngLevel,
	},
	media.CategoryVideo: {
		VideoCodec:     "libx264",
		CRF:            videoCRF,
		Preset:         "slow",
		AudioCodec:     "aac",
		AudioBitrate:   audioBitrate,
		ContainerFlags: []string{"-movflags", "+faststart"},
	},
}

// containerOverrides replaces the category entry for extensions whose muxer
// rejects the default codecs. libvpx-vp9 has no -preset; -deadline good with
// -cpu-used 1 is its counterpart of the x264 "slow" preset.
var containerOverrides = map[string]Spec{
	".webm": {
		VideoCodec:   "libvpx-vp9",
		CRF:          videoCRF,
		ExtraVideo:   []string{"-b:v", "0", "-deadline", "good", "-cpu-used", "1"},
		AudioCodec:   "libopus",
		AudioBitrate: audioBitrate,
	},
}

// Lookup returns the parameters for the category.
func Lookup(category media.Category) (Spec, bool) {
	spec, ok := table[category]
	return spec.clone(), ok
}

// ForPath returns the parameters for a file of the given category, applying
// any container override selected by the file's extension.
func ForPath(category media.Category, path string) (Spec, bool) {
	spec, ok := Lookup(category)
	if !ok {
		return Spec{}, false
	}
	if category == media.CategoryVideo {
		if override, found := containerOverrides[strings.ToLower(filepath.Ext(path))]; found {
			return override.clone(), true
		}
	}
	return spec, true
}

func (s Spec) clone() Spec {
	s.ExtraVideo = slices.Clone(s.ExtraVideo)
	s.ContainerFlags = slices.Clone(s.ContainerFlags)
	return s
}
