package testsupport

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"os"
	"strconv"
	"testing"

	"github.com/disintegration/imaging"

	"mediashrink/internal/media"
)

// FakeEncoderEnv switches a test binary into fake encoder mode. See
// RunFakeEncoderIfRequested.
const FakeEncoderEnv = "MEDIASHRINK_FAKE_ENCODER"

// VideoMarker prefixes fake video output so tests can recognise it.
const VideoMarker = "fake-encoded "

// RunFakeEncoderIfRequested turns the current process into a fake ffmpeg when
// FakeEncoderEnv is set. Call it first thing from TestMain.
func RunFakeEncoderIfRequested() {
	if os.Getenv(FakeEncoderEnv) != "1" {
		return
	}
	if err := FakeEncode(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}

// UseFakeEncoder enables fake encoder mode for child processes and returns
// the path of the running test binary to use as the encoder.
func UseFakeEncoder(t *testing.T) string {
	t.Helper()

	exe, err := os.Executable()
	if err != nil {
		t.Fatalf("locate test binary: %v", err)
	}
	t.Setenv(FakeEncoderEnv, "1")
	return exe
}

// FakeEncode honours the subset of ffmpeg arguments mediashrink emits.
// Images are decoded, scaled down to the width in the scale filter and saved
// to the output; anything else is copied with VideoMarker and the video
// codec prepended.
func FakeEncode(args []string) error {
	if len(args) == 1 && args[0] == "-version" {
		fmt.Println("ffmpeg version fake")
		return nil
	}
	if len(args) < 3 {
		return errors.New("fake encoder: missing arguments")
	}

	var input, codec string
	maxWidth, quality, level := 0, 0, -1
	output := args[len(args)-1]
	for i := 0; i < len(args)-2; i++ {
		switch args[i] {
		case "-i":
			input = args[i+1]
		case "-vf":
			if _, err := fmt.Sscanf(args[i+1], "scale='min(%d,iw)':-2", &maxWidth); err != nil {
				return fmt.Errorf("fake encoder: unsupported filter %q", args[i+1])
			}
		case "-q:v":
			quality, _ = strconv.Atoi(args[i+1])
		case "-compression_level":
			level, _ = strconv.Atoi(args[i+1])
		case "-c:v":
			codec = args[i+1]
		}
	}
	if input == "" {
		return errors.New("fake encoder: no input")
	}

	category, ok := media.Classify(input)
	if !ok {
		return fmt.Errorf("fake encoder: unsupported input %q", input)
	}
	if !category.IsImage() {
		data, err := os.ReadFile(input)
		if err != nil {
			return err
		}
		return os.WriteFile(output, append([]byte(VideoMarker+codec+" "), data...), 0o644)
	}

	img, err := imaging.Open(input)
	if err != nil {
		return fmt.Errorf("fake encoder: %w", err)
	}
	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		b := img.Bounds()
		height := b.Dy() * maxWidth / b.Dx()
		height -= height % 2
		img = imaging.Resize(img, maxWidth, height, imaging.Lanczos)
	}

	var opts []imaging.EncodeOption
	if quality > 0 {
		opts = append(opts, imaging.JPEGQuality(100-quality*3))
	}
	if level >= 0 {
		opts = append(opts, imaging.PNGCompressionLevel(pngLevel(level)))
	}
	return imaging.Save(img, output, opts...)
}

func pngLevel(level int) png.CompressionLevel {
	switch {
	case level == 0:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

// FakeVideoOutput returns what FakeEncode writes for a video input.
func FakeVideoOutput(codec string, input []byte) []byte {
	return append([]byte(VideoMarker+codec+" "), bytes.Clone(input)...)
}
