package report

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mediashrink/internal/media"
	"mediashrink/internal/reencode"
)

func TestCategoryLabel(t *testing.T) {
	tests := map[media.Category]string{
		media.CategoryJPEG:  "Image Jpeg",
		media.CategoryPNG:   "Image Png",
		media.CategoryVideo: "Video",
	}
	for category, want := range tests {
		if got := CategoryLabel(category); got != want {
			t.Errorf("CategoryLabel(%q) = %q, want %q", category, got, want)
		}
	}
}

func TestChange(t *testing.T) {
	if got := Change(200, 100); got != "-50.0%" {
		t.Fatalf("unexpected change %q", got)
	}
	if got := Change(100, 110); got != "+10.0%" {
		t.Fatalf("unexpected change %q", got)
	}
	if got := Change(0, 10); got != "-" {
		t.Fatalf("unexpected change %q", got)
	}
}

func TestBytes(t *testing.T) {
	if got := Bytes(2048); got != "2.0 KiB" {
		t.Fatalf("unexpected bytes %q", got)
	}
	if got := Bytes(-2048); got != "-2.0 KiB" {
		t.Fatalf("unexpected negative bytes %q", got)
	}
}

func TestWriteSummary(t *testing.T) {
	root := filepath.Join("/srv", "assets")
	summary := reencode.Summary{
		RunID:       "0123456789abcdef",
		Root:        root,
		Processed:   2,
		Failed:      1,
		Skipped:     1,
		BytesBefore: 4 << 20,
		BytesAfter:  1 << 20,
		Categories: map[media.Category]reencode.CategoryStats{
			media.CategoryJPEG: {Processed: 2, BytesBefore: 4 << 20, BytesAfter: 1 << 20},
			media.CategoryPNG:  {Failed: 1},
		},
		Failures: []*reencode.TransformError{{
			Path:     filepath.Join(root, "b.png"),
			Category: media.CategoryPNG,
			Stage:    reencode.StageEncode,
			Err:      errors.New("exit status 1"),
		}},
		Skips:    []media.SkippedEntry{{Path: filepath.Join(root, "link.jpg"), Reason: "symlink"}},
		Duration: 1500 * time.Millisecond,
	}

	var b strings.Builder
	if err := WriteSummary(&b, summary); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	out := b.String()
	for _, want := range []string{
		"Image Jpeg", "Image Png", "4.0 MiB", "1.0 MiB", "-75.0%",
		"Run 01234567 completed in 1.5s", "1 skipped", "saved 3.0 MiB",
		"Failed:", "b.png (encode: exit status 1)",
		"Skipped:", "link.jpg (symlink)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Video") {
		t.Errorf("categories without assets should be omitted:\n%s", out)
	}
}

func TestWriteSummaryInterrupted(t *testing.T) {
	var b strings.Builder
	if err := WriteSummary(&b, reencode.Summary{RunID: "abc", Interrupted: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "Run abc interrupted") {
		t.Fatalf("expected interrupted status, got:\n%s", b.String())
	}
}

func TestWriteAssets(t *testing.T) {
	root := "/srv/assets"
	assets := []media.Asset{
		{Path: "/srv/assets/PHOTO.JPG", Category: media.CategoryJPEG, Size: 1024},
		{Path: "/srv/assets/video/clip.MOV", Category: media.CategoryVideo, Size: 1024},
	}
	var b strings.Builder
	if err := WriteAssets(&b, root, assets); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, want := range []string{"PHOTO.JPG", filepath.Join("video", "clip.MOV"), "Image Jpeg", "Video", "2 assets", "2.0 KiB", "Image Jpeg 1, Video 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	if got := RenderTable(nil, [][]string{{"x"}}, nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
