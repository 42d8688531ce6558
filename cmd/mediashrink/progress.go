package main

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"mediashrink/internal/reencode"
)

// progress drives a terminal progress bar from processor updates. It is a
// no-op when disabled or when w is not a terminal.
type progress struct {
	w       io.Writer
	enabled bool
	bar     *progressbar.ProgressBar
}

func newProgress(w io.Writer, enabled bool) *progress {
	return &progress{w: w, enabled: enabled && isTerminal(w)}
}

func (p *progress) update(u reencode.Progress) {
	if !p.enabled || u.Total == 0 {
		return
	}
	if p.bar == nil {
		p.bar = progressbar.NewOptions(u.Total,
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionSetDescription("re-encoding"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}
	if u.Done == 0 {
		return
	}
	p.bar.Describe(filepath.Base(u.Asset.Path))
	_ = p.bar.Add(1)
}

func (p *progress) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
