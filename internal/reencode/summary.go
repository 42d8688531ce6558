package reencode

import (
	"time"

	"mediashrink/internal/media"
)

// CategoryStats aggregates outcomes for one category.
type CategoryStats struct {
	Processed   int
	Failed      int
	BytesBefore int64
	BytesAfter  int64
}

// Summary is the outcome of one run.
type Summary struct {
	RunID string
	Root  string

	Discovered int
	Processed  int
	Failed     int
	Skipped    int

	Failures []*TransformError
	Skips    []media.SkippedEntry

	// Byte totals cover processed assets only.
	BytesBefore int64
	BytesAfter  int64

	Categories map[media.Category]CategoryStats

	Started     time.Time
	Duration    time.Duration
	Interrupted bool
}

// FailedPaths lists the paths of failed assets in failure order.
func (s Summary) FailedPaths() []string {
	paths := make([]string, 0, len(s.Failures))
	for _, f := range s.Failures {
		paths = append(paths, f.Path)
	}
	return paths
}

// Saved returns the bytes saved across processed assets. Negative when the
// encoder grew the files.
func (s Summary) Saved() int64 {
	return s.BytesBefore - s.BytesAfter
}

func (s *Summary) recordSuccess(asset media.Asset, after int64) {
	s.Processed++
	s.BytesBefore += asset.Size
	s.BytesAfter += after
	stats := s.Categories[asset.Category]
	stats.Processed++
	stats.BytesBefore += asset.Size
	stats.BytesAfter += after
	s.Categories[asset.Category] = stats
}

func (s *Summary) recordFailure(terr *TransformError) {
	s.Failed++
	s.Failures = append(s.Failures, terr)
	stats := s.Categories[terr.Category]
	stats.Failed++
	s.Categories[terr.Category] = stats
}
