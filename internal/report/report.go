// Package report renders run summaries for the terminal.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mediashrink/internal/media"
	"mediashrink/internal/reencode"
)

var titleCaser = cases.Title(language.Und)

// CategoryLabel returns a display label such as "Image Jpeg".
func CategoryLabel(c media.Category) string {
	return titleCaser.String(strings.ReplaceAll(string(c), "-", " "))
}

// Bytes formats a size for display.
func Bytes(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}

// Change formats the relative size change from before to after.
func Change(before, after int64) string {
	if before <= 0 {
		return "-"
	}
	pct := float64(after-before) / float64(before) * 100
	return fmt.Sprintf("%+.1f%%", pct)
}

// WriteSummary renders the per-category table followed by the failed and
// skipped paths. Paths are shown relative to the summary root when possible.
func WriteSummary(w io.Writer, s reencode.Summary) error {
	headers := []string{"Category", "Processed", "Failed", "Before", "After", "Change"}
	aligns := []Alignment{AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight}

	rows := make([][]string, 0, len(media.Categories))
	for _, category := range media.Categories {
		stats, ok := s.Categories[category]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			CategoryLabel(category),
			strconv.Itoa(stats.Processed),
			strconv.Itoa(stats.Failed),
			Bytes(stats.BytesBefore),
			Bytes(stats.BytesAfter),
			Change(stats.BytesBefore, stats.BytesAfter),
		})
	}
	footer := []string{
		"Total",
		strconv.Itoa(s.Processed),
		strconv.Itoa(s.Failed),
		Bytes(s.BytesBefore),
		Bytes(s.BytesAfter),
		Change(s.BytesBefore, s.BytesAfter),
	}

	var b strings.Builder
	b.WriteString(renderTable(headers, rows, footer, aligns))
	b.WriteByte('\n')

	status := "completed"
	if s.Interrupted {
		status = "interrupted"
	}
	fmt.Fprintf(&b, "Run %s %s in %s", shortID(s.RunID), status, s.Duration.Round(time.Millisecond))
	if s.Skipped > 0 {
		fmt.Fprintf(&b, ", %d skipped", s.Skipped)
	}
	if saved := s.Saved(); s.Processed > 0 && saved > 0 {
		fmt.Fprintf(&b, ", saved %s", Bytes(saved))
	}
	b.WriteByte('\n')

	if len(s.Failures) > 0 {
		b.WriteString("\nFailed:\n")
		for _, f := range s.Failures {
			fmt.Fprintf(&b, "  %s (%s: %v)\n", relPath(s.Root, f.Path), f.Stage, f.Err)
		}
	}
	if len(s.Skips) > 0 {
		b.WriteString("\nSkipped:\n")
		for _, entry := range s.Skips {
			fmt.Fprintf(&b, "  %s (%s)\n", relPath(s.Root, entry.Path), entry.Reason)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteAssets renders discovered assets as a table, used by the scan command.
func WriteAssets(w io.Writer, root string, assets []media.Asset) error {
	headers := []string{"Path", "Category", "Size"}
	aligns := []Alignment{AlignLeft, AlignLeft, AlignRight}
	rows := make([][]string, 0, len(assets))
	var total int64
	for _, asset := range assets {
		rows = append(rows, []string{relPath(root, asset.Path), CategoryLabel(asset.Category), Bytes(asset.Size)})
		total += asset.Size
	}
	footer := []string{fmt.Sprintf("%d assets", len(assets)), categoryBreakdown(assets), Bytes(total)}
	_, err := io.WriteString(w, renderTable(headers, rows, footer, aligns)+"\n")
	return err
}

// categoryBreakdown lists non-zero per-category counts in report order.
func categoryBreakdown(assets []media.Asset) string {
	counts := media.CountByCategory(assets)
	parts := make([]string, 0, len(media.Categories))
	for _, category := range media.Categories {
		if n := counts[category]; n > 0 {
			parts = append(parts, CategoryLabel(category)+" "+strconv.Itoa(n))
		}
	}
	return strings.Join(parts, ", ")
}

func relPath(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
