package logging_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mediashrink/internal/config"
	"mediashrink/internal/logging"
)

func boolPtr(v bool) *bool { return &v }

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.AssetRoot = t.TempDir()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")

	logger, closeLogs, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	t.Cleanup(func() { _ = closeLogs() })
	logger.Info("run started", logging.String(logging.FieldRunID, "abc"))

	content := readLog(t, filepath.Join(cfg.Paths.LogDir, "mediashrink.log"))
	if !strings.Contains(content, "run started") || !strings.Contains(content, "run_id=abc") {
		t.Fatalf("unexpected log content %q", content)
	}
	if strings.Contains(content, "\x1b[") {
		t.Fatalf("log file must not contain escape codes: %q", content)
	}
}

func TestConsoleLoggerFormatsComponentAndAttrs(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, closeLogs, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = closeLogs() })

	logging.NewComponentLogger(logger, "reencode").Warn("transform failed",
		logging.String(logging.FieldPath, "assets/b 1.png"),
		logging.Error(errors.New("exit status 1")),
	)

	content := readLog(t, logPath)
	for _, want := range []string{"WARN", "reencode: transform failed", `path="assets/b 1.png"`, `error="exit status 1"`} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in %q", want, content)
		}
	}
	if strings.Contains(content, "component=") {
		t.Fatalf("component should be rendered as a prefix, got %q", content)
	}
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information at info level, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "debug.log")
	logger, closeLogs, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "debug",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = closeLogs() })
	logger.Debug("discovered asset")

	if content := readLog(t, logPath); !strings.Contains(content, "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestConsoleLoggerForcedColor(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "color.log")
	logger, closeLogs, err := logging.New(logging.Options{
		Format:      "console",
		OutputPaths: []string{logPath},
		Color:       boolPtr(true),
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = closeLogs() })
	logger.Error("boom")

	if content := readLog(t, logPath); !strings.Contains(content, "\x1b[") {
		t.Fatalf("expected ANSI colour in forced colour mode, got %q", content)
	}
}

func TestJSONLoggerShape(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, closeLogs, err := logging.New(logging.Options{
		Format:      "json",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = closeLogs() })
	logger.Info("asset re-encoded", logging.String(logging.FieldCategory, "video"))

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &entry); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if entry["level"] != "info" || entry["msg"] != "asset re-encoded" || entry["category"] != "video" {
		t.Fatalf("unexpected json entry: %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", entry)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, closeLogs, err := logging.New(logging.Options{OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = closeLogs() })
	logging.WarnWithContext(logger, "asset skipped", "discovery_skip")

	content := readLog(t, logPath)
	for _, want := range []string{"event_type=discovery_skip", "error_hint=", "impact="} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in %q", want, content)
		}
	}
}

func TestCloseReleasesLogFiles(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "closed.log")
	logger, closeLogs, err := logging.New(logging.Options{OutputPaths: []string{logPath, "stderr"}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("before close")
	if err := closeLogs(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := closeLogs(); err != nil {
		t.Fatalf("second close should be a no-op: %v", err)
	}
	logger.Info("after close")

	content := readLog(t, logPath)
	if !strings.Contains(content, "before close") || strings.Contains(content, "after close") {
		t.Fatalf("unexpected log content after close: %q", content)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("ignored")
	if logger.Enabled(t.Context(), 100) {
		t.Fatal("nop logger must never be enabled")
	}
}
