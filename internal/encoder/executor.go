package encoder

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"
)

const (
	defaultStderrTail = 4 << 10
	waitDelay         = 5 * time.Second
)

// RunError describes a failed invocation together with the last lines the
// tool wrote to stderr.
type RunError struct {
	Binary string
	Stderr string
	Err    error
}

func (e *RunError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Binary, e.Err)
	if tail := lastLine(e.Stderr); tail != "" {
		msg += ": " + tail
	}
	return msg
}

func (e *RunError) Unwrap() error { return e.Err }

// CommandExecutor runs binaries with os/exec.
type CommandExecutor struct {
	// StderrLimit bounds how much trailing stderr is retained.
	StderrLimit int
}

// NewCommandExecutor returns an executor with the default stderr limit.
func NewCommandExecutor() CommandExecutor {
	return CommandExecutor{StderrLimit: defaultStderrTail}
}

// Run executes binary with args, discarding stdout.
func (e CommandExecutor) Run(ctx context.Context, binary string, args []string) error {
	stderr := &tailBuffer{limit: e.StderrLimit}
	if stderr.limit <= 0 {
		stderr.limit = defaultStderrTail
	}

	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stdin = nil
	cmd.Stdout = io.Discard
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay

	if err := cmd.Run(); err != nil {
		return &RunError{Binary: binary, Stderr: stderr.String(), Err: err}
	}
	return nil
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	mu    sync.Mutex
	limit int
	buf   []byte
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	if over := len(b.buf) - b.limit; over > 0 {
		b.buf = append(b.buf[:0], b.buf[over:]...)
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if idx := strings.LastIndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	}
	return strings.TrimSpace(s)
}
