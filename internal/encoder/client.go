package encoder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrTimeout reports that an invocation exceeded the configured timeout.
var ErrTimeout = errors.New("encoder timed out")

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) error
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, binary string, args []string) error

// Run calls f.
func (f ExecutorFunc) Run(ctx context.Context, binary string, args []string) error {
	return f(ctx, binary, args)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithTimeout bounds every invocation. Zero or negative disables the limit.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// Client invokes a single encoder binary.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// New constructs an encoder client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("encoder binary required")
	}
	client := &Client{
		binary: binary,
		exec:   NewCommandExecutor(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Encode runs the encoder with args. Cancellation of ctx kills the process;
// expiry of the client timeout is reported as ErrTimeout.
func (c *Client) Encode(ctx context.Context, args []string) error {
	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	err := c.exec.Run(runCtx, c.binary, args)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return fmt.Errorf("encoder interrupted: %w", ctx.Err())
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s: %w", ErrTimeout, c.timeout, err)
	}
	return err
}
