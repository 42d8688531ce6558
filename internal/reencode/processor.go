package reencode

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"mediashrink/internal/deps"
	"mediashrink/internal/encoder"
	"mediashrink/internal/logging"
	"mediashrink/internal/media"
	"mediashrink/internal/runlock"
	"mediashrink/internal/workpool"
)

// Progress is reported once after discovery (Done == 0) and once per
// finished asset.
type Progress struct {
	Total int
	Done  int
	Asset media.Asset
	Err   error
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithExecutor injects the command executor used for the tool.
func WithExecutor(exec encoder.Executor) Option {
	return func(p *Processor) {
		if exec != nil {
			p.exec = exec
		}
	}
}

// WithWorkers sets how many assets are transformed concurrently.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithTimeout bounds each tool invocation.
func WithTimeout(d time.Duration) Option {
	return func(p *Processor) {
		p.timeout = d
	}
}

// WithScratchBase sets the parent of the run scratch directory. Empty uses
// the OS temp directory.
func WithScratchBase(dir string) Option {
	return func(p *Processor) {
		p.scratchBase = dir
	}
}

// WithProgress registers a callback for progress updates. It is called from
// the goroutine that finished the asset, serialised by the processor.
func WithProgress(fn func(Progress)) Option {
	return func(p *Processor) {
		p.progress = fn
	}
}

// Processor re-encodes the assets under a root directory.
type Processor struct {
	logger      *slog.Logger
	exec        encoder.Executor
	workers     int
	timeout     time.Duration
	scratchBase string
	progress    func(Progress)
}

// New constructs a Processor. Defaults: no-op logger, os/exec executor,
// one worker, no timeout, OS temp directory for scratch.
func New(opts ...Option) *Processor {
	p := &Processor{
		logger:  logging.NewNop(),
		exec:    encoder.NewCommandExecutor(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process re-encodes every asset under root with tool.
//
// A missing or unreadable root yields *ConfigError and a tool that cannot be
// resolved yields *DependencyError; in both cases nothing on disk changes.
// Per-asset failures are recorded in the Summary and never abort the run.
// When ctx is cancelled the in-flight tool is killed, no further assets are
// started and the context error is returned alongside the partial Summary.
func (p *Processor) Process(ctx context.Context, root, tool string) (result Summary, err error) {
	runID := uuid.NewString()
	logger := logging.NewComponentLogger(p.logger, "reencode").With(logging.String(logging.FieldRunID, runID))

	summary := Summary{
		RunID:      runID,
		Root:       root,
		Categories: map[media.Category]CategoryStats{},
		Started:    time.Now(),
	}
	defer func() { result.Duration = time.Since(result.Started) }()

	if err := CheckRoot(root); err != nil {
		return summary, err
	}
	toolPath, err := deps.Resolve(tool)
	if err != nil {
		return summary, &DependencyError{Tool: tool, Err: err}
	}
	if err := ctx.Err(); err != nil {
		summary.Interrupted = true
		return summary, err
	}

	lock, err := runlock.Acquire(root)
	if err != nil {
		return summary, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("release run lock failed", logging.Error(err))
		}
	}()

	client, err := encoder.New(toolPath, encoder.WithExecutor(p.exec), encoder.WithTimeout(p.timeout))
	if err != nil {
		return summary, &DependencyError{Tool: tool, Err: err}
	}

	scratch, err := os.MkdirTemp(p.scratchBase, "mediashrink-"+runID[:8]+"-")
	if err != nil {
		return summary, fmt.Errorf("create scratch directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			logging.WarnWithContext(logger, "scratch cleanup failed", "scratch_cleanup",
				logging.String("scratch", scratch),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "remove the directory manually"),
				logging.String(logging.FieldImpact, "temporary files left on disk"),
			)
		}
	}()

	assets, skipped := media.Discover(root)
	summary.Discovered = len(assets)
	summary.Skips = skipped
	summary.Skipped = len(skipped)
	for _, entry := range skipped {
		logging.WarnWithContext(logger, "asset skipped during discovery", "discovery_skip",
			logging.String(logging.FieldPath, entry.Path),
			logging.String("reason", entry.Reason),
			logging.String(logging.FieldErrorHint, "check permissions or replace the symlink with a regular file"),
			logging.String(logging.FieldImpact, "entry left unchanged"),
		)
	}

	logger.Info("run started",
		logging.String("root", root),
		logging.String("tool", toolPath),
		logging.String("scratch", scratch),
		logging.String("lock", lock.Path()),
		logging.Int("assets", len(assets)),
		logging.Int("workers", p.workers),
	)

	r := &run{
		processor: p,
		logger:    logger,
		client:    client,
		scratch:   scratch,
		summary:   &summary,
		total:     len(assets),
	}
	r.report(Progress{Total: len(assets)})

	if p.workers > 1 {
		r.parallel(ctx, assets)
	} else {
		r.sequential(ctx, assets)
	}

	slices.SortFunc(summary.Failures, func(a, b *TransformError) int { return cmp.Compare(a.Path, b.Path) })

	if err := ctx.Err(); err != nil {
		summary.Interrupted = true
		logging.WarnWithContext(logger, "run interrupted", "run_interrupted",
			logging.Int("processed", summary.Processed),
			logging.Int("remaining", len(assets)-summary.Processed-summary.Failed),
			logging.String(logging.FieldErrorHint, "rerun to process the remaining assets"),
			logging.String(logging.FieldImpact, "unprocessed assets left unchanged"),
		)
		return summary, err
	}

	logger.Info("run finished",
		logging.Int("processed", summary.Processed),
		logging.Int("failed", summary.Failed),
		logging.Int("skipped", summary.Skipped),
		logging.Int64("bytes_before", summary.BytesBefore),
		logging.Int64("bytes_after", summary.BytesAfter),
		logging.Duration("elapsed", time.Since(summary.Started)),
	)
	return summary, nil
}

// CheckRoot returns a *ConfigError unless root is a readable directory.
func CheckRoot(root string) error {
	if root == "" {
		return &ConfigError{Root: root, Err: errors.New("not configured")}
	}
	info, err := os.Stat(root)
	if err != nil {
		return &ConfigError{Root: root, Err: err}
	}
	if !info.IsDir() {
		return &ConfigError{Root: root, Err: errors.New("not a directory")}
	}
	dir, err := os.Open(root)
	if err != nil {
		return &ConfigError{Root: root, Err: err}
	}
	defer dir.Close()
	if _, err := dir.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return &ConfigError{Root: root, Err: err}
	}
	return nil
}

// run carries the state shared by the workers of one Process call.
type run struct {
	processor *Processor
	logger    *slog.Logger
	client    *encoder.Client
	scratch   string
	total     int

	mu      sync.Mutex
	done    int
	summary *Summary
}

func (r *run) sequential(ctx context.Context, assets []media.Asset) {
	for i, asset := range assets {
		if ctx.Err() != nil {
			return
		}
		r.handle(ctx, i, asset)
	}
}

func (r *run) parallel(ctx context.Context, assets []media.Asset) {
	pool := workpool.New(r.processor.workers, r.processor.workers)
	for i, asset := range assets {
		if ctx.Err() != nil {
			break
		}
		if err := pool.Submit(ctx, func() { r.handle(ctx, i, asset) }); err != nil {
			break
		}
	}
	pool.Close()
	pool.Wait()
}

func (r *run) handle(ctx context.Context, index int, asset media.Asset) {
	if ctx.Err() != nil {
		return
	}
	after, err := r.encodeAsset(ctx, index, asset)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil && ctx.Err() != nil {
		// Cancelled mid-transform: the original is intact and the asset
		// will be picked up by the next run.
		return
	}
	r.done++
	if err != nil {
		var terr *TransformError
		if !errors.As(err, &terr) {
			terr = &TransformError{Path: asset.Path, Category: asset.Category, Stage: StageEncode, Err: err}
		}
		r.summary.recordFailure(terr)
		logging.WarnWithContext(r.logger, "asset re-encode failed", "transform_failed",
			logging.String(logging.FieldPath, asset.Path),
			logging.String(logging.FieldCategory, asset.Category.String()),
			logging.String("stage", string(terr.Stage)),
			logging.Error(terr.Err),
			logging.String(logging.FieldErrorHint, "run the encoder manually on this file to inspect the error"),
			logging.String(logging.FieldImpact, "original left unchanged"),
		)
	} else {
		r.summary.recordSuccess(asset, after)
		r.logger.Info("asset re-encoded",
			logging.String(logging.FieldPath, asset.Path),
			logging.String(logging.FieldCategory, asset.Category.String()),
			logging.Int64("bytes_before", asset.Size),
			logging.Int64("bytes_after", after),
		)
	}
	r.report(Progress{Total: r.total, Done: r.done, Asset: asset, Err: err})
}

// report must be called with r.mu held, or before workers start.
func (r *run) report(p Progress) {
	if r.processor.progress != nil {
		r.processor.progress(p)
	}
}
