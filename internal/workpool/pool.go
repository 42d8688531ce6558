// Package workpool runs submitted jobs on a fixed number of goroutines.
package workpool

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("worker pool is closed")

// Pool is a bounded worker pool. Jobs are queued on a buffered channel and
// executed by a fixed set of workers; Submit blocks while the queue is full.
type Pool struct {
	jobs   chan func()
	closed bool
	mu     sync.RWMutex
	once   sync.Once
	wg     sync.WaitGroup
}

// New starts workers goroutines with a queue of queueSize pending jobs.
// Non-positive values fall back to one worker and a queue as deep as the
// worker count.
func New(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}

	p := &Pool{
		jobs: make(chan func(), queueSize),
	}

	for range workers {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if job != nil {
					job()
				}
			}
		}()
	}

	return p
}

// Submit queues job. It returns ctx.Err() if ctx ends first and ErrClosed
// once the pool has been closed.
func (p *Pool) Submit(ctx context.Context, job func()) error {
	if job == nil {
		return nil
	}

	// Held across the send so Close cannot close the channel underneath us.
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case p.jobs <- job:
		return nil
	}
}

// Close stops accepting jobs. Queued jobs still run.
func (p *Pool) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.jobs)
		p.mu.Unlock()
	})
}

// Wait blocks until every worker has exited. Call Close first.
func (p *Pool) Wait() {
	p.wg.Wait()
}
