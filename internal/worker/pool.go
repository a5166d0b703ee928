// Package worker provides the work queue that runs searches off the game loop.
package worker

import (
	"sync"
	"sync/atomic"
)

// Entry is one unit of work: an opaque callback and the value it is given.
type Entry struct {
	Callback func(data any)
	Data     any
}

// Queue accepts work entries without blocking. Callers never start or join
// goroutines themselves; they submit an entry, retry later when the queue
// refuses it, and poll their own completion flag.
type Queue interface {
	TrySubmit(e Entry) bool
}

// Inline runs every entry synchronously inside TrySubmit. Tests use it to
// make search completion deterministic.
type Inline struct{}

// TrySubmit runs e immediately and always accepts it.
func (Inline) TrySubmit(e Entry) bool {
	e.Callback(e.Data)
	return true
}

// Pool manages a pool of worker goroutines draining a buffered queue.
type Pool struct {
	numWorkers int
	bufferSize int
	workChan   chan Entry
	wg         sync.WaitGroup
	stopFlag   int32 // Atomic flag for early termination
	processed  int64
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPoolWithOptions creates a new worker pool using functional options.
// Default: 1 worker, buffer size of 10.
func NewPoolWithOptions(opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers: 1,
		bufferSize: 10,
	}
	for _, opt := range opts {
		opt(p)
	}
	// Create the channel after options are applied
	p.workChan = make(chan Entry, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker runs entries from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for e := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without running
		}
		e.Callback(e.Data)
		atomic.AddInt64(&p.processed, 1)
	}
}

// TrySubmit attempts to queue an entry without blocking.
// Returns false if the work channel is full or the pool is stopped.
func (p *Pool) TrySubmit(e Entry) bool {
	if atomic.LoadInt32(&p.stopFlag) != 0 {
		return false
	}
	select {
	case p.workChan <- e:
		return true
	default:
		return false
	}
}

// Stop signals workers to stop running new entries.
// Entries already in the channel will be drained but not run. Shutdown
// calls it before Close so abandoned searches still queued are skipped.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
}

// Processed returns the number of entries whose callback has returned.
func (p *Pool) Processed() int64 {
	return atomic.LoadInt64(&p.processed)
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

var (
	_ Queue = (*Pool)(nil)
	_ Queue = Inline{}
)
