// Package parallel provides the worker pool used to rasterize shapes row by row.
//
// Work is handed to the pool as a slice of items and ExecuteAll returns only
// after every item has run. Key features:
//
//   - per-worker queues with work stealing
//   - panics in work items are recovered and reported as errors
//   - a closed pool refuses new work with ErrPoolClosed
//
// Thread safety: WorkerPool is safe for concurrent use.
package parallel

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrPoolClosed is returned by ExecuteAll when the pool no longer accepts work.
var ErrPoolClosed = errors.New("parallel: worker pool is closed")

// ErrTaskPanic is wrapped by the error ExecuteAll returns when a task panicked.
var ErrTaskPanic = errors.New("parallel: task panicked")

// WorkerPool is a pool of goroutines for fan-out/join computations.
//
// The pool distributes work items across multiple workers, each with their own
// queue. Workers can steal work from other workers when their own queue is empty.
// This helps balance load when some tasks are slower than others.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// workQueues holds per-worker work queues.
	// Each worker primarily pulls from its own queue but can steal from others.
	workQueues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool

	// submitMu is held shared while ExecuteAll queues work and exclusively
	// by Close, so nothing is queued once workers start to exit.
	submitMu sync.RWMutex
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}

	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			return

		case work := <-myQueue:
			work()

		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			// No work available anywhere, block on own queue
			select {
			case <-p.done:
				p.drainQueue(myQueue)
				return
			case work := <-myQueue:
				work()
			}
		}
	}
}

// drainQueue executes all remaining work in a queue.
func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// steal attempts to take work from another worker's queue.
// Returns nil if no work is available.
func (p *WorkerPool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}

		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll distributes work across workers and waits for all to complete.
// Item i is queued to worker i mod Workers().
//
// A panicking item does not stop the others; once all items are done the
// first panic is returned as an error wrapping ErrTaskPanic. A closed pool
// returns ErrPoolClosed; a concurrent Close waits until the items are queued.
func (p *WorkerPool) ExecuteAll(work []func()) error {
	p.submitMu.RLock()
	if !p.running.Load() {
		p.submitMu.RUnlock()
		return ErrPoolClosed
	}
	if len(work) == 0 {
		p.submitMu.RUnlock()
		return nil
	}

	var (
		completionWG sync.WaitGroup
		errOnce      sync.Once
		firstErr     error
	)
	fail := func(err error) {
		errOnce.Do(func() { firstErr = err })
	}
	completionWG.Add(len(work))

	for i, fn := range work {
		wrappedWork := func() {
			defer completionWG.Done()
			defer func() {
				if r := recover(); r != nil {
					fail(fmt.Errorf("%w: task %d: %v", ErrTaskPanic, i, r))
				}
			}()
			fn()
		}

		// Submit to worker's queue (may block if queue is full)
		p.workQueues[i%p.workers] <- wrappedWork
	}
	p.submitMu.RUnlock()

	completionWG.Wait()
	return firstErr
}

// Close gracefully shuts down the pool.
// It stops accepting new work, waits for all queued work to complete,
// and then stops all workers.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.submitMu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.submitMu.Unlock()
		return
	}
	close(p.done)
	p.submitMu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
