package dispatch

import (
	"log/slog"
	"sync"
)

// Pool executes fire-and-forget tasks on a fixed set of worker goroutines.
// Callers never observe task results; a task submitted while the queue is
// full is dropped, not queued elsewhere and not retried.
type Pool struct {
	log   *slog.Logger
	tasks chan func()
	wg    sync.WaitGroup
}

// NewPool creates a pool with the given number of workers and queue capacity
// and starts the workers immediately.
func NewPool(log *slog.Logger, workers, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = workers
	}

	p := &Pool{
		log:   log,
		tasks: make(chan func(), queueSize),
	}

	for range workers {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Submit enqueues a task without blocking. It reports whether the task was
// accepted; a full queue drops the task with a log line.
func (p *Pool) Submit(task func()) bool {
	select {
	case p.tasks <- task:
		return true
	default:
		p.log.Warn("Dispatch queue is full, dropping task")
		return false
	}
}

// Stop closes the intake and waits for queued tasks to drain. Submitting
// after Stop panics.
func (p *Pool) Stop() {
	close(p.tasks)
	p.wg.Wait()
}
