package worker

import (
	"context"
	"sync"
	"time"
)

// Task is one unit of background work, typically an insight refresh.
type Task func(ctx context.Context) error

// Result carries a finished task's error (nil on success) to the drainer.
type Result struct {
	Err error
}

// Pool runs detached tasks on a fixed set of workers. Submitted tasks are
// best-effort: nothing is persisted, and work still queued at shutdown is
// dropped.
type Pool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup

	mu     sync.Mutex
	ticker *time.Ticker
	rate   <-chan time.Time
}

func NewPool(workers, buffer int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan Task, buffer),
	}
}

// SetRateLimit caps task starts at rps per second across all workers.
// rps <= 0 removes the limit.
func (p *Pool) SetRateLimit(rps int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
	if rps <= 0 {
		return
	}
	t := time.NewTicker(time.Second / time.Duration(rps))
	p.ticker = t
	p.rate = t.C
}

// TrySubmit enqueues a task without blocking. Returns false when the queue
// is full or the pool is nil.
func (p *Pool) TrySubmit(t Task) bool {
	if p == nil || t == nil {
		return false
	}
	select {
	case p.tasks <- t:
		return true
	default:
		return false
	}
}

// Close stops accepting tasks. Workers drain what is already queued.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
	p.mu.Unlock()
	close(p.tasks)
}

// Run starts the workers and returns the result channel. The channel closes
// once the pool is closed and all workers have exited.
func (p *Pool) Run(ctx context.Context) <-chan Result {
	out := make(chan Result, p.workers*16)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					p.waitRate(ctx)
					err := t(ctx)
					select {
					case out <- Result{Err: err}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}

func (p *Pool) waitRate(ctx context.Context) {
	p.mu.Lock()
	rate := p.rate
	p.mu.Unlock()
	if rate == nil {
		return
	}
	select {
	case <-rate:
	case <-ctx.Done():
	}
}
