package worker

import "sync"

// Task represents a unit of work executed by the pool.
type Task func()

// Pool runs submitted tasks on a fixed set of goroutines.
type Pool interface {
	Submit(Task) bool
	Stop()
}

// NewPool creates a pool with n workers and a queue of the same size.
// n<=0 defaults to 1. onPanic, when set, receives values recovered from tasks.
func NewPool(n int, onPanic func(any)) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task, n), onPanic: onPanic}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.loop()
	}
	return p
}

type pool struct {
	mu      sync.RWMutex
	stopped bool
	jobs    chan Task
	wg      sync.WaitGroup
	onPanic func(any)
}

func (p *pool) loop() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.run(job)
	}
}

func (p *pool) run(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && p.onPanic != nil {
			p.onPanic(r)
		}
	}()
	job()
}

// Submit queues t and reports whether it was accepted; it returns false once
// the pool is stopped.
func (p *pool) Submit(t Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return false
	}
	p.jobs <- t
	return true
}

// Stop drains queued tasks and waits for the workers. Safe to call twice.
func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
