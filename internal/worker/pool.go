package worker

import (
	"log"
	"sync"
)

// Pool runs campaign execution units on a fixed set of workers so
// background sends never block request handling and never spawn
// unbounded goroutines.
type Pool struct {
	tasks chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{tasks: make(chan func(), 64)}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.run(i)
	}
	return p
}

func (p *Pool) run(id int) {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
	log.Printf("worker %d stopped", id)
}

// Submit enqueues a task. Blocks if the queue is full rather than drop work.
func (p *Pool) Submit(task func()) {
	p.tasks <- task
}

// Stop drains queued tasks and waits for in-flight ones to finish.
func (p *Pool) Stop() {
	p.once.Do(func() { close(p.tasks) })
	p.wg.Wait()
}
