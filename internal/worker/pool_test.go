package worker

import (
	"sync/atomic"
	"testing"
)

func TestPoolRunsAllTasks(t *testing.T) {
	p := NewPool(3)
	var done int64
	for i := 0; i < 50; i++ {
		p.Submit(func() { atomic.AddInt64(&done, 1) })
	}
	p.Stop()
	if done != 50 {
		t.Errorf("completed tasks = %d, want 50", done)
	}
}

func TestPoolMinimumOneWorker(t *testing.T) {
	p := NewPool(0)
	var ran atomic.Bool
	p.Submit(func() { ran.Store(true) })
	p.Stop()
	if !ran.Load() {
		t.Error("task never ran")
	}
}

func TestPoolStopIsIdempotent(t *testing.T) {
	p := NewPool(1)
	p.Submit(func() {})
	p.Stop()
	p.Stop()
}
