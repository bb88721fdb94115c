package sender

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestDispatcherRunsJobs(t *testing.T) {
	d := NewDispatcher(Options{Workers: 2, QueueSize: 8})
	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		err := d.Enqueue(context.Background(), "send.text", func() error {
			ran.Add(1)
			return nil
		})
		if err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}
	d.Close()
	if got := ran.Load(); got != 5 {
		t.Errorf("ran = %d, want 5", got)
	}
	if d.ErrorCount() != 0 {
		t.Errorf("errors = %d, want 0", d.ErrorCount())
	}
}

func TestDispatcherCountsFailures(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 1, MaxRetries: 0})
	err := d.Enqueue(context.Background(), "send.text", func() error {
		return errors.New("telegram said no")
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	d.Close()
	if d.ErrorCount() != 1 {
		t.Errorf("errors = %d, want 1", d.ErrorCount())
	}
}

func TestDispatcherQueueFull(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 1})
	block := make(chan struct{})
	_ = d.Enqueue(context.Background(), "a", func() error {
		<-block
		return nil
	})
	// Give the single worker a moment to pick up the blocking job.
	time.Sleep(20 * time.Millisecond)
	_ = d.Enqueue(context.Background(), "b", func() error { return nil })
	err := d.Enqueue(context.Background(), "c", func() error { return nil })
	if !errors.Is(err, ErrQueueFull) {
		t.Errorf("err = %v, want ErrQueueFull", err)
	}
	close(block)
	d.Close()
}

func TestDispatcherRejectsAfterClose(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 1})
	d.Close()
	err := d.Enqueue(context.Background(), "x", func() error { return nil })
	if !errors.Is(err, ErrQueueClosed) {
		t.Errorf("err = %v, want ErrQueueClosed", err)
	}
}
