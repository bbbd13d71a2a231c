package queue

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryQueueRoundTrip(t *testing.T) {
	q := NewMemoryQueue(4)
	ctx := context.Background()

	if err := q.Enqueue(ctx, []byte("first")); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if err := q.Enqueue(ctx, []byte("second")); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	got, err := q.Dequeue(ctx, time.Second)
	if err != nil {
		t.Fatalf("Dequeue failed: %v", err)
	}
	if string(got) != "first" {
		t.Errorf("expected first job, got %q", got)
	}
	if q.Len() != 1 {
		t.Errorf("expected 1 buffered job, got %d", q.Len())
	}
}

func TestMemoryQueueDequeueTimeout(t *testing.T) {
	q := NewMemoryQueue(1)

	got, err := q.Dequeue(context.Background(), 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Dequeue failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil payload on timeout, got %q", got)
	}
}

func TestMemoryQueueFullFailsFast(t *testing.T) {
	q := NewMemoryQueue(1)
	ctx := context.Background()

	if err := q.Enqueue(ctx, []byte("only")); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	// a full buffer must not block the caller
	done := make(chan error, 1)
	go func() { done <- q.Enqueue(ctx, []byte("overflow")) }()
	select {
	case err := <-done:
		if !errors.Is(err, ErrQueueFull) {
			t.Errorf("expected ErrQueueFull, got: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full buffer")
	}
}

func TestMemoryQueueCancelledContext(t *testing.T) {
	q := NewMemoryQueue(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := q.Dequeue(ctx, time.Second); err == nil {
		t.Error("expected error from cancelled context")
	}
}
