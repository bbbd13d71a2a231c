// Package queue abstracts the notification job queue. Production uses Redis
// lists; the in-memory implementation backs tests and Redis-less deployments.
package queue

import (
	"context"
	"errors"
	"time"

	"mobilis/backend/pkg/redis"
)

// ErrQueueFull is returned by the in-memory queue when its buffer is full.
var ErrQueueFull = errors.New("queue buffer full")

// Queue carries opaque job payloads between the API process and the
// notification workers. Dequeue blocks up to timeout and returns (nil, nil)
// when no job arrived.
type Queue interface {
	Enqueue(ctx context.Context, payload []byte) error
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)
}

// ── Redis-backed queue ──

// RedisQueue is a Redis list worked with LPUSH and BRPOP, so jobs survive a
// process restart and multiple workers share the backlog.
type RedisQueue struct {
	client *redis.Client
	name   string
}

// NewRedisQueue wraps an established Redis connection.
func NewRedisQueue(client *redis.Client, name string) *RedisQueue {
	return &RedisQueue{client: client, name: name}
}

// Enqueue pushes a job onto the list.
func (q *RedisQueue) Enqueue(ctx context.Context, payload []byte) error {
	return q.client.PushJob(ctx, q.name, payload)
}

// Dequeue pops the oldest job, blocking up to timeout.
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	return q.client.PopJob(ctx, q.name, timeout)
}

// ── in-memory queue ──

// MemoryQueue is a buffered channel. Jobs are lost on restart, which is
// acceptable for development and for tests.
type MemoryQueue struct {
	jobs chan []byte
}

// NewMemoryQueue creates a queue holding up to size pending jobs.
func NewMemoryQueue(size int) *MemoryQueue {
	return &MemoryQueue{jobs: make(chan []byte, size)}
}

// Enqueue adds a job, failing fast when the buffer is full rather than
// blocking an API request.
func (q *MemoryQueue) Enqueue(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case q.jobs <- payload:
		return nil
	default:
		return ErrQueueFull
	}
}

// Dequeue waits up to timeout for a job.
func (q *MemoryQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case payload := <-q.jobs:
		return payload, nil
	case <-timer.C:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Len reports the number of buffered jobs. Used by tests.
func (q *MemoryQueue) Len() int { return len(q.jobs) }
