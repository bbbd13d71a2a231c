package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"mobilis/backend/internal/event"
	"mobilis/backend/internal/queue"
)

const dequeueTimeout = 2 * time.Second

// Worker drains the notification queue with a pool of goroutines. A job that
// fails is re-enqueued with its attempt counter bumped; after maxAttempts it
// is dropped with an error log.
type Worker struct {
	queue       queue.Queue
	notifier    *Notifier
	logger      *zap.Logger
	workers     int
	maxAttempts int
	backoff     time.Duration

	wg sync.WaitGroup
}

// NewWorker builds the pool. workers and maxAttempts must be positive.
func NewWorker(q queue.Queue, n *Notifier, logger *zap.Logger, workers, maxAttempts int, backoff time.Duration) *Worker {
	return &Worker{
		queue:       q,
		notifier:    n,
		logger:      logger,
		workers:     workers,
		maxAttempts: maxAttempts,
		backoff:     backoff,
	}
}

// Start launches the pool. Workers stop when ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go func(id int) {
			defer w.wg.Done()
			w.run(ctx, id)
		}(i)
	}
	w.logger.Info("notification workers started", zap.Int("workers", w.workers))
}

// Wait blocks until every worker has exited.
func (w *Worker) Wait() {
	w.wg.Wait()
	w.logger.Info("notification workers stopped")
}

func (w *Worker) run(ctx context.Context, id int) {
	for {
		if ctx.Err() != nil {
			return
		}
		payload, err := w.queue.Dequeue(ctx, dequeueTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Error("dequeue failed", zap.Int("worker", id), zap.Error(err))
			time.Sleep(w.backoff)
			continue
		}
		if payload == nil {
			continue
		}
		w.process(ctx, payload)
	}
}

// ProcessOne dequeues and handles a single job. Used by tests to drive the
// worker synchronously.
func (w *Worker) ProcessOne(ctx context.Context) error {
	payload, err := w.queue.Dequeue(ctx, dequeueTimeout)
	if err != nil {
		return err
	}
	if payload != nil {
		w.process(ctx, payload)
	}
	return nil
}

func (w *Worker) process(ctx context.Context, payload []byte) {
	ev, err := event.Unmarshal(payload)
	if err != nil {
		w.logger.Error("dropping malformed job", zap.Error(err))
		return
	}

	if err := w.notifier.Handle(ctx, ev); err != nil {
		w.retry(ctx, ev, err)
	}
}

func (w *Worker) retry(ctx context.Context, ev event.Event, cause error) {
	ev.Attempt++
	if ev.Attempt >= w.maxAttempts {
		w.logger.Error("giving up on notification",
			zap.String("event_id", ev.ID),
			zap.String("type", string(ev.Type)),
			zap.Int("attempts", ev.Attempt),
			zap.Error(cause),
		)
		return
	}

	w.logger.Warn("notification failed, re-enqueueing",
		zap.String("event_id", ev.ID),
		zap.Int("attempt", ev.Attempt),
		zap.Error(cause),
	)

	// linear backoff before the job becomes visible again
	select {
	case <-time.After(time.Duration(ev.Attempt) * w.backoff):
	case <-ctx.Done():
		return
	}

	payload, err := event.Marshal(ev)
	if err != nil {
		w.logger.Error("marshal retry payload", zap.Error(err))
		return
	}
	if err := w.queue.Enqueue(ctx, payload); err != nil {
		w.logger.Error("re-enqueue failed", zap.String("event_id", ev.ID), zap.Error(err))
	}
}
