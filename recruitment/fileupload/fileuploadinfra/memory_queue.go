package fileuploadinfra

import (
	"context"
	"sync"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/fileupload"
)

type delayedTask struct {
	task fileupload.CleanupTask
	due  time.Time
}

// MemoryCleanupQueue is used when Redis is not configured
type MemoryCleanupQueue struct {
	mu      sync.Mutex
	ready   []fileupload.CleanupTask
	delayed []delayedTask
	notify  chan struct{}
}

func NewMemoryCleanupQueue() *MemoryCleanupQueue {
	return &MemoryCleanupQueue{notify: make(chan struct{}, 1)}
}

func (q *MemoryCleanupQueue) Enqueue(ctx context.Context, task fileupload.CleanupTask) error {
	if task.EnqueuedAt.IsZero() {
		task.EnqueuedAt = time.Now().UTC()
	}
	q.mu.Lock()
	q.ready = append(q.ready, task)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
	return nil
}

func (q *MemoryCleanupQueue) EnqueueDelayed(ctx context.Context, task fileupload.CleanupTask, delay time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.delayed = append(q.delayed, delayedTask{task: task, due: time.Now().Add(delay)})
	return nil
}

func (q *MemoryCleanupQueue) Dequeue(ctx context.Context, timeout time.Duration) (*fileupload.CleanupTask, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		if task, ok := q.pop(); ok {
			return &task, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
			return nil, nil
		case <-q.notify:
		}
	}
}

func (q *MemoryCleanupQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	now := time.Now()
	q.mu.Lock()
	kept := q.delayed[:0]
	moved := 0
	for _, d := range q.delayed {
		if d.due.After(now) {
			kept = append(kept, d)
			continue
		}
		q.ready = append(q.ready, d.task)
		moved++
	}
	q.delayed = kept
	q.mu.Unlock()

	if moved > 0 {
		select {
		case q.notify <- struct{}{}:
		default:
		}
	}
	return moved, nil
}

func (q *MemoryCleanupQueue) Stats(ctx context.Context) (map[string]any, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return map[string]any{
		"queue_name":    "memory",
		"ready_tasks":   int64(len(q.ready)),
		"delayed_tasks": int64(len(q.delayed)),
	}, nil
}

func (q *MemoryCleanupQueue) pop() (fileupload.CleanupTask, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.ready) == 0 {
		return fileupload.CleanupTask{}, false
	}
	task := q.ready[0]
	q.ready = q.ready[1:]
	return task, true
}

var _ fileupload.CleanupQueue = (*MemoryCleanupQueue)(nil)
