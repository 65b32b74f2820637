package worker

import (
	"context"
	"sync"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/logx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/fileupload"
)

// TaskProcessor is implemented by fileuploadsrv.Service
type TaskProcessor interface {
	ProcessCleanupTask(ctx context.Context, task *fileupload.CleanupTask) error
	Sweep(ctx context.Context) (*fileupload.SweepResult, error)
}

// Options tune the worker intervals
type Options struct {
	Workers        int
	DequeueTimeout time.Duration
	DelayedEvery   time.Duration
	SweepEvery     time.Duration

	// ErrorBackoff is the first pause after a failed dequeue; it doubles up to MaxErrorBackoff
	ErrorBackoff    time.Duration
	MaxErrorBackoff time.Duration
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = 2
	}
	if o.DequeueTimeout <= 0 {
		o.DequeueTimeout = 5 * time.Second
	}
	if o.DelayedEvery <= 0 {
		o.DelayedEvery = 30 * time.Second
	}
	if o.SweepEvery <= 0 {
		o.SweepEvery = time.Hour
	}
	if o.ErrorBackoff <= 0 {
		o.ErrorBackoff = time.Second
	}
	if o.MaxErrorBackoff <= 0 {
		o.MaxErrorBackoff = 30 * time.Second
	}
	if o.MaxErrorBackoff < o.ErrorBackoff {
		o.MaxErrorBackoff = o.ErrorBackoff
	}
	return o
}

// CleanupWorker drains the object cleanup queue and runs the periodic orphan sweep
type CleanupWorker struct {
	processor TaskProcessor
	queue     fileupload.CleanupQueue
	opts      Options
	wg        sync.WaitGroup
}

func NewCleanupWorker(processor TaskProcessor, queue fileupload.CleanupQueue, opts Options) *CleanupWorker {
	return &CleanupWorker{
		processor: processor,
		queue:     queue,
		opts:      opts.withDefaults(),
	}
}

// Start launches the worker pool, the delayed task mover and the sweeper.
// They all stop when ctx is cancelled; Wait blocks until they have.
func (w *CleanupWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d file cleanup workers", w.opts.Workers)

	w.run(ctx, w.moveDelayedTasks)
	w.run(ctx, w.sweep)
	for i := 0; i < w.opts.Workers; i++ {
		workerID := i
		w.run(ctx, func(ctx context.Context) { w.processTasks(ctx, workerID) })
	}
}

// Wait blocks until every goroutine started by Start has returned
func (w *CleanupWorker) Wait() {
	w.wg.Wait()
}

func (w *CleanupWorker) run(ctx context.Context, fn func(context.Context)) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		fn(ctx)
	}()
}

func (w *CleanupWorker) processTasks(ctx context.Context, workerID int) {
	logx.Debugf("Cleanup worker %d started", workerID)

	failures := 0
	for {
		select {
		case <-ctx.Done():
			logx.Debugf("Cleanup worker %d stopping", workerID)
			return
		default:
		}

		task, err := w.queue.Dequeue(ctx, w.opts.DequeueTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			failures++
			pause := w.errorBackoff(failures)
			logx.Errorf("Cleanup worker %d dequeue error (retry in %s): %v", workerID, pause, err)
			if !sleep(ctx, pause) {
				return
			}
			continue
		}
		failures = 0
		if task == nil {
			continue
		}

		if err := w.processor.ProcessCleanupTask(ctx, task); err != nil {
			logx.Warnf("Cleanup worker %d: %s attempt %d failed: %v", workerID, task.StorageKey, task.Attempt+1, err)
		}
	}
}

func (w *CleanupWorker) errorBackoff(failures int) time.Duration {
	pause := w.opts.ErrorBackoff
	for i := 1; i < failures && pause < w.opts.MaxErrorBackoff; i++ {
		pause *= 2
	}
	return min(pause, w.opts.MaxErrorBackoff)
}

// sleep waits for d and reports false if ctx ended first
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (w *CleanupWorker) moveDelayedTasks(ctx context.Context) {
	ticker := time.NewTicker(w.opts.DelayedEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed cleanup tasks: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed cleanup tasks to ready queue", count)
			}
		}
	}
}

func (w *CleanupWorker) sweep(ctx context.Context) {
	ticker := time.NewTicker(w.opts.SweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := w.processor.Sweep(ctx); err != nil {
				logx.Errorf("File sweep failed: %v", err)
			}
		}
	}
}
