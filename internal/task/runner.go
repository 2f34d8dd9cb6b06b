package task

import (
	"context"
	"log/slog"
	"time"
)

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// TaskRunner owns a TaskQueue and the WorkerPool that drains it.
type TaskRunner struct {
	queue  *TaskQueue
	pool   *WorkerPool
	logger *slog.Logger
}

// NewTaskRunner creates a new TaskRunner. Call Start before submitting work.
func NewTaskRunner(config TaskRunnerConfig, logger *slog.Logger) *TaskRunner {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "task_runner")

	queue := NewTaskQueue(config.QueueSize, logger)
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: config.WorkerCount}, logger)

	return &TaskRunner{
		queue:  queue,
		pool:   pool,
		logger: logger,
	}
}

// Ensure TaskRunner implements Submitter interface
var _ Submitter = (*TaskRunner)(nil)

// SetErrorHandler allows setting a custom error handler function.
// It must be called before Start.
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.pool.SetErrorHandler(handler)
}

// Submit queues a task without blocking. It returns ErrQueueFull when the
// queue is at capacity and ErrQueueClosed after Stop.
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.queue.Enqueue(task)
}

// Start begins processing tasks.
func (r *TaskRunner) Start() {
	r.pool.Start()
}

// Stop closes the queue and waits for queued tasks to finish. When ctx ends
// first, running tasks are cancelled and the remaining queue is abandoned.
func (r *TaskRunner) Stop(ctx context.Context) error {
	r.queue.Close()

	done := make(chan struct{})
	go func() {
		r.pool.Wait()
		close(done)
	}()

	start := time.Now()
	select {
	case <-done:
		r.logger.Info("task runner drained", "duration", time.Since(start))
		r.pool.Stop()
		return nil
	case <-ctx.Done():
		r.logger.Warn("task runner stop deadline reached, abandoning queued tasks",
			"pending", r.queue.Len())
		r.pool.cancel()
		// Drain what is left so the workers can exit.
		for range r.queue.GetChannel() {
		}
		r.pool.Stop()
		return ctx.Err()
	}
}
