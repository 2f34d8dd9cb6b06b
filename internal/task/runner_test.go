package task

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRunner_SubmitAndDrain(t *testing.T) {
	t.Parallel()

	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 2, QueueSize: 10}, nil)
	runner.Start()

	var executed atomic.Int32
	for i := 0; i < 5; i++ {
		require.NoError(t, runner.Submit(context.Background(), newFuncTask(func(context.Context) error {
			executed.Add(1)
			return nil
		})))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, runner.Stop(ctx))

	assert.Equal(t, int32(5), executed.Load(), "queued tasks run before Stop returns")
	assert.ErrorIs(t, runner.Submit(context.Background(), newFuncTask(noop)), ErrQueueClosed)
}

func TestTaskRunner_SubmitQueueFull(t *testing.T) {
	t.Parallel()

	// Not started, so nothing drains the queue.
	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 1, QueueSize: 1}, nil)

	require.NoError(t, runner.Submit(context.Background(), newFuncTask(noop)))
	assert.ErrorIs(t, runner.Submit(context.Background(), newFuncTask(noop)), ErrQueueFull)
}

func TestTaskRunner_SubmitCancelledContext(t *testing.T) {
	t.Parallel()

	runner := NewTaskRunner(DefaultTaskRunnerConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, runner.Submit(ctx, newFuncTask(noop)), context.Canceled)
}

func TestTaskRunner_StopDeadline(t *testing.T) {
	t.Parallel()

	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 1, QueueSize: 5}, nil)
	runner.Start()

	started := make(chan struct{})
	require.NoError(t, runner.Submit(context.Background(), newFuncTask(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})))
	require.NoError(t, runner.Submit(context.Background(), newFuncTask(noop)))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, runner.Stop(ctx), context.DeadlineExceeded)
}
