package task

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool_ProcessesAllTasks(t *testing.T) {
	t.Parallel()

	queue := NewTaskQueue(10, nil)
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 3}, nil)

	var executed atomic.Int32
	for i := 0; i < 10; i++ {
		assert.NoError(t, queue.Enqueue(newFuncTask(func(context.Context) error {
			executed.Add(1)
			return nil
		})))
	}

	pool.Start()
	queue.Close()
	pool.Wait()

	assert.Equal(t, int32(10), executed.Load())
}

func TestWorkerPool_ErrorHandler(t *testing.T) {
	t.Parallel()

	queue := NewTaskQueue(10, nil)
	pool := NewWorkerPool(queue, DefaultWorkerPoolConfig(), nil)

	var (
		mu     sync.Mutex
		failed []error
	)
	pool.SetErrorHandler(func(_ Task, err error) {
		mu.Lock()
		failed = append(failed, err)
		mu.Unlock()
	})

	assert.NoError(t, queue.Enqueue(newFuncTask(func(context.Context) error {
		return errors.New("write failed")
	})))
	assert.NoError(t, queue.Enqueue(newFuncTask(func(context.Context) error {
		panic("boom")
	})))
	assert.NoError(t, queue.Enqueue(newFuncTask(noop)))

	pool.Start()
	queue.Close()
	pool.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, failed, 2)
}

func TestWorkerPool_InvalidWorkerCount(t *testing.T) {
	t.Parallel()

	pool := NewWorkerPool(NewTaskQueue(1, nil), WorkerPoolConfig{WorkerCount: 0}, nil)
	assert.Equal(t, 1, pool.workerCount)
}

func TestWorkerPool_StopCancelsRunningTasks(t *testing.T) {
	t.Parallel()

	queue := NewTaskQueue(1, nil)
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 1}, nil)

	started := make(chan struct{})
	assert.NoError(t, queue.Enqueue(newFuncTask(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})))

	pool.Start()
	<-started
	queue.Close()
	pool.Stop()
}
