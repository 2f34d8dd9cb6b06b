package task

import (
	"context"

	"github.com/google/uuid"
)

// TaskStatus tracks a background task from hand-off to completion. A session
// record moves pending -> processing -> completed, or to failed once the sink
// gives up on it.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

const (
	// TaskTypeSessionRecord persists the outcome of a finished play session.
	TaskTypeSessionRecord = "session_record"
)

// Task is work taken off the session goroutine, such as writing a finished
// session and its level decision to the progress store.
type Task interface {
	ID() uuid.UUID
	Type() string
	Status() TaskStatus

	// Execute runs on a worker goroutine, never on the session goroutine.
	Execute(ctx context.Context) error
}

// TaskQueueReader is the consuming side of the queue, held by workers.
type TaskQueueReader interface {
	GetChannel() <-chan Task
}

// TaskQueueWriter is the producing side of the queue. Enqueue fails instead
// of blocking when the queue is full, so a finished session is dropped
// rather than stalling play.
type TaskQueueWriter interface {
	Enqueue(task Task) error
	Close()
}

// Submitter accepts tasks for asynchronous execution. The session_completed
// event handler submits one record task per finished session.
type Submitter interface {
	Submit(ctx context.Context, task Task) error
}
