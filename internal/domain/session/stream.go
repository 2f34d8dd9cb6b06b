package session

import (
	"sync"

	"github.com/phrazzld/lexiplay/internal/domain"
)

// DefaultStreamCapacity is the number of pending samples an EmotionStream
// buffers between two ticks.
const DefaultStreamCapacity = 16

// EmotionStream is a bounded queue of emotion samples pushed by an external
// detector and drained by a runner once per tick. Push never blocks: when the
// queue is full the oldest pending sample is discarded.
type EmotionStream struct {
	mu     sync.Mutex
	ch     chan domain.EmotionLabel
	closed bool
}

// NewEmotionStream creates a stream buffering at most capacity samples.
func NewEmotionStream(capacity int) *EmotionStream {
	if capacity <= 0 {
		capacity = DefaultStreamCapacity
	}
	return &EmotionStream{ch: make(chan domain.EmotionLabel, capacity)}
}

// Push enqueues a sample. It reports false once the stream is closed.
func (s *EmotionStream) Push(label domain.EmotionLabel) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	for {
		select {
		case s.ch <- label:
			return true
		default:
		}
		// Full: drop the oldest pending sample and retry.
		select {
		case <-s.ch:
		default:
		}
	}
}

// Drain consumes every pending sample and returns the most recent one.
// It reports false when nothing was pending.
func (s *EmotionStream) Drain() (domain.EmotionLabel, bool) {
	var (
		latest domain.EmotionLabel
		found  bool
	)
	for {
		select {
		case label := <-s.ch:
			latest, found = label, true
		default:
			return latest, found
		}
	}
}

// Len returns the number of pending samples.
func (s *EmotionStream) Len() int {
	return len(s.ch)
}

// Close stops accepting samples. Pending samples can still be drained.
func (s *EmotionStream) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
