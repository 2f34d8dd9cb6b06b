// Package play hosts live game sessions.
//
// Every session runs on its own goroutine, which owns the session runner and
// serializes answers, quits and emotion sampling ticks. Emotion samples are
// pushed from outside the goroutine into the session's bounded stream and
// picked up on the next tick.
//
// When a session ends, its level decision is computed and a
// session_completed event is emitted for the session record sink. The result
// stays readable for a retention period before the session is evicted.
package play
