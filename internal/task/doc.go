// Package task runs background work on an in-memory queue served by a fixed
// pool of workers. Tasks are executed at most once; a failed task is logged
// and dropped.
package task
