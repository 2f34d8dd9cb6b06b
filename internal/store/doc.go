// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic: children and their game assignments, the
// current level per game, and the session history written after every
// finished session.
package store
