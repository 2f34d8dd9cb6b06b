// Package logger provides structured logging functionality for the application
// using Go's standard library log/slog package. Loggers travel through
// request and session contexts so that trace IDs and session IDs attached
// upstream appear on every line logged downstream.
package logger
