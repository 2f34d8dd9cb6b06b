// Package api exposes the child, session and level endpoints over HTTP and
// the per-session emotion websocket. Handlers decode and validate requests,
// call the services and map their errors to status codes and safe messages.
package api
