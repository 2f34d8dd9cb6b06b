// Package events provides types and interfaces for an event-driven architecture.
//
// Services emit events without knowing which handlers process them. The play
// service uses this to hand finished sessions to the session record sink
// without waiting for the write.
//
// The primary components are:
// - Event: a typed envelope with a JSON payload
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
