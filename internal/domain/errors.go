package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnknownGame is returned when a game name is not one of the supported games.
	ErrUnknownGame = errors.New("unknown game")

	// ErrInvalidLevel is returned when a stored or requested level is outside
	// the supported range. The level engine clamps instead of returning it.
	ErrInvalidLevel = errors.New("invalid level")

	// ErrEmptyName is returned when a required name is empty.
	ErrEmptyName = errors.New("name cannot be empty")
)
