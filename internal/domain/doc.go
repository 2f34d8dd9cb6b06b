// Package domain holds the games, levels, emotion labels, children and
// session records shared by every other package. It has no dependencies on
// storage or transport.
package domain
