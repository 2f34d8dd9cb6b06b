// Package gemini provides an implementation of the generation.WordGenerator
// interface that uses Google's Gemini API to produce scrambled words for
// Word Wizard.
//
// This package is an infrastructure adapter: it renders the shared prompt
// template, calls the Gemini API through the google.golang.org/genai client,
// and hands the response text to generation.ParseWords. Transient API
// failures are retried with generation.Retry; responses stopped by the
// safety filters are reported as generation.ErrContentBlocked.
package gemini
