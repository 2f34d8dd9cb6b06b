// Package generation defines the boundary between the content catalog and
// the LLM services that generate scrambled words for the Word Wizard game.
//
// It holds the WordGenerator interface, the errors implementations return,
// the default prompt template and the parsing of model responses. Provider
// adapters live in internal/platform/gemini and internal/platform/openai.
package generation
