// Package openai provides a generation.WordGenerator backed by the OpenAI
// chat completions API, as an alternative to the Gemini adapter. It shares
// the prompt template, response parsing and retry policy of the generation
// package.
package openai
