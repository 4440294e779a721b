// Package dictionary looks up Japanese words and turns the results into
// flashcards. The default backend is the jisho.org word search API; chat
// models from OpenAI or Gemini can be used instead. Lookups that fail for any
// reason are dropped and reported as a SkipReason, never retried.
package dictionary
