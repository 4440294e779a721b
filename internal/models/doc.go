// Package models lists the OpenAI and Gemini chat models that can serve as
// dictionary backends for the configured API keys.
package models
