package driven

import "context"

// LLMService is the language-model boundary: a single-shot prompt to
// text call. The core depends only on this signature, not on any
// particular provider. The call is treated as atomic; callers needing
// timeouts wrap the context themselves.
//
// Implementations may include:
//   - Gemini
//   - OpenAI (GPT-4o family)
//   - Ollama (local models)
type LLMService interface {
	// Generate produces a completion for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
