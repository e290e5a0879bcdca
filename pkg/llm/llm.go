package llm

import "context"

// Generator is the single capability the relay needs from a hosted model:
// turn one prompt into text. An empty string with a nil error is a content
// gap, not a failure. It hides concrete providers to preserve dependency direction.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Model names the backing model, for logs and inquiry records.
	Model() string
}
