package moderation

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_completer.go github.com/organizerhq/backoffice/internal/services/moderation Completer

// Service validates event descriptions before publication. The verdict
// comes from a chat-completion model when one is configured, with a
// keyword heuristic standing in whenever the model is unavailable or
// its reply cannot be parsed.
type Service interface {
	// ValidateDescription checks whether a description plausibly
	// describes an event. It always returns a verdict; only input
	// errors are surfaced.
	ValidateDescription(ctx context.Context, input *ValidateDescriptionInput) (*ValidateDescriptionOutput, error)
}

// Completer is the slice of the OpenAI client the service uses.
// *openai.Client satisfies this.
type Completer interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}
