package inference

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the methods for AI inference operations
type Client interface {
	GenerateWords(ctx context.Context, params GenerateWordsRequest) (GenerateWordsResponse, error)
}

// GenerateWordsRequest holds parameters for generating word/hint pairs
type GenerateWordsRequest struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
	Age   int    `json:"age,omitempty"`

	// Words already in the learner's list; suggestions matching these are dropped.
	AvoidWords []string `json:"avoid_words,omitempty"`

	// Optional user template with {{topic}}, {{count}}, and {{age}} placeholders.
	// Sanitized before use; empty means the built-in template.
	PromptTemplate string `json:"prompt_template,omitempty"`
}

type GenerateWordsResponse struct {
	Suggestions []WordSuggestion
}

// WordSuggestion is a single generated word with its hint sentence
type WordSuggestion struct {
	Word string `json:"word"`
	Hint string `json:"hint"`
}

const (
	DefaultMaxRetryAttempts = 3

	DefaultGenerateCount = 10
	MaxGenerateCount     = 30
)
