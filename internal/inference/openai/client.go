package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/spellcoach/spellcoach/internal/inference"
)

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
}

func NewClient(apiKey, model string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL("https://api.openai.com/v1")
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

func (client Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Retry on JSON parsing errors as they might be due to incomplete responses
	errStr := err.Error()
	if strings.Contains(errStr, "json.Unmarshal") || strings.Contains(errStr, "unexpected end of JSON input") {
		return true
	}

	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}

// GenerateWords implements the inference.Client interface
func (client *Client) GenerateWords(
	ctx context.Context,
	params inference.GenerateWordsRequest,
) (inference.GenerateWordsResponse, error) {
	var result inference.GenerateWordsResponse
	if err := retry.Do(
		func() error {
			response, err := client.generateWords(ctx, params)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return inference.GenerateWordsResponse{}, err
	}
	return result, nil
}

const systemPrompt = `You are a helper for a children's spelling practice app. You suggest words for a child to practice spelling, each with a hint sentence.

STRICT OUTPUT: Return ONLY a JSON array, no text outside it. Each element is an object:
{"word": "...", "hint": "..."}

RULES
- Words must be single dictionary words in lowercase. Apostrophes and hyphens are allowed ("don't", "ice-cream"); digits, spaces, and other punctuation are not.
- The hint describes or uses the idea of the word WITHOUT containing the word itself or any spelling of it. The child hears the hint read aloud and must spell the word, so the hint must never give the spelling away.
- Hints are one short sentence a child can understand.
- Match the word difficulty to the requested age.
- Never repeat a word from the avoid list.
- Return exactly the requested number of suggestions.`

func (client *Client) getRequestBody(args inference.GenerateWordsRequest) ChatCompletionRequest {
	// One few-shot exchange pins the output shape.
	exampleRequest := `Suggest 2 spelling words about the sea for a 7 year old child. Avoid: fish`
	exampleAnswer := `[{"word":"wave","hint":"It rolls across the water and crashes on the beach."},{"word":"shell","hint":"You can find this hard spiral home of a sea creature in the sand."}]`

	messages := []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: exampleRequest},
		{Role: RoleAssistant, Content: exampleAnswer},
		{Role: RoleUser, Content: BuildPrompt(args)},
	}

	return ChatCompletionRequest{
		Model:       client.model,
		Temperature: 0.7,
		Messages:    messages,
	}
}

// generateWords performs a single chat-completions call and sanitizes
// the model output.
func (client *Client) generateWords(
	ctx context.Context,
	args inference.GenerateWordsRequest,
) (inference.GenerateWordsResponse, error) {
	if args.Count <= 0 {
		args.Count = inference.DefaultGenerateCount
	}
	if args.Count > inference.MaxGenerateCount {
		args.Count = inference.MaxGenerateCount
	}

	requestBody := client.getRequestBody(args)

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return inference.GenerateWordsResponse{}, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return inference.GenerateWordsResponse{}, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return inference.GenerateWordsResponse{}, fmt.Errorf("empty response body or choices: %s", response.String())
	}

	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return inference.GenerateWordsResponse{}, fmt.Errorf("empty response content: %s", response.String())
	}
	slog.Default().Debug("openai response content",
		"request", requestBody,
		"response", responseBody,
	)

	var decoded []inference.WordSuggestion
	if err := json.NewDecoder(strings.NewReader(stripCodeFence(content))).Decode(&decoded); err != nil {
		slog.Default().Error("Failed to parse OpenAI response as JSON",
			"request", requestBody,
			"error", err)
		return inference.GenerateWordsResponse{}, fmt.Errorf("json.Unmarshal(%s) > %w", content, err)
	}

	return inference.GenerateWordsResponse{
		Suggestions: SanitizeSuggestions(decoded, args),
	}, nil
}
