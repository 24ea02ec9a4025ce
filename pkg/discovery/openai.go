package discovery

import (
	"context"

	"github.com/avast/retry-go/v4"
	openai "github.com/sashabaranov/go-openai"

	"github.com/pkg/errors"
)

// DefaultOpenAIModel is the OpenAI-compatible counterpart of the default
// classifier.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIClient invokes an OpenAI-compatible chat completion API for
// discovery. Selected with `provider: openai` in configuration.
type OpenAIClient struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIClient creates a client from an API key taken at construction
// time.
func NewOpenAIClient(apiKey, model string, maxTokens int) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, &AuthError{Message: "no API key configured (set OPENAI_API_KEY)"}
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &OpenAIClient{
		client:    openai.NewClient(apiKey),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Model returns the configured model id.
func (c *OpenAIClient) Model() string {
	return c.model
}

// Invoke sends the prompt and returns the raw response, with the same
// retry and deadline semantics as the Anthropic client.
func (c *OpenAIClient) Invoke(ctx context.Context, prompt string) (Response, error) {
	completion, err := retry.DoWithData(
		func() (openai.ChatCompletionResponse, error) {
			return c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
				Model:     c.model,
				MaxTokens: c.maxTokens,
				Messages: []openai.ChatCompletionMessage{
					{Role: openai.ChatMessageRoleUser, Content: prompt},
				},
			})
		},
		retry.Attempts(transientAttempts),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransientOpenAI),
	)
	if err != nil {
		return Response{}, classifyOpenAI(err)
	}

	text := ""
	finishReason := ""
	if len(completion.Choices) > 0 {
		text = completion.Choices[0].Message.Content
		finishReason = string(completion.Choices[0].FinishReason)
	}

	promptTokens := completion.Usage.PromptTokens
	completionTokens := completion.Usage.CompletionTokens

	return Response{
		Text:             text,
		Model:            completion.Model,
		PromptTokens:     &promptTokens,
		CompletionTokens: &completionTokens,
		FinishReason:     finishReason,
	}, nil
}

func isTransientOpenAI(err error) bool {
	var apierr *openai.APIError
	if errors.As(err, &apierr) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	return true
}

func classifyOpenAI(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &TimeoutError{Message: err.Error()}
	}

	var apierr *openai.APIError
	if errors.As(err, &apierr) {
		switch apierr.HTTPStatusCode {
		case 401, 403:
			return &AuthError{Message: apierr.Error()}
		case 429:
			return &RateLimitError{Message: apierr.Error()}
		default:
			return &ClientError{Message: apierr.Error()}
		}
	}

	return &TimeoutError{Message: err.Error()}
}
