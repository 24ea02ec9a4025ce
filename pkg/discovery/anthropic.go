package discovery

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"
)

const (
	// DefaultAnthropicModel is a fast, small classifier; discovery is a
	// single classification call, not generation.
	DefaultAnthropicModel = "claude-3-5-haiku-20241022"
	// DefaultMaxTokens bounds the classification response.
	DefaultMaxTokens = 300

	transientAttempts = 2
)

// AnthropicClient invokes the Anthropic Messages API for discovery.
// Credentials are taken at construction time, never per call.
type AnthropicClient struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicClient creates a client from an API key. An empty key is an
// AuthError up front rather than a failed call later.
func NewAnthropicClient(apiKey, model string, maxTokens int64) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, &AuthError{Message: "no API key configured (set ANTHROPIC_API_KEY)"}
	}
	if model == "" {
		model = DefaultAnthropicModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &AnthropicClient{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Model returns the configured model id.
func (c *AnthropicClient) Model() string {
	return c.model
}

// Invoke sends the prompt and returns the raw response. The caller's
// deadline is honored; transient connection drops are retried once, but
// auth failures, rate limits, and deadline expiries never are.
func (c *AnthropicClient) Invoke(ctx context.Context, prompt string) (Response, error) {
	message, err := retry.DoWithData(
		func() (*anthropic.Message, error) {
			return c.client.Messages.New(ctx, anthropic.MessageNewParams{
				Model:     anthropic.Model(c.model),
				MaxTokens: c.maxTokens,
				Messages: []anthropic.MessageParam{
					anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
				},
			})
		},
		retry.Attempts(transientAttempts),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransientAnthropic),
	)
	if err != nil {
		return Response{}, classifyAnthropic(err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(variant.Text)
		}
	}

	promptTokens := int(message.Usage.InputTokens)
	completionTokens := int(message.Usage.OutputTokens)

	return Response{
		Text:             text.String(),
		Model:            string(message.Model),
		PromptTokens:     &promptTokens,
		CompletionTokens: &completionTokens,
		FinishReason:     string(message.StopReason),
	}, nil
}

// isTransientAnthropic reports whether a failure is a connection-level
// problem worth a second attempt. API status errors and context expiry
// are not.
func isTransientAnthropic(err error) bool {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	return true
}

// classifyAnthropic translates provider-layer failures into the typed
// taxonomy.
func classifyAnthropic(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &TimeoutError{Message: err.Error()}
	}

	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		switch apierr.StatusCode {
		case 401, 403:
			return &AuthError{Message: apierr.Error()}
		case 429:
			return &RateLimitError{Message: apierr.Error()}
		default:
			return &ClientError{Message: apierr.Error()}
		}
	}

	// Anything left is a connection failure that survived the retry.
	return &TimeoutError{Message: err.Error()}
}
