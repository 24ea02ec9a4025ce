package discovery

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/routelab/skillrouter/pkg/catalog"
	"github.com/routelab/skillrouter/pkg/logger"
)

// Client is a discovery LLM provider: one prompt in, one raw response out.
type Client interface {
	Invoke(ctx context.Context, prompt string) (Response, error)
	Model() string
}

// Engine composes prompt building, provider invocation, and response
// parsing. Provider failures propagate as typed errors; parse failures
// degrade to an empty result carrying the error text so routing can
// continue.
type Engine struct {
	client     Client
	maxResults int
}

// NewEngine creates an engine around a provider client.
func NewEngine(client Client) *Engine {
	return &Engine{client: client, maxResults: 1}
}

// WithMaxResults sets how many matches the prompt asks for.
func (e *Engine) WithMaxResults(n int) *Engine {
	if n > 0 {
		e.maxResults = n
	}
	return e
}

// Discover classifies the original (un-normalized) request against the
// catalog's task and skill listings.
func (e *Engine) Discover(ctx context.Context, request string, cat *catalog.Catalog) (Result, error) {
	tasks := make([]Summary, 0, len(cat.TaskOrder))
	for _, task := range cat.OrderedTasks() {
		tasks = append(tasks, Summary{Name: task.Name, Description: task.Description})
	}
	skills := make([]Summary, 0, len(cat.SkillOrder))
	for _, skill := range cat.OrderedSkills() {
		skills = append(skills, Summary{Name: skill.Name, Description: skill.Description})
	}

	prompt, err := BuildPrompt(request, tasks, skills, e.maxResults)
	if err != nil {
		return Result{}, err
	}

	ctx, span := otel.Tracer("skillrouter").Start(ctx, "discovery.invoke")
	span.SetAttributes(attribute.String("llm.model", e.client.Model()))
	resp, err := e.client.Invoke(ctx, prompt)
	span.End()
	if err != nil {
		return Result{}, err
	}

	result, err := Parse(resp)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			logger.G(ctx).WithError(parseErr).
				WithField("raw_response", parseErr.Raw).
				Warn("discovery response unparseable, degrading to empty result")
			return Result{
				RawResponse: parseErr.Error(),
				Model:       "parse-error",
			}, nil
		}
		return Result{}, err
	}

	return result, nil
}
