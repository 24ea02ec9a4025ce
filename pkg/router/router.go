// Package router orchestrates the three-tier routing pipeline: a
// normalized query runs through the direct matcher, then the trigger
// matcher, then LLM discovery, short-circuiting at the first match. The
// matched skills are expanded into a dependency-ordered execution
// sequence. Routing is a stateless function over an immutable catalog
// snapshot and is safe for concurrent use.
package router

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/routelab/skillrouter/pkg/catalog"
	"github.com/routelab/skillrouter/pkg/deps"
	"github.com/routelab/skillrouter/pkg/discovery"
	"github.com/routelab/skillrouter/pkg/logger"
	"github.com/routelab/skillrouter/pkg/matching"
)

// DirectMatcher is the Tier 1 capability.
type DirectMatcher interface {
	Match(query string, cat *catalog.Catalog) matching.SkillMatch
}

// TriggerMatcher is the Tier 2 capability.
type TriggerMatcher interface {
	Match(query string, cat *catalog.Catalog) matching.TaskMatch
}

// Discoverer is the Tier 3 capability.
type Discoverer interface {
	Discover(ctx context.Context, request string, cat *catalog.Catalog) (discovery.Result, error)
}

// Snapshots supplies the current catalog snapshot. *catalog.Store
// satisfies it.
type Snapshots interface {
	Current() *catalog.Catalog
}

// staticSnapshot adapts a single catalog to the Snapshots interface.
type staticSnapshot struct {
	cat *catalog.Catalog
}

func (s staticSnapshot) Current() *catalog.Catalog { return s.cat }

// Router sequences normalize → Tier 1 → Tier 2 → Tier 3. If tier k
// matches, tier k+1 is never invoked; a query naming both a skill and a
// task trigger resolves to the skill.
type Router struct {
	snapshots Snapshots
	direct    DirectMatcher
	trigger   TriggerMatcher
	discover  Discoverer
}

// Option configures a Router.
type Option func(*Router)

// WithDirectMatcher overrides the Tier 1 matcher.
func WithDirectMatcher(m DirectMatcher) Option {
	return func(r *Router) { r.direct = m }
}

// WithTriggerMatcher overrides the Tier 2 matcher.
func WithTriggerMatcher(m TriggerMatcher) Option {
	return func(r *Router) { r.trigger = m }
}

// WithDiscoverer sets the Tier 3 discovery engine. Without one, Tier 3 is
// skipped and unmatched queries fall through to an error result.
func WithDiscoverer(d Discoverer) Option {
	return func(r *Router) { r.discover = d }
}

// New creates a router over a fixed catalog.
func New(cat *catalog.Catalog, opts ...Option) *Router {
	return NewWithSnapshots(staticSnapshot{cat: cat}, opts...)
}

// NewWithSnapshots creates a router over a swappable snapshot source.
func NewWithSnapshots(snapshots Snapshots, opts ...Option) *Router {
	r := &Router{
		snapshots: snapshots,
		direct:    matching.NewDirectMatcher(nil),
		trigger:   matching.NewTriggerMatcher(matching.DefaultThreshold),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Route runs the pipeline for one query. It never returns an error:
// every failure mode degrades to an error-typed result.
func (r *Router) Route(ctx context.Context, rawQuery string) Result {
	ctx, span := otel.Tracer("skillrouter").Start(ctx, "router.route")
	defer span.End()

	cat := r.snapshots.Current()
	resolver := deps.NewResolver(cat)
	log := logger.G(ctx)

	normalized := matching.Normalize(rawQuery)
	if normalized == "" {
		span.SetAttributes(attribute.String("route.type", string(RouteError)))
		return ErrorResult()
	}

	if match := r.direct.Match(normalized, cat); match.Matched() {
		resolution, err := resolver.Resolve(match.Name)
		if err != nil {
			log.WithError(err).Error("matched skill vanished from snapshot")
			return ErrorResult()
		}
		logWarnings(ctx, resolution)
		span.SetAttributes(
			attribute.String("route.type", string(RouteSkill)),
			attribute.String("route.matched", match.Name),
		)
		return Result{
			Type:           RouteSkill,
			Matched:        match.Name,
			Skills:         []string{match.Name},
			ExecutionOrder: resolution.ExecutionOrder,
			Tier:           1,
			Confidence:     1.0,
		}
	}

	if match := r.trigger.Match(normalized, cat); match.Matched() {
		resolution := resolver.ResolveMulti(match.Skills)
		logWarnings(ctx, resolution)
		span.SetAttributes(
			attribute.String("route.type", string(RouteTask)),
			attribute.String("route.matched", match.Name),
		)
		return Result{
			Type:           RouteTask,
			Matched:        match.Name,
			Skills:         match.Skills,
			ExecutionOrder: resolution.ExecutionOrder,
			Tier:           2,
			Confidence:     1.0,
			MatchedTrigger: match.Trigger,
		}
	}

	result := r.routeDiscovery(ctx, rawQuery, cat, resolver)
	span.SetAttributes(
		attribute.String("route.type", string(result.Type)),
		attribute.String("route.matched", result.Matched),
	)
	return result
}

// routeDiscovery runs Tier 3. The LLM sees the original query, not the
// normalized one. A name the catalog does not know is an error result,
// never coerced to a nearest neighbor.
func (r *Router) routeDiscovery(ctx context.Context, rawQuery string, cat *catalog.Catalog, resolver *deps.Resolver) Result {
	if r.discover == nil {
		return ErrorResult()
	}

	log := logger.G(ctx)
	discovered, err := r.discover.Discover(ctx, rawQuery, cat)
	if err != nil {
		log.WithError(err).Warn("discovery failed")
		return ErrorResult()
	}

	top := discovered.TopMatch()
	if top == nil {
		return ErrorResult()
	}

	if _, ok := cat.Skills[top.Name]; ok {
		resolution, err := resolver.Resolve(top.Name)
		if err != nil {
			return ErrorResult()
		}
		logWarnings(ctx, resolution)
		return Result{
			Type:           RouteDiscovery,
			Matched:        top.Name,
			Skills:         []string{top.Name},
			ExecutionOrder: resolution.ExecutionOrder,
			Tier:           3,
			Confidence:     top.Confidence,
		}
	}

	if task, ok := cat.Tasks[top.Name]; ok {
		resolution := resolver.ResolveMulti(task.Skills)
		logWarnings(ctx, resolution)
		return Result{
			Type:           RouteDiscovery,
			Matched:        top.Name,
			Skills:         append([]string(nil), task.Skills...),
			ExecutionOrder: resolution.ExecutionOrder,
			Tier:           3,
			Confidence:     top.Confidence,
		}
	}

	log.WithField("name", top.Name).Warn("discovery returned a name the catalog does not know")
	return ErrorResult()
}

func logWarnings(ctx context.Context, resolution deps.Result) {
	log := logger.G(ctx)
	for _, warning := range resolution.Warnings {
		log.WithField("kind", string(warning.Kind)).Warn(warning.String())
	}
}
