package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/routelab/skillrouter/pkg/discovery"
	"github.com/routelab/skillrouter/pkg/matching"
	"github.com/routelab/skillrouter/pkg/router"
)

// skillsRoot resolves the skills root from configuration, defaulting to
// ~/.claude/skills.
func skillsRoot() (string, error) {
	if root := viper.GetString("skills_root"); root != "" {
		return root, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve user home directory")
	}
	return filepath.Join(home, ".claude", "skills"), nil
}

// catalogPath resolves the catalog file path, defaulting to
// <skills-root>/catalog.yaml.
func catalogPath() (string, error) {
	if path := viper.GetString("catalog"); path != "" {
		return path, nil
	}
	root, err := skillsRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "catalog.yaml"), nil
}

// llmTimeout returns the Tier 3 deadline.
func llmTimeout() time.Duration {
	d := viper.GetDuration("llm_timeout")
	if d <= 0 {
		d = 15 * time.Second
	}
	return d
}

// newDiscoverer builds the Tier 3 engine from configuration. Credentials
// are read here, once, at startup. A nil return with no error means no
// credentials are configured and Tier 3 is disabled.
func newDiscoverer() (router.Discoverer, error) {
	model := viper.GetString("model")
	maxTokens := viper.GetInt("max_tokens")

	switch provider := viper.GetString("provider"); provider {
	case "", "anthropic":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, nil
		}
		client, err := discovery.NewAnthropicClient(apiKey, model, int64(maxTokens))
		if err != nil {
			return nil, err
		}
		return discovery.NewEngine(client), nil
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, nil
		}
		client, err := discovery.NewOpenAIClient(apiKey, model, maxTokens)
		if err != nil {
			return nil, err
		}
		return discovery.NewEngine(client), nil
	default:
		return nil, errors.Errorf("unknown provider %q (expected anthropic or openai)", provider)
	}
}

// routerOptions assembles the matcher and discovery options shared by the
// route, hook, and serve commands.
func routerOptions() ([]router.Option, error) {
	opts := []router.Option{
		router.WithTriggerMatcher(matching.NewTriggerMatcher(viper.GetFloat64("threshold"))),
	}
	discoverer, err := newDiscoverer()
	if err != nil {
		return nil, err
	}
	if discoverer != nil {
		opts = append(opts, router.WithDiscoverer(discoverer))
	}
	return opts, nil
}
