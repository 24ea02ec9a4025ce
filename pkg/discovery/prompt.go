package discovery

import (
	"fmt"
	"strings"
)

const promptTemplate = `You are a skill router for a development automation system. Your job is to analyze the user's request and select the most appropriate task or skill.

## User Request
%s

## Available Tasks (High-Level)
Tasks are high-level workflows that map to multiple skills:
%s

## Available Skills (Low-Level)
Skills are direct, specific capabilities:
%s

## Instructions
- Choose a **TASK** if the request is a high-level goal (e.g., "build a portal", "create an app")
- Choose a **SKILL** if the request is specific infrastructure (e.g., "set up PostgreSQL", "configure Cognito")
- Return up to %d matches, ranked by confidence

## Output Format
Respond with JSON only:
{"type": "task" or "skill", "name": "the-name", "confidence": 0.0-1.0, "reasoning": "why this matches"}

Or for multiple matches (array sorted by confidence descending):
[
  {"type": "task", "name": "...", "confidence": 0.9, "reasoning": "..."},
  {"type": "skill", "name": "...", "confidence": 0.7, "reasoning": "..."}
]`

// BuildPrompt formats the original (un-normalized) request and the
// catalog's complete task and skill listings into the discovery prompt.
// Every task and every skill must be present; categories never appear.
func BuildPrompt(request string, tasks, skills []Summary, maxResults int) (string, error) {
	if strings.TrimSpace(request) == "" {
		return "", &InvalidInputError{Message: "request cannot be empty"}
	}
	if len(skills) == 0 {
		return "", &InvalidInputError{Message: "catalog skill listing cannot be empty"}
	}
	if maxResults < 1 {
		maxResults = 1
	}

	return fmt.Sprintf(promptTemplate,
		request,
		formatListing(tasks, "(No tasks available)"),
		formatListing(skills, "(No skills available)"),
		maxResults,
	), nil
}

func formatListing(summaries []Summary, empty string) string {
	if len(summaries) == 0 {
		return empty
	}
	lines := make([]string, 0, len(summaries))
	for _, s := range summaries {
		lines = append(lines, fmt.Sprintf("- **%s**: %s", s.Name, s.Description))
	}
	return strings.Join(lines, "\n")
}
