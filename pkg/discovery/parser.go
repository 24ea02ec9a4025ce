package discovery

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// confidenceSlack tolerates small floating point drift outside [0, 1];
// anything beyond it is rejected rather than clamped.
const confidenceSlack = 0.01

var codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*\n(.*?)\n```")

// Parse converts a raw provider response into a Result. It accepts a
// single match object or an array of them, strips markdown code fences
// before decoding, clamps slightly out-of-range confidences, and sorts
// matches by confidence descending. Structurally malformed payloads fail
// with a ParseError carrying the raw text.
func Parse(resp Response) (Result, error) {
	result := Result{
		RawResponse:      resp.Text,
		Model:            resp.Model,
		PromptTokens:     resp.PromptTokens,
		CompletionTokens: resp.CompletionTokens,
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return result, nil
	}

	if m := codeFenceRe.FindStringSubmatch(resp.Text); m != nil {
		text = strings.TrimSpace(m[1])
	}

	var raw json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return Result{}, &ParseError{Message: "invalid JSON: " + err.Error(), Raw: resp.Text}
	}

	var entries []json.RawMessage
	switch {
	case strings.HasPrefix(text, "{"):
		entries = []json.RawMessage{raw}
	case strings.HasPrefix(text, "["):
		if err := json.Unmarshal(raw, &entries); err != nil {
			return Result{}, &ParseError{Message: "invalid JSON array: " + err.Error(), Raw: resp.Text}
		}
	default:
		return Result{}, &ParseError{Message: "expected JSON object or array", Raw: resp.Text}
	}

	for _, entry := range entries {
		match, err := parseMatch(entry, resp.Text)
		if err != nil {
			return Result{}, err
		}
		result.Matches = append(result.Matches, match)
	}

	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].Confidence > result.Matches[j].Confidence
	})

	return result, nil
}

// rawMatch uses pointer fields so missing keys are distinguishable from
// zero values.
type rawMatch struct {
	Type       *string  `json:"type"`
	Name       *string  `json:"name"`
	Confidence *float64 `json:"confidence"`
	Reasoning  *string  `json:"reasoning"`
}

func parseMatch(entry json.RawMessage, raw string) (Match, error) {
	var rm rawMatch
	if err := json.Unmarshal(entry, &rm); err != nil {
		return Match{}, &ParseError{Message: "malformed match entry: " + err.Error(), Raw: raw}
	}

	var missing []string
	if rm.Type == nil {
		missing = append(missing, "type")
	}
	if rm.Name == nil {
		missing = append(missing, "name")
	}
	if rm.Confidence == nil {
		missing = append(missing, "confidence")
	}
	if rm.Reasoning == nil {
		missing = append(missing, "reasoning")
	}
	if len(missing) > 0 {
		return Match{}, &ParseError{
			Message: "missing required fields: " + strings.Join(missing, ", "),
			Raw:     raw,
		}
	}

	matchType := MatchType(*rm.Type)
	if matchType != MatchTask && matchType != MatchSkill {
		return Match{}, &ParseError{
			Message: fmt.Sprintf("invalid type %q, must be 'task' or 'skill'", *rm.Type),
			Raw:     raw,
		}
	}
	if strings.TrimSpace(*rm.Name) == "" {
		return Match{}, &ParseError{Message: "name must be a non-empty string", Raw: raw}
	}
	if strings.TrimSpace(*rm.Reasoning) == "" {
		return Match{}, &ParseError{Message: "reasoning must be a non-empty string", Raw: raw}
	}

	confidence := *rm.Confidence
	switch {
	case confidence < -confidenceSlack:
		return Match{}, &ParseError{
			Message: fmt.Sprintf("confidence %v is below 0.0", confidence),
			Raw:     raw,
		}
	case confidence > 1+confidenceSlack:
		return Match{}, &ParseError{
			Message: fmt.Sprintf("confidence %v is above 1.0", confidence),
			Raw:     raw,
		}
	case confidence < 0:
		confidence = 0
	case confidence > 1:
		confidence = 1
	}

	return Match{
		Type:       matchType,
		Name:       *rm.Name,
		Confidence: confidence,
		Reasoning:  *rm.Reasoning,
	}, nil
}
