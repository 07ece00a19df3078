package filter

import (
	"encoding/json"
	"fmt"

	"github.com/jmespath/go-jmespath"
	"github.com/sahilm/fuzzy"
	"github.com/studiowebux/resumedesk/internal/types"
)

// Apply applies filter and query expressions to a JSON document.
// Filter narrows results (e.g., [?analysis.rating=='8/10'])
// Query transforms/selects fields (e.g., [].filename)
func Apply(body string, filter string, query string) (string, error) {
	result := body

	if filter != "" {
		filtered, err := applyJMESPath(result, filter)
		if err != nil {
			return "", fmt.Errorf("failed to apply filter: %w", err)
		}
		result = filtered
	}

	if query != "" {
		queried, err := applyJMESPath(result, query)
		if err != nil {
			return "", fmt.Errorf("failed to apply query: %w", err)
		}
		result = queried
	}

	return result, nil
}

// ApplyValue marshals v to JSON and runs query against it
func ApplyValue(v any, query string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal value: %w", err)
	}
	if query == "" {
		return string(data), nil
	}
	return Apply(string(data), "", query)
}

// applyJMESPath applies a JMESPath expression to a JSON string
func applyJMESPath(jsonStr string, expression string) (string, error) {
	var data interface{}
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	jp, err := jmespath.Compile(expression)
	if err != nil {
		return "", fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return "", fmt.Errorf("JMESPath search failed: %w", err)
	}

	if result == nil {
		return "null", nil
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	return string(output), nil
}

// IsValidJMESPath checks if an expression is valid JMESPath syntax
func IsValidJMESPath(expression string) bool {
	_, err := jmespath.Compile(expression)
	return err == nil
}

// recordNames adapts a record slice to fuzzy.Source
type recordNames []types.ResumeRecord

func (r recordNames) String(i int) string { return r[i].Filename }
func (r recordNames) Len() int            { return len(r) }

// MatchRecords returns indices into records whose filename fuzzy-matches
// pattern, best match first. An empty pattern keeps every record in order.
func MatchRecords(records []types.ResumeRecord, pattern string) []int {
	if pattern == "" {
		indices := make([]int, len(records))
		for i := range records {
			indices[i] = i
		}
		return indices
	}

	matches := fuzzy.FindFrom(pattern, recordNames(records))
	indices := make([]int, len(matches))
	for i, m := range matches {
		indices[i] = m.Index
	}
	return indices
}
