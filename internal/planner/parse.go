package planner

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON pulls the JSON payload out of a model response that may wrap it
// in a markdown code fence or surround it with prose.
func ExtractJSON(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return "", ErrEmptyResponse
	}

	if start := strings.Index(clean, "```"); start >= 0 {
		rest := clean[start+3:]
		rest = strings.TrimPrefix(rest, "json")
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		clean = strings.TrimSpace(rest)
	}
	clean = strings.Trim(clean, "`")
	clean = strings.TrimSpace(clean)

	// Tolerate prose before/after the payload by cutting to the outermost
	// bracket pair.
	first := strings.IndexAny(clean, "[{")
	if first < 0 {
		return "", fmt.Errorf("%w: no JSON payload found", ErrSchema)
	}
	var last int
	if clean[first] == '[' {
		last = strings.LastIndex(clean, "]")
	} else {
		last = strings.LastIndex(clean, "}")
	}
	if last <= first {
		return "", fmt.Errorf("%w: unterminated JSON payload", ErrSchema)
	}
	return clean[first : last+1], nil
}

func decodeInto(raw string, target any) error {
	payload, err := ExtractJSON(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(payload), target); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}
