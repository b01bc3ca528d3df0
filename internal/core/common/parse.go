package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON cleans and unmarshals an LLM response into T. Markdown code
// fences are stripped first; if the remainder still fails to parse, the first
// balanced {...} substring is extracted and retried.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	jsonStr := StripCodeFences(strings.TrimSpace(response))

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err == nil {
		return result, nil
	}

	extracted, ok := extractObject(jsonStr)
	if !ok {
		return zero, fmt.Errorf("no JSON object found in response")
	}

	if err := json.Unmarshal([]byte(extracted), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return result, nil
}

// StripCodeFences removes a surrounding ``` or ```json block, returning the
// inner content. Text without fences is returned unchanged.
func StripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}

	lines := strings.Split(s, "\n")
	var inner []string
	inBlock := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") && !inBlock {
			inBlock = true
			continue
		}
		if trimmed == "```" {
			break
		}
		if inBlock {
			inner = append(inner, line)
		}
	}
	return strings.Join(inner, "\n")
}

// extractObject returns the first balanced top-level {...} substring.
// Braces inside JSON strings are ignored.
func extractObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
