package game

import (
	"encoding/json"
	"strings"
)

// stripCodeFence removes leading/trailing ```json ... ``` markers the oracle
// sometimes wraps structured responses in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// decodeStringList parses a payload that should be a JSON list of strings.
// Direct arrays and object-wrapped arrays under common keys are both
// accepted; anything else yields an empty list, never an error.
func decodeStringList(content string) []string {
	content = stripCodeFence(content)
	if content == "" {
		return []string{}
	}

	var arr []string
	if err := json.Unmarshal([]byte(content), &arr); err == nil {
		return cleanStrings(arr)
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(content), &obj); err != nil {
		return []string{}
	}
	for _, key := range []string{"facts", "results", "items", "lines"} {
		raw, ok := obj[key].([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(raw))
		for _, v := range raw {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return cleanStrings(out)
	}
	return []string{}
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// decodeSingleKey parses a payload that should be a JSON object holding one
// string (or null) under the given key. ok is false for any malformed
// payload or a null value.
func decodeSingleKey(content, key string) (string, bool) {
	content = stripCodeFence(content)
	if content == "" {
		return "", false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(content), &obj); err != nil {
		return "", false
	}
	s, ok := obj[key].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
