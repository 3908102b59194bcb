// Package parse coerces unreliable free-text model output into structured
// values. Models wrap JSON in prose, markdown fences, or commentary; this
// package recovers the embedded object when possible and reports failure so
// callers can substitute a schema-shaped fallback value. Nothing here ever
// panics or propagates a decode error: failure is a boolean, not an exception.
package parse

import (
	"encoding/json"
	"strings"
)

// Object extracts a JSON object from raw model output.
//
// It first attempts a strict decode of the whole text. On failure it retries
// on the substring between the first '{' and the last '}', which handles
// models that wrap the object in commentary or code fences. The second return
// value reports whether a valid object was found.
func Object(raw string) (json.RawMessage, bool) {
	text := strings.TrimSpace(raw)
	if isObject(text) {
		return json.RawMessage(text), true
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, false
	}

	candidate := text[start : end+1]
	if isObject(candidate) {
		return json.RawMessage(candidate), true
	}
	return nil, false
}

// Into decodes raw model output into v, using Object for extraction.
// It reports whether a genuine parse happened. On false, callers must assign
// their fallback value: v may have been partially written by a failed decode.
func Into(raw string, v any) bool {
	obj, ok := Object(raw)
	if !ok {
		return false
	}
	return json.Unmarshal(obj, v) == nil
}

// isObject reports whether s is exactly one valid JSON object.
func isObject(s string) bool {
	if !strings.HasPrefix(s, "{") {
		return false
	}
	var probe map[string]json.RawMessage
	return json.Unmarshal([]byte(s), &probe) == nil
}
