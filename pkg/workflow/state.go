package workflow

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// State is the shared mutable record passed through graph nodes.
// Fields are optional: a node may read a field no earlier node set and must
// handle absence. A State instance is owned exclusively by one run; it is
// never shared between concurrent runs.
type State struct {
	values map[string]any

	// Notices collects user-visible degradation notes recorded by nodes
	// (collaborator failures, parse fallbacks). Rendered as plain notices,
	// never raw error traces.
	Notices []string
}

// NewState creates an empty state.
func NewState() *State {
	return &State{values: make(map[string]any)}
}

// Set stores a value under key, replacing any previous value.
func (s *State) Set(key string, value any) {
	s.values[key] = value
}

// Get returns the value stored under key, if any.
func (s *State) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// String returns the string stored under key, or "" when the field is absent
// or holds a non-string value.
func (s *State) String(key string) string {
	if v, ok := s.values[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// Float returns the float64 stored under key, or 0 when absent.
func (s *State) Float(key string) float64 {
	if v, ok := s.values[key]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		}
	}
	return 0
}

// Decode maps the value stored under key into out using mapstructure.
// It accepts both typed structs and generic map values, so nodes can read
// fields written by earlier nodes without caring which shape was stored.
func (s *State) Decode(key string, out any) error {
	v, ok := s.values[key]
	if !ok {
		return fmt.Errorf("state field %q is not set", key)
	}
	if err := mapstructure.Decode(v, out); err != nil {
		return fmt.Errorf("failed to decode state field %q: %w", key, err)
	}
	return nil
}

// AddNotice records a user-visible degradation note.
func (s *State) AddNotice(format string, args ...any) {
	s.Notices = append(s.Notices, fmt.Sprintf(format, args...))
}
