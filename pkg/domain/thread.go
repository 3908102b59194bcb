package domain

import "time"

// Thread is a persisted, ordered conversation history identified by an opaque id.
// Messages grow monotonically; existing entries are never rewritten.
type Thread struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Messages    []Message `json:"messages"`
}
