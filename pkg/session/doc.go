/*
Package session implements per-session scratch state for the assistant.

A Session tracks the active thread id, a naming map from thread id to display
name, the session's visible message list, and the last parsed result for
re-render without recomputation. It is process-local, owned by exactly one
user connection, and is never the system of record: the ConversationStore is.
*/
package session
