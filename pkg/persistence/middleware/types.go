// Package middleware provides composable wrappers around a
// ConversationStore. Wellness conversations carry sensitive content, so the
// store can be wrapped to mask personal data or encrypt messages at rest
// without the agents knowing.
package middleware

import "github.com/serenelab/wellspring/pkg/ports"

// Middleware allows wrapping a ConversationStore to add behavior.
type Middleware func(ports.ConversationStore) ports.ConversationStore

// Chain applies middlewares in order: the first listed is the outermost.
func Chain(store ports.ConversationStore, mws ...Middleware) ports.ConversationStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
