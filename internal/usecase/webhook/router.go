package webhook

import (
	"context"
	"fmt"
	"sync"
)

// Handler processes one webhook event payload.
type Handler func(ctx context.Context, payload map[string]any) (map[string]any, error)

// Router dispatches webhook events to handlers registered by event type.
// Registering an event type again replaces the previous handler.
type Router struct {
	mu     sync.RWMutex
	routes map[string]Handler
}

// NewRouter creates a new webhook Router instance
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]Handler),
	}
}

// Register binds a handler to an event type.
func (r *Router) Register(eventType string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[eventType] = handler
}

// Dispatch routes the payload to the handler for eventType. An unregistered
// event type is an error.
func (r *Router) Dispatch(ctx context.Context, eventType string, payload map[string]any) (map[string]any, error) {
	r.mu.RLock()
	handler, ok := r.routes[eventType]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("no handler for event %q", eventType)
	}
	return handler(ctx, payload)
}
