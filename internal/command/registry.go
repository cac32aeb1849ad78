package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownCommand = errors.New("unknown command")

// HandlerFunc executes a single named command. The payload is the raw JSON
// argument sent by the frontend; handlers decode what they need from it.
type HandlerFunc func(ctx context.Context, payload json.RawMessage) (any, error)

// Registry maps command names to handlers. It is built once during startup
// and treated as read-only afterwards, so dispatch needs no locking.
type Registry struct {
	handlers map[string]HandlerFunc
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]HandlerFunc)}
}

// Register binds a handler to a command name. Registering the same name
// twice is a programming error and panics during startup.
func (r *Registry) Register(name string, fn HandlerFunc) {
	if _, exists := r.handlers[name]; exists {
		panic(fmt.Sprintf("command %q registered twice", name))
	}
	r.handlers[name] = fn
}

// Dispatch invokes the named command with the given payload.
func (r *Registry) Dispatch(ctx context.Context, name string, payload json.RawMessage) (any, error) {
	fn, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return fn(ctx, payload)
}

// Names lists the registered command names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
