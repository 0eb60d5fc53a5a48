package mocks

import (
	"context"
	"courtbook/infras/otel"
	"sync"
)

// Otel hands out recording scopes keyed by span name.
type Otel struct {
	mu     sync.Mutex
	scopes map[string]*Scope
}

func NewOtel() otel.Otel {
	return NewRecordingOtel()
}

func NewRecordingOtel() *Otel {
	return &Otel{scopes: map[string]*Scope{}}
}

func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	scope := NewRecordingScope()

	o.mu.Lock()
	o.scopes[spanName] = scope
	o.mu.Unlock()

	return ctx, scope
}

// Scope returns the most recent scope opened under spanName, or nil.
func (o *Otel) Scope(spanName string) *Scope {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.scopes[spanName]
}
