// Package audit captures who queried what. Append-only; the engine emits one
// event per overview query so cross-workspace sweeps leave a trail.
package audit

import (
	"context"
	"time"
)

// Store persists audit events. Swap with concrete storage without touching
// the publisher.
type Store interface {
	Append(ctx context.Context, e Event) error
	ListByUser(ctx context.Context, userID string) ([]Event, error)
}

// Publisher captures structured audit events. It uses the storage layer for
// persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) Emit(ctx context.Context, e Event) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	return p.store.Append(ctx, e)
}

func (p *Publisher) List(ctx context.Context, userID string) ([]Event, error) {
	return p.store.ListByUser(ctx, userID)
}
