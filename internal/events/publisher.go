package events

import (
	"context"
)

// Publisher delivers ledger events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, event *LedgerEvent) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

var _ Publisher = NopPublisher{}

func (NopPublisher) Publish(context.Context, *LedgerEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
