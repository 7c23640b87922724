// Package event publishes domain events for downstream consumers. The
// storefront emits events on registration, review creation, and order
// placement; publishing failures are logged by callers and never block the
// request path.
package event

import (
	"context"

	"github.com/merchspace/storefront/internal/domain"
)

// Topic names for storefront events.
const (
	TopicUserRegistered = "user.registered"
	TopicReviewCreated  = "review.created"
	TopicOrderPlaced    = "order.placed"
)

// Publisher emits storefront domain events.
type Publisher interface {
	PublishUserRegistered(ctx context.Context, user *domain.User) error
	PublishReviewCreated(ctx context.Context, review *domain.Review) error
	PublishOrderPlaced(ctx context.Context, order *domain.Order) error
	Close() error
}

var _ Publisher = NoopPublisher{}

// NoopPublisher discards all events. Used when event publishing is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishUserRegistered(context.Context, *domain.User) error { return nil }
func (NoopPublisher) PublishReviewCreated(context.Context, *domain.Review) error {
	return nil
}
func (NoopPublisher) PublishOrderPlaced(context.Context, *domain.Order) error { return nil }
func (NoopPublisher) Close() error                                            { return nil }
