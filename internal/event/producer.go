package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/merchspace/storefront/internal/domain"
	pkgkafka "github.com/merchspace/storefront/pkg/kafka"
)

// Aggregate type constants.
const (
	AggregateTypeUser   = "user"
	AggregateTypeReview = "review"
	AggregateTypeOrder  = "order"
)

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderPlacedData is the payload for an order.placed event.
type OrderPlacedData struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Total     float64   `json:"total"`
	ItemCount int       `json:"item_count"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

var _ Publisher = (*KafkaPublisher)(nil)

// KafkaPublisher publishes storefront domain events to Kafka.
type KafkaPublisher struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewKafkaPublisher creates a Kafka-backed event publisher.
func NewKafkaPublisher(kafka *pkgkafka.Producer, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *KafkaPublisher) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:       user.ID,
		Username: user.Username,
	}

	event, err := pkgkafka.NewEvent(TopicUserRegistered, formatID(user.ID), AggregateTypeUser, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create user.registered event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish user.registered event: %w", err)
	}

	return nil
}

// PublishReviewCreated publishes a review.created event.
func (p *KafkaPublisher) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	data := ReviewCreatedData{
		ID:        review.ID,
		ProductID: review.ProductID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		CreatedAt: review.CreatedAt,
	}

	event, err := pkgkafka.NewEvent(TopicReviewCreated, formatID(review.ID), AggregateTypeReview, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create review.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewCreated, event); err != nil {
		return fmt.Errorf("publish review.created event: %w", err)
	}

	return nil
}

// PublishOrderPlaced publishes an order.placed event.
func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	data := OrderPlacedData{
		ID:        order.ID,
		UserID:    order.UserID,
		Total:     order.Total,
		ItemCount: len(order.Items),
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	}

	event, err := pkgkafka.NewEvent(TopicOrderPlaced, order.ID, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.placed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderPlaced, event); err != nil {
		return fmt.Errorf("publish order.placed event: %w", err)
	}

	return nil
}

// Close flushes and closes the underlying Kafka producer.
func (p *KafkaPublisher) Close() error {
	return p.kafka.Close()
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
