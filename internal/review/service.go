// Package review implements the product review workflow.
package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/merchspace/storefront/internal/domain"
	"github.com/merchspace/storefront/internal/event"
	"github.com/merchspace/storefront/internal/storage"
)

// Service implements the business logic for listing and submitting reviews.
type Service struct {
	reviews  storage.ReviewStore
	producer event.Publisher
	logger   *slog.Logger
}

// NewService creates a review service.
func NewService(reviews storage.ReviewStore, producer event.Publisher, logger *slog.Logger) *Service {
	return &Service{
		reviews:  reviews,
		producer: producer,
		logger:   logger,
	}
}

// Input holds the client-supplied fields of a new review.
type Input struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

// ListByProduct returns all reviews for a product, oldest first. A product
// with no reviews yields an empty list, never an error.
func (s *Service) ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	reviews, err := s.reviews.GetReviews(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get reviews: %w", err)
	}
	return reviews, nil
}

// Create records a review by the given user. Identity fields come from the
// authenticated user, never from the request body.
func (s *Service) Create(ctx context.Context, user *domain.User, productID int64, input Input) (*domain.Review, error) {
	review, err := s.reviews.CreateReview(ctx, productID, user.ID, user.Username, input.Rating, input.Comment)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	// Publish review event (non-blocking on failure).
	if err := s.producer.PublishReviewCreated(ctx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.created event",
			slog.Int64("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review created",
		slog.Int64("review_id", review.ID),
		slog.Int64("product_id", productID),
		slog.Int64("user_id", user.ID),
	)

	return review, nil
}
