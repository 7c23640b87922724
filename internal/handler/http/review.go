package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/merchspace/storefront/pkg/httputil"
	"github.com/merchspace/storefront/pkg/validator"

	"github.com/merchspace/storefront/internal/auth"
	"github.com/merchspace/storefront/internal/review"
)

// ReviewHandler serves the product review endpoints.
type ReviewHandler struct {
	service *review.Service
	logger  *slog.Logger
}

// NewReviewHandler creates a review HTTP handler.
func NewReviewHandler(svc *review.Service, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{service: svc, logger: logger}
}

// List handles GET /api/products/{id}/reviews
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	reviews, err := h.service.ListByProduct(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reviews)
}

// Create handles POST /api/products/{id}/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httputil.WriteMessage(w, http.StatusUnauthorized, "Must be logged in to review")
		return
	}

	productID, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var input review.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid review data")
		return
	}
	if err := validator.Validate(input); err != nil {
		httputil.WriteValidationError(w, err, "Invalid review data")
		return
	}

	created, err := h.service.Create(r.Context(), user, productID, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}
