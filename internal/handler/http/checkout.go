package http

import (
	"log/slog"
	"net/http"

	"github.com/merchspace/storefront/pkg/httputil"

	"github.com/merchspace/storefront/internal/auth"
	"github.com/merchspace/storefront/internal/checkout"
)

// CheckoutHandler serves the checkout endpoint.
type CheckoutHandler struct {
	service *checkout.Service
	logger  *slog.Logger
}

// NewCheckoutHandler creates a checkout HTTP handler.
func NewCheckoutHandler(svc *checkout.Service, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{service: svc, logger: logger}
}

// Checkout handles POST /api/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	order, err := h.service.Checkout(r.Context(), user.ID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, order)
}
