// Package catalog proxies product data from the upstream catalog API. The
// storefront owns no product data; every product and category read is served
// from upstream, behind a circuit breaker so a failing catalog degrades the
// storefront instead of hanging it.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	apperrors "github.com/merchspace/storefront/pkg/errors"
	"github.com/merchspace/storefront/pkg/httpclient"

	"github.com/merchspace/storefront/internal/domain"
)

// DefaultBaseURL is the public catalog API the storefront proxies by default.
const DefaultBaseURL = "https://api.escuelajs.co/api/v1"

const upstreamName = "catalog"

// errUpstreamNotFound marks a 404/400 from the upstream catalog.
var errUpstreamNotFound = errors.New("catalog: upstream resource not found")

// Client fetches products and categories from the upstream catalog.
type Client struct {
	http    *httpclient.CircuitBreakerClient
	baseURL string
	logger  *slog.Logger
}

// NewClient creates a catalog client against the given base URL. Pass an
// empty baseURL to use DefaultBaseURL.
func NewClient(http *httpclient.CircuitBreakerClient, baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    http,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Products returns the full upstream product list.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.getJSON(ctx, c.baseURL+"/products", &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// Product returns a single product by its upstream ID.
func (c *Client) Product(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	if err := c.getJSON(ctx, fmt.Sprintf("%s/products/%d", c.baseURL, id), &product); err != nil {
		if errors.Is(err, errUpstreamNotFound) {
			return nil, apperrors.NotFound("product", strconv.FormatInt(id, 10))
		}
		return nil, err
	}
	return &product, nil
}

// Categories returns the upstream category list.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.getJSON(ctx, c.baseURL+"/categories", &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

// Ping probes the upstream catalog for readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.http.Get(ctx, c.baseURL+"/categories")
	if err != nil {
		return fmt.Errorf("catalog ping: %w", err)
	}
	defer drain(resp)
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("catalog ping: upstream returned %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, url string, target any) error {
	resp, err := c.http.Get(ctx, url)
	if err != nil {
		return apperrors.Upstream(upstreamName, err)
	}
	defer drain(resp)

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest:
		// The upstream answers 400 for IDs it cannot parse; both read as
		// "no such resource" to storefront callers.
		return errUpstreamNotFound
	default:
		c.logger.WarnContext(ctx, "unexpected catalog response",
			slog.String("url", url),
			slog.Int("status", resp.StatusCode),
		)
		return apperrors.Upstream(upstreamName, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return apperrors.Upstream(upstreamName, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// drain discards any unread body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
