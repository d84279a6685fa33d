package storefront

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jafarshop/storefront/internal/domain"
)

// FetchOrder handles GET /api/orders/{orderId}
func (c *Client) FetchOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
