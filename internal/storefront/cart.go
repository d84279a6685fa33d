package storefront

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jafarshop/storefront/internal/domain"
)

func cartPath(userID string) string {
	return fmt.Sprintf("/api/user/%s/cart", url.PathEscape(userID))
}

func cartItemPath(userID, itemID string) string {
	return cartPath(userID) + "/" + url.PathEscape(itemID)
}

// quantityRequest is the body of PUT /api/user/{userId}/cart/{itemId}
type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// AttachmentsPayload is the attachments body. Images travel by name only.
type AttachmentsPayload struct {
	Text   string   `json:"text"`
	Images []string `json:"images"`
}

// UpdateOptionsRequest is the body of PUT /api/user/{userId}/cart/update-options
type UpdateOptionsRequest struct {
	ProductID       string             `json:"productId"`
	SelectedOptions map[string]string  `json:"selectedOptions"`
	Attachments     AttachmentsPayload `json:"attachments"`
}

// UpdateOptionsResponse is what the backend answers to an options update
type UpdateOptionsResponse struct {
	Message  string           `json:"message,omitempty"`
	CartItem *domain.CartItem `json:"cartItem,omitempty"`
}

// NewAttachmentsPayload serializes attachments for the wire
func NewAttachmentsPayload(a *domain.Attachments) AttachmentsPayload {
	p := AttachmentsPayload{Images: []string{}}
	if a == nil {
		return p
	}
	p.Text = a.Text
	for _, img := range a.Images {
		p.Images = append(p.Images, img.Name)
	}
	return p
}

// FetchCart handles GET /api/user/{userId}/cart
func (c *Client) FetchCart(ctx context.Context, userID string) ([]domain.CartItem, error) {
	var items []domain.CartItem
	if err := c.doJSON(ctx, http.MethodGet, cartPath(userID), nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return items, nil
}

// UpdateQuantity handles PUT /api/user/{userId}/cart/{itemId}
func (c *Client) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	return c.doJSON(ctx, http.MethodPut, cartItemPath(userID, itemID), quantityRequest{Quantity: quantity}, nil)
}

// RemoveItem handles DELETE /api/user/{userId}/cart/{itemId}
func (c *Client) RemoveItem(ctx context.Context, userID, itemID string) error {
	return c.doJSON(ctx, http.MethodDelete, cartItemPath(userID, itemID), nil, nil)
}

// ClearCart handles DELETE /api/user/{userId}/cart
func (c *Client) ClearCart(ctx context.Context, userID string) error {
	return c.doJSON(ctx, http.MethodDelete, cartPath(userID), nil, nil)
}

// UpdateOptions handles PUT /api/user/{userId}/cart/update-options
func (c *Client) UpdateOptions(ctx context.Context, userID string, req UpdateOptionsRequest) (*UpdateOptionsResponse, error) {
	var resp UpdateOptionsResponse
	if err := c.doJSON(ctx, http.MethodPut, cartPath(userID)+"/update-options", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
