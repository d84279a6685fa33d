package service

import (
	"github.com/shopspring/decimal"

	"github.com/jafarshop/storefront/internal/domain"
)

// UpdateQuantityRequest is the body of PUT /v1/cart/items/:id
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// UpdateOptionsRequest is the body of PUT /v1/cart/options
type UpdateOptionsRequest struct {
	ProductID       string            `json:"productId" binding:"required"`
	SelectedOptions map[string]string `json:"selectedOptions"`
	Attachments     *AttachmentsInput `json:"attachments,omitempty"`
}

type AttachmentsInput struct {
	Text   string       `json:"text"`
	Images []ImageInput `json:"images" binding:"omitempty,dive"`
}

type ImageInput struct {
	Name string `json:"name" binding:"required"`
	URL  string `json:"url"`
}

// Domain converts the payload to the cart's attachment model
func (a *AttachmentsInput) Domain() *domain.Attachments {
	if a == nil {
		return nil
	}
	out := &domain.Attachments{Text: a.Text, Images: make([]domain.ImageRef, 0, len(a.Images))}
	for _, img := range a.Images {
		out.Images = append(out.Images, domain.ImageRef{Name: img.Name, URL: img.URL})
	}
	return out
}

// CategoryForm is the multipart admin form; the image file is read separately
type CategoryForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
}

// OrderConfirmation is the post-order page model
type OrderConfirmation struct {
	OrderID      string             `json:"orderId"`
	OrderNumber  string             `json:"orderNumber"`
	Status       domain.OrderStatus `json:"status"`
	StatusLabel  string             `json:"statusLabel"`
	Items        []ConfirmationLine `json:"items"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	Shipping     decimal.Decimal    `json:"shipping"`
	FreeShipping bool               `json:"freeShipping"`
	Total        decimal.Decimal    `json:"total"`
	CustomerName string             `json:"customerName,omitempty"`
	Address      string             `json:"address,omitempty"`
	Message      string             `json:"message"`
}

type ConfirmationLine struct {
	domain.OrderItem
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Banner is the promotional banner block of the storefront home page
type Banner struct {
	Enabled         bool            `json:"enabled"`
	Title           string          `json:"title"`
	Subtitle        string          `json:"subtitle"`
	ImageURL        string          `json:"imageUrl,omitempty"`
	Link            string          `json:"link"`
	ShippingMessage string          `json:"shippingMessage"`
	FreeThreshold   decimal.Decimal `json:"freeShippingThreshold"`
}
