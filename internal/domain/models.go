package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the signed-in storefront customer
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Category is a catalog category created from the admin form
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

// Specification is one row of a product's specification table
type Specification struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductSnapshot is the product as embedded in a cart line by the backend
type ProductSnapshot struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Price          decimal.Decimal  `json:"price"`
	OriginalPrice  *decimal.Decimal `json:"originalPrice,omitempty"`
	MainImage      string           `json:"mainImage"`
	Images         []string         `json:"detailImages,omitempty"`
	Stock          int              `json:"stock"`
	ProductType    string           `json:"productType,omitempty"`
	Options        []ProductOption  `json:"dynamicOptions,omitempty"`
	Specifications []Specification  `json:"specifications,omitempty"`
	SizeGuideImage string           `json:"sizeGuideImage,omitempty"`
}

// Gallery returns the main image followed by the detail images
func (p ProductSnapshot) Gallery() []string {
	images := make([]string, 0, len(p.Images)+1)
	if p.MainImage != "" {
		images = append(images, p.MainImage)
	}
	for _, img := range p.Images {
		if img != "" && img != p.MainImage {
			images = append(images, img)
		}
	}
	return images
}

// Discount returns how much cheaper the product is than its original price.
// It is zero when there is no original price or it is not higher.
func (p ProductSnapshot) Discount() decimal.Decimal {
	if p.OriginalPrice == nil || !p.OriginalPrice.GreaterThan(p.Price) {
		return decimal.Zero
	}
	return p.OriginalPrice.Sub(p.Price)
}

// ImageRef points at an image attached to a cart line. Only the name travels
// to the backend.
type ImageRef struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Attachments is the free-text note and images a customer adds to a line
type Attachments struct {
	Text   string     `json:"text,omitempty"`
	Images []ImageRef `json:"images,omitempty"`
}

// CartItem is one product line in a user's cart
type CartItem struct {
	ID              string                     `json:"id"`
	ProductID       string                     `json:"productId"`
	Quantity        int                        `json:"quantity"`
	SelectedOptions map[string]string          `json:"selectedOptions,omitempty"`
	OptionsPricing  map[string]decimal.Decimal `json:"optionsPricing,omitempty"`
	Attachments     *Attachments               `json:"attachments,omitempty"`
	Product         ProductSnapshot            `json:"product"`
}

// LineTotal is quantity times the base product price
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Surcharge is quantity times the sum of the option surcharges
func (i CartItem) Surcharge() decimal.Decimal {
	sum := decimal.Zero
	for _, price := range i.OptionsPricing {
		sum = sum.Add(price)
	}
	return sum.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// QuantityAllowed reports whether qty respects the 1..stock bounds
func (i CartItem) QuantityAllowed(qty int) bool {
	return qty >= 1 && qty <= i.Product.Stock
}

// OrderItem is a line of a placed order
type OrderItem struct {
	ProductID       string            `json:"productId"`
	Name            string            `json:"name"`
	Image           string            `json:"image,omitempty"`
	Price           decimal.Decimal   `json:"price"`
	Quantity        int               `json:"quantity"`
	SelectedOptions map[string]string `json:"selectedOptions,omitempty"`
}

// Order is a placed order as returned by the backend
type Order struct {
	ID            string           `json:"id"`
	OrderNumber   string           `json:"orderNumber,omitempty"`
	Status        OrderStatus      `json:"status"`
	Items         []OrderItem      `json:"items"`
	Subtotal      decimal.Decimal  `json:"subtotal"`
	ShippingCost  *decimal.Decimal `json:"shippingCost,omitempty"`
	Total         decimal.Decimal  `json:"total"`
	CustomerName  string           `json:"customerName,omitempty"`
	CustomerPhone string           `json:"customerPhone,omitempty"`
	Address       string           `json:"address,omitempty"`
	City          string           `json:"city,omitempty"`
	PaymentMethod string           `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// ItemsSubtotal sums price times quantity over the order lines
func (o Order) ItemsSubtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}
