package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/storefront"
	"github.com/jafarshop/storefront/pkg/errors"
)

func intPtr(n int) *int { return &n }

func shirtItem() domain.CartItem {
	return domain.CartItem{
		ID:              "i1",
		ProductID:       "p1",
		Quantity:        2,
		SelectedOptions: map[string]string{"size": "M"},
		OptionsPricing:  map[string]decimal.Decimal{"size": decimal.NewFromInt(10)},
		Product: domain.ProductSnapshot{
			ID:          "p1",
			Name:        "قميص قطن",
			Price:       decimal.NewFromInt(150),
			MainImage:   "/img/shirt.jpg",
			Stock:       5,
			ProductType: "shirt",
			Options: []domain.ProductOption{
				{
					OptionName:   "size",
					OptionType:   domain.OptionTypeSelect,
					Required:     true,
					OptionValues: []domain.OptionValue{{Value: "S"}, {Value: "M"}, {Value: "L"}},
				},
				{
					OptionName:   "color",
					OptionType:   domain.OptionTypeRadio,
					OptionValues: []domain.OptionValue{{Value: "أبيض"}, {Value: "أسود"}},
				},
			},
		},
	}
}

func mugItem() domain.CartItem {
	return domain.CartItem{
		ID:              "i2",
		ProductID:       "p2",
		Quantity:        1,
		SelectedOptions: map[string]string{"name": "سارة"},
		Product: domain.ProductSnapshot{
			ID:    "p2",
			Name:  "كوب مطبوع",
			Price: decimal.NewFromInt(80),
			Stock: 10,
			Options: []domain.ProductOption{
				{
					OptionName: "name",
					OptionType: domain.OptionTypeText,
					Required:   true,
					Validation: &domain.OptionValidation{MaxLength: intPtr(10)},
				},
			},
		},
	}
}

// fakeBackend keeps a server-side cart in memory. Any Fn hook that is set
// replaces the default behaviour for that call.
type fakeBackend struct {
	mu    sync.Mutex
	items []domain.CartItem
	calls []string

	lastOptions storefront.UpdateOptionsRequest

	FetchCartFn      func(ctx context.Context, userID string) ([]domain.CartItem, error)
	UpdateQuantityFn func(ctx context.Context, userID, itemID string, quantity int) error
	RemoveItemFn     func(ctx context.Context, userID, itemID string) error
	ClearCartFn      func(ctx context.Context, userID string) error
	UpdateOptionsFn  func(ctx context.Context, userID string, req storefront.UpdateOptionsRequest) (*storefront.UpdateOptionsResponse, error)
}

func newFakeBackend(items ...domain.CartItem) *fakeBackend {
	return &fakeBackend{items: items}
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) FetchCart(ctx context.Context, userID string) ([]domain.CartItem, error) {
	f.record("fetch")
	if f.FetchCartFn != nil {
		return f.FetchCartFn(ctx, userID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.CartItem{}, f.items...), nil
}

func (f *fakeBackend) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	f.record("update_quantity")
	if f.UpdateQuantityFn != nil {
		return f.UpdateQuantityFn(ctx, userID, itemID, quantity)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == itemID {
			f.items[i].Quantity = quantity
			return nil
		}
	}
	return &errors.ErrAPI{Status: 404, Message: "العنصر غير موجود"}
}

func (f *fakeBackend) RemoveItem(ctx context.Context, userID, itemID string) error {
	f.record("remove")
	if f.RemoveItemFn != nil {
		return f.RemoveItemFn(ctx, userID, itemID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == itemID {
			f.items = append(f.items[:i:i], f.items[i+1:]...)
			return nil
		}
	}
	return &errors.ErrAPI{Status: 404, Message: "العنصر غير موجود"}
}

func (f *fakeBackend) ClearCart(ctx context.Context, userID string) error {
	f.record("clear")
	if f.ClearCartFn != nil {
		return f.ClearCartFn(ctx, userID)
	}
	f.mu.Lock()
	f.items = nil
	f.mu.Unlock()
	return nil
}

func (f *fakeBackend) UpdateOptions(ctx context.Context, userID string, req storefront.UpdateOptionsRequest) (*storefront.UpdateOptionsResponse, error) {
	f.record("update_options")
	f.mu.Lock()
	f.lastOptions = req
	f.mu.Unlock()
	if f.UpdateOptionsFn != nil {
		return f.UpdateOptionsFn(ctx, userID, req)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ProductID == req.ProductID {
			f.items[i].SelectedOptions = req.SelectedOptions
		}
	}
	return &storefront.UpdateOptionsResponse{Message: "ok"}, nil
}
