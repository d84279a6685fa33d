package cart

import (
	"github.com/shopspring/decimal"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/shipping"
)

// Line is one rendered cart row
type Line struct {
	Item         domain.CartItem `json:"item"`
	LineTotal    decimal.Decimal `json:"lineTotal"`
	Surcharge    decimal.Decimal `json:"surcharge"`
	Savings      decimal.Decimal `json:"savings"`
	Missing      []string        `json:"missingFields"`
	Complete     bool            `json:"complete"`
	SizeGuide    string          `json:"sizeGuide"`
	Gallery      []string        `json:"gallery"`
	Fields       []domain.Field  `json:"fields"`
	CanDecrement bool            `json:"canDecrement"`
	CanIncrement bool            `json:"canIncrement"`
}

// IncompleteLine names a line that blocks checkout
type IncompleteLine struct {
	ItemID      string   `json:"itemId"`
	ProductName string   `json:"productName"`
	Missing     []string `json:"missingFields"`
}

// View is the cart page model
type View struct {
	Lines               []Line           `json:"lines"`
	TotalItems          int              `json:"totalItems"`
	TotalPrice          decimal.Decimal  `json:"totalPrice"`
	Surcharges          decimal.Decimal  `json:"surcharges"`
	Shipping            shipping.Summary `json:"shipping"`
	ShippingMessage     string           `json:"shippingMessage"`
	AmountNeededForFree decimal.Decimal  `json:"amountNeededForFree"`
	Incomplete          []IncompleteLine `json:"incomplete"`
	CanCheckout         bool             `json:"canCheckout"`
	Empty               bool             `json:"empty"`
	Loading             bool             `json:"loading"`
	Updating            bool             `json:"updating"`
}

// BuildView renders the store. Checkout needs at least one line and no
// incomplete ones.
func BuildView(store *Store, calc shipping.Calculator) View {
	items := store.Items()
	total := store.TotalPrice()

	v := View{
		Lines:               make([]Line, 0, len(items)),
		TotalItems:          store.TotalItems(),
		TotalPrice:          total,
		Surcharges:          store.Surcharges(),
		Shipping:            calc.TotalWithShipping(total),
		ShippingMessage:     calc.Message(total),
		AmountNeededForFree: calc.AmountNeededForFree(total),
		Incomplete:          []IncompleteLine{},
		Empty:               store.Empty(),
		Loading:             store.Loading(),
	}

	for _, item := range items {
		v.Lines = append(v.Lines, buildLine(item))
	}
	for _, inc := range ValidateCart(items) {
		v.Incomplete = append(v.Incomplete, IncompleteLine{
			ItemID:      inc.Item.ID,
			ProductName: inc.Item.Product.Name,
			Missing:     inc.Missing,
		})
	}
	v.CanCheckout = len(items) > 0 && len(v.Incomplete) == 0

	return v
}

func buildLine(item domain.CartItem) Line {
	missing := MissingFields(item)
	if missing == nil {
		missing = []string{}
	}

	fields := make([]domain.Field, 0, len(item.Product.Options))
	for _, opt := range item.Product.Options {
		fields = append(fields, opt.Kind().Field(opt, item.SelectedOptions[opt.OptionName]))
	}

	return Line{
		Item:         item,
		LineTotal:    item.LineTotal(),
		Surcharge:    item.Surcharge(),
		Savings:      item.Product.Discount().Mul(decimal.NewFromInt(int64(item.Quantity))),
		Missing:      missing,
		Complete:     len(missing) == 0,
		SizeGuide:    item.Product.SizeGuide(),
		Gallery:      item.Product.Gallery(),
		Fields:       fields,
		CanDecrement: item.Quantity > 1,
		CanIncrement: item.Quantity < item.Product.Stock,
	}
}

// View renders the service's store with the updating flag
func (s *Service) View(calc shipping.Calculator) View {
	v := BuildView(s.store, calc)
	v.Updating = s.Updating()
	if v.Updating {
		v.CanCheckout = false
	}
	return v
}
