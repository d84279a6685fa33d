package cart

import (
	"strings"

	"github.com/jafarshop/storefront/internal/domain"
)

// Incomplete is a cart line that blocks checkout
type Incomplete struct {
	Item    domain.CartItem
	Missing []string
}

// MissingFields lists the labels of required options the line has not
// filled, in schema order.
func MissingFields(item domain.CartItem) []string {
	return missingFor(item.Product.Options, item.SelectedOptions)
}

func missingFor(options []domain.ProductOption, selected map[string]string) []string {
	var missing []string
	for _, opt := range options {
		if !opt.Required {
			continue
		}
		if strings.TrimSpace(selected[opt.OptionName]) == "" {
			missing = append(missing, opt.Label())
		}
	}
	return missing
}

// ValidateCart returns the incomplete lines in cart order
func ValidateCart(items []domain.CartItem) []Incomplete {
	var out []Incomplete
	for _, item := range items {
		if missing := MissingFields(item); len(missing) > 0 {
			out = append(out, Incomplete{Item: item, Missing: missing})
		}
	}
	return out
}

// CanCheckout is true when no line is incomplete
func CanCheckout(items []domain.CartItem) bool {
	return len(ValidateCart(items)) == 0
}

// ValidateSelection checks an option editor submission: required options
// that are blank, and filled values their kind rejects (keyed by label).
func ValidateSelection(options []domain.ProductOption, selected map[string]string) ([]string, map[string]string) {
	missing := missingFor(options, selected)

	var invalid map[string]string
	for _, opt := range options {
		if err := opt.Validate(selected[opt.OptionName]); err != nil {
			if invalid == nil {
				invalid = make(map[string]string)
			}
			invalid[opt.Label()] = err.Error()
		}
	}
	return missing, invalid
}
