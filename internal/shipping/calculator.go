// Package shipping computes shipping fees from an order subtotal.
package shipping

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// FreeShippingThreshold is the subtotal from which shipping is free
	FreeShippingThreshold = decimal.NewFromInt(500)
	// StandardShippingCost is charged below the threshold
	StandardShippingCost = decimal.NewFromInt(50)
)

// Calculator holds the shipping configuration. The zero value is not useful;
// use Default or New.
type Calculator struct {
	FreeThreshold decimal.Decimal
	StandardCost  decimal.Decimal
}

// Default uses the storefront's standard threshold and fee
var Default = Calculator{
	FreeThreshold: FreeShippingThreshold,
	StandardCost:  StandardShippingCost,
}

// New creates a calculator with a custom threshold and fee
func New(threshold, cost decimal.Decimal) Calculator {
	return Calculator{FreeThreshold: threshold, StandardCost: cost}
}

// Summary is a subtotal with its shipping fee applied
type Summary struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	Shipping       decimal.Decimal `json:"shipping"`
	Total          decimal.Decimal `json:"total"`
	IsFreeShipping bool            `json:"isFreeShipping"`
}

// IsFreeEligible reports whether total reaches the free-shipping threshold
func (c Calculator) IsFreeEligible(total decimal.Decimal) bool {
	return total.GreaterThanOrEqual(c.FreeThreshold)
}

// Cost returns the shipping fee for total
func (c Calculator) Cost(total decimal.Decimal) decimal.Decimal {
	if c.IsFreeEligible(total) {
		return decimal.Zero
	}
	return c.StandardCost
}

// AmountNeededForFree returns how much more must be spent for free shipping
func (c Calculator) AmountNeededForFree(total decimal.Decimal) decimal.Decimal {
	if c.IsFreeEligible(total) {
		return decimal.Zero
	}
	return c.FreeThreshold.Sub(total)
}

// TotalWithShipping applies the shipping fee to total
func (c Calculator) TotalWithShipping(total decimal.Decimal) Summary {
	cost := c.Cost(total)
	return Summary{
		Subtotal:       total,
		Shipping:       cost,
		Total:          total.Add(cost),
		IsFreeShipping: c.IsFreeEligible(total),
	}
}

// Message is the customer-facing shipping line for total
func (c Calculator) Message(total decimal.Decimal) string {
	if c.IsFreeEligible(total) {
		return "🎉 مبروك! حصلت على شحن مجاني"
	}
	return fmt.Sprintf("أضف %s ج.م إلى سلتك للحصول على شحن مجاني", c.AmountNeededForFree(total).StringFixedBank(2))
}

func Cost(total decimal.Decimal) decimal.Decimal { return Default.Cost(total) }

func IsFreeEligible(total decimal.Decimal) bool { return Default.IsFreeEligible(total) }

func AmountNeededForFree(total decimal.Decimal) decimal.Decimal {
	return Default.AmountNeededForFree(total)
}

func TotalWithShipping(total decimal.Decimal) Summary { return Default.TotalWithShipping(total) }

func Message(total decimal.Decimal) string { return Default.Message(total) }
