package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/jafarshop/storefront/internal/service"
	"github.com/jafarshop/storefront/internal/shipping"
)

// BannerProvider returns the promotional banner for a cart subtotal
type BannerProvider interface {
	Banner(subtotal decimal.Decimal) service.Banner
}

// subtotalQuery reads ?subtotal=, defaulting to zero
func subtotalQuery(c *gin.Context) (decimal.Decimal, bool) {
	raw := c.Query("subtotal")
	if raw == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subtotal must be a non-negative number"})
		return decimal.Zero, false
	}
	return d, true
}

// HandleBanner handles GET /v1/banner
func HandleBanner(banners BannerProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		subtotal, ok := subtotalQuery(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, banners.Banner(subtotal))
	}
}

// HandleShippingQuote handles GET /v1/shipping/quote?subtotal=
func HandleShippingQuote(calc shipping.Calculator) gin.HandlerFunc {
	return func(c *gin.Context) {
		subtotal, ok := subtotalQuery(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"summary":             calc.TotalWithShipping(subtotal),
			"amountNeededForFree": calc.AmountNeededForFree(subtotal),
			"message":             calc.Message(subtotal),
		})
	}
}
