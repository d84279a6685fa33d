package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/service"
	"github.com/jafarshop/storefront/pkg/errors"
)

// OrderConfirmer builds the post-order confirmation page
type OrderConfirmer interface {
	Confirmation(ctx context.Context, orderID string) (*service.OrderConfirmation, error)
}

// HandleOrderConfirmation handles GET /v1/orders/:id/confirmation
func HandleOrderConfirmation(orders OrderConfirmer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("id")

		confirmation, err := orders.Confirmation(c.Request.Context(), orderID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to build order confirmation", zap.String("order_id", orderID), zap.Error(err))
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, confirmation)
	}
}
