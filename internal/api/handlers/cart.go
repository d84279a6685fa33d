package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/api/middleware"
	"github.com/jafarshop/storefront/internal/cart"
	"github.com/jafarshop/storefront/internal/notify"
	"github.com/jafarshop/storefront/internal/service"
	"github.com/jafarshop/storefront/internal/shipping"
	"github.com/jafarshop/storefront/pkg/errors"
)

// cartFor resolves the caller's cart service; SessionMiddleware has run
func cartFor(c *gin.Context, carts *cart.Registry) (*cart.Service, bool) {
	user, ok := middleware.GetUserFromContext(c)
	if !ok {
		respondError(c, &errors.ErrSessionRequired{})
		return nil, false
	}
	return carts.For(c.Request.Context(), *user), true
}

// confirmation answers a confirm prompt from the ?confirm= query and keeps
// the prompt so a declined request can show it.
type confirmation struct {
	answer bool
	prompt string
}

func confirmationFrom(c *gin.Context) *confirmation {
	return &confirmation{answer: c.Query("confirm") == "true"}
}

func (q *confirmation) Confirm(_ context.Context, prompt string) bool {
	q.prompt = prompt
	return q.answer
}

var _ notify.Confirmer = (*confirmation)(nil)

// HandleGetCart handles GET /v1/cart
func HandleGetCart(carts *cart.Registry, calc shipping.Calculator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc, ok := cartFor(c, carts)
		if !ok {
			return
		}

		if err := svc.Fetch(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}

		respond(c, http.StatusOK, gin.H{"cart": svc.View(calc)})
	}
}

// HandleUpdateQuantity handles PUT /v1/cart/items/:id
func HandleUpdateQuantity(carts *cart.Registry, calc shipping.Calculator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc, ok := cartFor(c, carts)
		if !ok {
			return
		}

		var req service.UpdateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := svc.UpdateQuantity(c.Request.Context(), c.Param("id"), *req.Quantity); err != nil {
			logger.Debug("Quantity update rejected", zap.String("item_id", c.Param("id")), zap.Error(err))
			respondError(c, err)
			return
		}

		respond(c, http.StatusOK, gin.H{"cart": svc.View(calc)})
	}
}

// HandleRemoveItem handles DELETE /v1/cart/items/:id?confirm=true
func HandleRemoveItem(carts *cart.Registry, calc shipping.Calculator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc, ok := cartFor(c, carts)
		if !ok {
			return
		}

		confirm := confirmationFrom(c)
		if err := svc.Remove(c.Request.Context(), c.Param("id"), confirm); err != nil {
			respondCartError(c, err, confirm, svc, calc)
			return
		}

		respond(c, http.StatusOK, gin.H{"cart": svc.View(calc)})
	}
}

// HandleClearCart handles DELETE /v1/cart?confirm=true
func HandleClearCart(carts *cart.Registry, calc shipping.Calculator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc, ok := cartFor(c, carts)
		if !ok {
			return
		}

		confirm := confirmationFrom(c)
		if err := svc.Clear(c.Request.Context(), confirm); err != nil {
			respondCartError(c, err, confirm, svc, calc)
			return
		}

		respond(c, http.StatusOK, gin.H{"cart": svc.View(calc)})
	}
}

// respondCartError adds the prompt to declined requests and the reconciled
// cart to failed ones.
func respondCartError(c *gin.Context, err error, confirm *confirmation, svc *cart.Service, calc shipping.Calculator) {
	if _, declined := err.(*errors.ErrCancelled); declined {
		respond(c, http.StatusConflict, gin.H{
			"error":                err.Error(),
			"confirmationRequired": confirm.prompt,
		})
		return
	}
	status := statusFor(err)
	if status == http.StatusBadGateway || status == http.StatusInternalServerError {
		respond(c, http.StatusBadGateway, gin.H{"error": err.Error(), "cart": svc.View(calc)})
		return
	}
	respondError(c, err)
}

// HandleUpdateOptions handles PUT /v1/cart/options
func HandleUpdateOptions(carts *cart.Registry, calc shipping.Calculator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc, ok := cartFor(c, carts)
		if !ok {
			return
		}

		var req service.UpdateOptionsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}
		if req.SelectedOptions == nil {
			req.SelectedOptions = map[string]string{}
		}

		err := svc.UpdateOptions(c.Request.Context(), req.ProductID, req.SelectedOptions, req.Attachments.Domain())
		if err != nil {
			respondError(c, err)
			return
		}

		respond(c, http.StatusOK, gin.H{"cart": svc.View(calc)})
	}
}

// HandleRememberedOptions handles GET /v1/cart/options/:productId
func HandleRememberedOptions(carts *cart.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc, ok := cartFor(c, carts)
		if !ok {
			return
		}

		selected, err := svc.RememberedOptions(c.Request.Context(), c.Param("productId"))
		if err != nil {
			logger.Error("Failed to read remembered options", zap.String("product_id", c.Param("productId")), zap.Error(err))
			respondError(c, err)
			return
		}

		respond(c, http.StatusOK, gin.H{"productId": c.Param("productId"), "selectedOptions": selected})
	}
}
