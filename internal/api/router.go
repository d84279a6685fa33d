package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/api/handlers"
	"github.com/jafarshop/storefront/internal/api/middleware"
	"github.com/jafarshop/storefront/internal/cart"
	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/shipping"
)

// Services are the page backends the router exposes
type Services struct {
	Carts      *cart.Registry
	Shipping   shipping.Calculator
	Categories handlers.CategoryCreator
	Orders     handlers.OrderConfirmer
	Banner     handlers.BannerProvider
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, svcs Services, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(loggingMiddleware(logger))
	router.Use(middleware.Notifications())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Public storefront routes
		v1.GET("/banner", handlers.HandleBanner(svcs.Banner))
		v1.GET("/shipping/quote", handlers.HandleShippingQuote(svcs.Shipping))
		v1.GET("/orders/:id/confirmation", handlers.HandleOrderConfirmation(svcs.Orders, logger))

		// Cart routes (require a signed-in user)
		cartRoutes := v1.Group("/cart")
		cartRoutes.Use(middleware.SessionMiddleware(logger))
		{
			cartRoutes.GET("", handlers.HandleGetCart(svcs.Carts, svcs.Shipping, logger))
			cartRoutes.DELETE("", handlers.HandleClearCart(svcs.Carts, svcs.Shipping, logger))
			cartRoutes.PUT("/items/:id", handlers.HandleUpdateQuantity(svcs.Carts, svcs.Shipping, logger))
			cartRoutes.DELETE("/items/:id", handlers.HandleRemoveItem(svcs.Carts, svcs.Shipping, logger))
			cartRoutes.PUT("/options", handlers.HandleUpdateOptions(svcs.Carts, svcs.Shipping, logger))
			cartRoutes.GET("/options/:productId", handlers.HandleRememberedOptions(svcs.Carts, logger))
		}

		// Admin routes
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AdminMiddleware(cfg.Admin.KeyHash, logger))
		{
			adminRoutes.POST("/categories", handlers.HandleCreateCategory(svcs.Categories, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
	}
}
