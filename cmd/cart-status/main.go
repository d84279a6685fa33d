package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/cache"
	"github.com/jafarshop/storefront/internal/cart"
	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/session"
	"github.com/jafarshop/storefront/internal/shipping"
	"github.com/jafarshop/storefront/internal/storefront"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/cart-status/main.go <user-id>")
		fmt.Println("Example: go run cmd/cart-status/main.go 64f1c0ffee")
		os.Exit(1)
	}

	userID := os.Args[1]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	ctx := context.Background()
	client := storefront.NewClient(cfg.API, logger)

	// read directly: Service.Fetch hides backend errors
	items, err := client.FetchCart(ctx, userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch cart: %v\n", err)
		os.Exit(1)
	}

	storage := cache.NewMemory()
	svc := cart.NewService(ctx, cart.Dependencies{
		Backend:  client,
		Storage:  storage,
		Sessions: session.Static(&domain.User{ID: userID}),
	}, logger)
	defer svc.Close()
	svc.Store().Replace(ctx, items)

	calc := shipping.New(cfg.Shipping.FreeThreshold, cfg.Shipping.StandardCost)
	view := svc.View(calc)

	fmt.Printf("🛒 Cart for user %s\n\n", userID)
	if view.Empty {
		fmt.Println("The cart is empty.")
		return
	}

	for _, line := range view.Lines {
		status := "✅"
		if !line.Complete {
			status = "⚠️ "
		}
		fmt.Printf("%s %s × %d  %s\n", status, line.Item.Product.Name, line.Item.Quantity, line.LineTotal.StringFixedBank(2))
		for name, value := range line.Item.SelectedOptions {
			fmt.Printf("     %s: %s\n", domain.OptionLabel(name), value)
		}
		if len(line.Missing) > 0 {
			fmt.Printf("     missing: %s\n", strings.Join(line.Missing, "، "))
		}
	}

	fmt.Printf("\nItems:     %d\n", view.TotalItems)
	fmt.Printf("Subtotal:  %s\n", view.TotalPrice.StringFixedBank(2))
	if view.Surcharges.IsPositive() {
		fmt.Printf("Options:   %s\n", view.Surcharges.StringFixedBank(2))
	}
	fmt.Printf("Shipping:  %s\n", view.Shipping.Shipping.StringFixedBank(2))
	fmt.Printf("Total:     %s\n", view.Shipping.Total.StringFixedBank(2))
	fmt.Printf("\n%s\n", view.ShippingMessage)

	if view.CanCheckout {
		fmt.Println("\n✅ Ready for checkout")
	} else {
		fmt.Printf("\n❌ Checkout blocked by %d incomplete line(s)\n", len(view.Incomplete))
	}
}
