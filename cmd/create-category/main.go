package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/notify"
	"github.com/jafarshop/storefront/internal/service"
	"github.com/jafarshop/storefront/internal/storefront"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/create-category/main.go <name> [description] [image-path]")
		fmt.Println("Example: go run cmd/create-category/main.go \"عبايات\" \"تشكيلة الشتاء\" ./cover.jpg")
		os.Exit(1)
	}

	input := storefront.CategoryInput{Name: os.Args[1]}
	if len(os.Args) > 2 {
		input.Description = os.Args[2]
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	if len(os.Args) > 3 {
		f, err := os.Open(os.Args[3])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open image: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		input.ImageName = f.Name()
		input.Image = f
	}

	toasts := notify.NotifierFunc(func(_ context.Context, n notify.Notification) {
		fmt.Printf("[%s] %s\n", n.Level, n.Message)
	})
	categories := service.NewCategoryService(storefront.NewClient(cfg.API, logger), toasts, logger)

	category, err := categories.Create(context.Background(), input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create category: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n✅ Category created successfully!\n\n")
	fmt.Printf("Category ID: %s\n", category.ID)
	fmt.Printf("Name: %s\n", category.Name)
	if category.Image != "" {
		fmt.Printf("Image: %s\n", category.Image)
	}
}
