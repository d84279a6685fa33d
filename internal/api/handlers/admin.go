package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/service"
	"github.com/jafarshop/storefront/internal/storefront"
)

// CategoryCreator submits the admin category form
type CategoryCreator interface {
	Create(ctx context.Context, in storefront.CategoryInput) (*domain.Category, error)
}

// HandleCreateCategory handles POST /v1/admin/categories (multipart: name,
// description, optional image)
func HandleCreateCategory(categories CategoryCreator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form service.CategoryForm
		if err := c.ShouldBind(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid form",
				"details": err.Error(),
			})
			return
		}

		input := storefront.CategoryInput{
			Name:        form.Name,
			Description: form.Description,
		}

		fh, err := c.FormFile("image")
		switch {
		case err == nil:
			f, err := fh.Open()
			if err != nil {
				logger.Error("Failed to open uploaded image", zap.String("filename", fh.Filename), zap.Error(err))
				c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image"})
				return
			}
			defer f.Close()
			input.ImageName = fh.Filename
			input.Image = f
		case err == http.ErrMissingFile:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image upload"})
			return
		}

		category, err := categories.Create(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}

		respond(c, http.StatusCreated, gin.H{"category": category})
	}
}
