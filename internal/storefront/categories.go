package storefront

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/jafarshop/storefront/internal/domain"
)

// CategoryInput is the admin category form
type CategoryInput struct {
	Name        string
	Description string
	ImageName   string
	Image       io.Reader
}

// CreateCategory handles POST /api/categories as multipart/form-data
func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("name", in.Name); err != nil {
		return nil, fmt.Errorf("failed to write name field: %w", err)
	}
	if err := w.WriteField("description", in.Description); err != nil {
		return nil, fmt.Errorf("failed to write description field: %w", err)
	}
	if in.Image != nil {
		part, err := w.CreateFormFile("image", filepath.Base(in.ImageName))
		if err != nil {
			return nil, fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := io.Copy(part, in.Image); err != nil {
			return nil, fmt.Errorf("failed to copy image: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	category := domain.Category{Name: in.Name, Description: in.Description}
	if err := c.do(ctx, http.MethodPost, "/api/categories", &buf, w.FormDataContentType(), &category); err != nil {
		return nil, err
	}
	return &category, nil
}
