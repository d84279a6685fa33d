package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/notify"
	"github.com/jafarshop/storefront/internal/storefront"
	"github.com/jafarshop/storefront/pkg/errors"
)

const (
	msgCategoryNameRequired = "يرجى إدخال اسم التصنيف"
	msgCategoryCreated      = "تمت إضافة التصنيف بنجاح"
	msgCategoryFailed       = "حدث خطأ أثناء إضافة التصنيف"
)

// CategoryBackend creates categories on the storefront API
type CategoryBackend interface {
	CreateCategory(ctx context.Context, in storefront.CategoryInput) (*domain.Category, error)
}

type categoryService struct {
	backend  CategoryBackend
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(backend CategoryBackend, notifier notify.Notifier, logger *zap.Logger) *categoryService {
	return &categoryService{
		backend:  backend,
		notifier: notifier,
		logger:   logger,
	}
}

// Create submits the admin category form. A blank name is rejected before
// any call; backend failures are toasted and not retried.
func (s *categoryService) Create(ctx context.Context, in storefront.CategoryInput) (*domain.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if in.Name == "" {
		notify.Error(ctx, s.notifier, msgCategoryNameRequired)
		return nil, &errors.ErrValidation{Missing: []string{domain.OptionLabel("name")}}
	}

	category, err := s.backend.CreateCategory(ctx, in)
	if err != nil {
		s.logger.Error("Failed to create category", zap.String("name", in.Name), zap.Error(err))

		msg := msgCategoryFailed
		var apiErr *errors.ErrAPI
		if stderrors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		}
		notify.Error(ctx, s.notifier, msg)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("Category created",
		zap.String("id", category.ID),
		zap.String("name", category.Name),
	)
	notify.Success(ctx, s.notifier, msgCategoryCreated)
	return category, nil
}
