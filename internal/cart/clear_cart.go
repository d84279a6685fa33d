package cart

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/notify"
	"github.com/jafarshop/storefront/pkg/errors"
)

// Clear empties the whole cart after confirmation. Failures are logged but
// not toasted.
func (s *Service) Clear(ctx context.Context, confirm notify.Confirmer) error {
	user, err := s.user(ctx)
	if err != nil {
		return err
	}

	if !confirm.Confirm(ctx, msgConfirmClear) {
		return &errors.ErrCancelled{Action: "clear cart"}
	}

	if err := s.begin(ctx); err != nil {
		return err
	}
	defer s.end()

	if err := s.backend.ClearCart(ctx, user.ID); err != nil {
		s.logger.Error("Failed to clear cart", zap.String("user_id", user.ID), zap.Error(err))
		s.fetch(ctx, user)
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	notify.Success(ctx, s.notifier, msgCleared)
	s.commit(ctx, user, "clear_cart")
	return nil
}
