package cart

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/notify"
	"github.com/jafarshop/storefront/pkg/errors"
)

// Remove deletes a line after confirmation. The line leaves the store before
// the call; if the call fails it is put back. Either way the change is
// committed so every observer re-reads the cart.
func (s *Service) Remove(ctx context.Context, itemID string, confirm notify.Confirmer) error {
	user, err := s.user(ctx)
	if err != nil {
		return err
	}

	if !confirm.Confirm(ctx, msgConfirmRemove) {
		return &errors.ErrCancelled{Action: "remove item"}
	}

	if err := s.begin(ctx); err != nil {
		return err
	}
	defer s.end()

	rollback, _ := s.store.Remove(ctx, itemID)

	if err := s.backend.RemoveItem(ctx, user.ID, itemID); err != nil {
		s.logger.Error("Failed to remove cart item", zap.String("item_id", itemID), zap.Error(err))
		rollback(ctx)

		msg := msgRemoveFailed
		var apiErr *errors.ErrAPI
		if stderrors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		}
		notify.Error(ctx, s.notifier, msg)

		s.commit(ctx, user, "remove_item")
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	notify.Success(ctx, s.notifier, msgRemoved)
	s.commit(ctx, user, "remove_item")
	return nil
}
