package cart

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/notify"
	"github.com/jafarshop/storefront/pkg/errors"
)

// UpdateQuantity sets a line's quantity. Values below 1 or above the
// product's stock are rejected without a call.
func (s *Service) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	user, err := s.user(ctx)
	if err != nil {
		return err
	}

	if quantity < 1 {
		return &errors.ErrInvalidQuantity{Quantity: quantity}
	}

	item, ok := s.line(ctx, user, func() (domain.CartItem, bool) { return s.store.Item(itemID) })
	if !ok {
		return &errors.ErrNotFound{Resource: "cart item", ID: itemID}
	}
	if quantity > item.Product.Stock {
		notify.Warning(ctx, s.notifier, fmt.Sprintf(msgQuantityExceedsStock, item.Product.Stock))
		return &errors.ErrInvalidQuantity{Quantity: quantity, Stock: item.Product.Stock}
	}

	if err := s.begin(ctx); err != nil {
		return err
	}
	defer s.end()

	if err := s.backend.UpdateQuantity(ctx, user.ID, itemID, quantity); err != nil {
		s.logger.Error("Failed to update quantity",
			zap.String("item_id", itemID),
			zap.Int("quantity", quantity),
			zap.Error(err),
		)
		notify.Error(ctx, s.notifier, msgUpdateQuantityFailed)
		return fmt.Errorf("failed to update quantity: %w", err)
	}

	notify.Success(ctx, s.notifier, msgQuantityUpdated)
	s.commit(ctx, user, "update_quantity")
	return nil
}
