package cart

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/cache"
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/notify"
	"github.com/jafarshop/storefront/internal/storefront"
	"github.com/jafarshop/storefront/pkg/errors"
)

// UpdateOptions saves the option editor for the line holding productID.
// Required options must be filled and values must satisfy their kind before
// anything is sent.
func (s *Service) UpdateOptions(ctx context.Context, productID string, selected map[string]string, attachments *domain.Attachments) error {
	user, err := s.user(ctx)
	if err != nil {
		return err
	}

	item, ok := s.line(ctx, user, func() (domain.CartItem, bool) { return s.store.ItemByProduct(productID) })
	if !ok {
		return &errors.ErrNotFound{Resource: "cart product", ID: productID}
	}

	missing, invalid := ValidateSelection(item.Product.Options, selected)
	if len(missing) > 0 || len(invalid) > 0 {
		s.notifyInvalid(ctx, missing, invalid)
		return &errors.ErrValidation{Missing: missing, Invalid: invalid}
	}

	if err := s.begin(ctx); err != nil {
		return err
	}
	defer s.end()

	clean := cleanSelection(selected)
	req := storefront.UpdateOptionsRequest{
		ProductID:       productID,
		SelectedOptions: clean,
		Attachments:     storefront.NewAttachmentsPayload(attachments),
	}
	if _, err := s.backend.UpdateOptions(ctx, user.ID, req); err != nil {
		s.logger.Error("Failed to update options", zap.String("product_id", productID), zap.Error(err))
		notify.Error(ctx, s.notifier, msgOptionsUpdateFailed)
		return fmt.Errorf("failed to update options: %w", err)
	}

	if err := cache.SetJSON(ctx, s.storage, cache.ProductOptionsKey(productID), clean); err != nil {
		s.logger.Warn("Failed to remember product options", zap.String("product_id", productID), zap.Error(err))
	}

	notify.Success(ctx, s.notifier, msgOptionsUpdated)
	s.commit(ctx, user, "update_options")
	return nil
}

func (s *Service) notifyInvalid(ctx context.Context, missing []string, invalid map[string]string) {
	if len(missing) > 0 {
		notify.Error(ctx, s.notifier, fmt.Sprintf(msgMissingFields, strings.Join(missing, listSeparator)))
	}
	labels := make([]string, 0, len(invalid))
	for label := range invalid {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		notify.Error(ctx, s.notifier, fmt.Sprintf(msgInvalidField, label, invalid[label]))
	}
}

// cleanSelection trims values and drops the blank ones
func cleanSelection(selected map[string]string) map[string]string {
	out := make(map[string]string, len(selected))
	for name, value := range selected {
		if v := strings.TrimSpace(value); v != "" {
			out[name] = v
		}
	}
	return out
}
