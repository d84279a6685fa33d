package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/shipping"
	"github.com/jafarshop/storefront/pkg/errors"
)

const (
	msgOrderReceived  = "شكراً لك! تم استلام طلبك بنجاح وسنتواصل معك قريباً لتأكيده"
	msgOrderCancelled = "تم إلغاء هذا الطلب"
)

// OrderBackend reads placed orders from the storefront API
type OrderBackend interface {
	FetchOrder(ctx context.Context, orderID string) (*domain.Order, error)
}

type orderService struct {
	backend  OrderBackend
	shipping shipping.Calculator
	logger   *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(backend OrderBackend, calc shipping.Calculator, logger *zap.Logger) *orderService {
	return &orderService{
		backend:  backend,
		shipping: calc,
		logger:   logger,
	}
}

// Confirmation builds the post-order page. Amounts the backend leaves out
// are derived from the lines and the shipping calculator.
func (s *orderService) Confirmation(ctx context.Context, orderID string) (*OrderConfirmation, error) {
	order, err := s.backend.FetchOrder(ctx, orderID)
	if err != nil {
		var apiErr *errors.ErrAPI
		if stderrors.As(err, &apiErr) && apiErr.IsNotFound() {
			return nil, &errors.ErrNotFound{Resource: "order", ID: orderID}
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	subtotal := order.Subtotal
	if subtotal.IsZero() {
		subtotal = order.ItemsSubtotal()
	}

	var cost decimal.Decimal
	if order.ShippingCost != nil {
		cost = *order.ShippingCost
	} else {
		cost = s.shipping.Cost(subtotal)
	}

	total := order.Total
	if total.IsZero() {
		total = subtotal.Add(cost)
	}

	number := order.OrderNumber
	if number == "" {
		number = order.ID
	}

	lines := make([]ConfirmationLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, ConfirmationLine{
			OrderItem: item,
			LineTotal: item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}

	msg := msgOrderReceived
	if order.Status == domain.OrderStatusCancelled {
		msg = msgOrderCancelled
	}

	s.logger.Debug("Order confirmation built",
		zap.String("order_id", order.ID),
		zap.String("status", string(order.Status)),
		zap.String("total", total.String()),
	)

	return &OrderConfirmation{
		OrderID:      order.ID,
		OrderNumber:  number,
		Status:       order.Status,
		StatusLabel:  order.Status.Label(),
		Items:        lines,
		Subtotal:     subtotal,
		Shipping:     cost,
		FreeShipping: cost.IsZero(),
		Total:        total,
		CustomerName: order.CustomerName,
		Address:      order.Address,
		Message:      msg,
	}, nil
}
