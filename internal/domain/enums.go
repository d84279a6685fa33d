package domain

// OptionType is the input kind of a product option
type OptionType string

const (
	OptionTypeSelect OptionType = "select"
	OptionTypeText   OptionType = "text"
	OptionTypeNumber OptionType = "number"
	OptionTypeRadio  OptionType = "radio"
)

// IsValid checks if the option type is one of the known kinds
func (t OptionType) IsValid() bool {
	switch t {
	case OptionTypeSelect,
		OptionTypeText,
		OptionTypeNumber,
		OptionTypeRadio:
		return true
	default:
		return false
	}
}

// OrderStatus is the backend status of a placed order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusPreparing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Label returns the customer-facing status text
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPending:
		return "قيد المراجعة"
	case OrderStatusConfirmed:
		return "تم التأكيد"
	case OrderStatusPreparing:
		return "قيد التجهيز"
	case OrderStatusShipped:
		return "تم الشحن"
	case OrderStatusDelivered:
		return "تم التوصيل"
	case OrderStatusCancelled:
		return "ملغي"
	default:
		return string(s)
	}
}

// IsTerminal reports whether the order can no longer change
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}
