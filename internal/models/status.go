package models

type OrderStatus string

const (
	StatusCreated        OrderStatus = "CREATED"
	StatusPaymentPending OrderStatus = "PAYMENT_PENDING"
	StatusPaid           OrderStatus = "PAID"
	StatusFailed         OrderStatus = "FAILED"
	StatusCancelled      OrderStatus = "CANCELLED"
	StatusProcessing     OrderStatus = "PROCESSING"
	StatusShipped        OrderStatus = "SHIPPED"
	StatusDelivered      OrderStatus = "DELIVERED"
)

func (s OrderStatus) String() string { return string(s) }

// Cancellable reports whether an order may still move to CANCELLED.
// Once payment has settled or fulfilment has started the order is locked in.
func (s OrderStatus) Cancellable() bool {
	switch s {
	case StatusPaid, StatusProcessing, StatusShipped, StatusDelivered:
		return false
	}
	return true
}
