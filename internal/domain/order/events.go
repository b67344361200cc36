package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderCreatedEvent is emitted once per successfully created order, after
// stock has been reserved and the order persisted.
type OrderCreatedEvent struct {
	OrderID       string
	CustomerEmail string
	ProductID     string
	Quantity      int
	TotalAmount   decimal.Decimal
	OccurredAt    time.Time
}

func (OrderCreatedEvent) EventName() string { return "order.created" }

func NewOrderCreatedEvent(o *Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		OrderID:       o.ID,
		CustomerEmail: o.CustomerEmail,
		ProductID:     o.ProductID,
		Quantity:      o.Quantity,
		TotalAmount:   o.TotalAmount,
		OccurredAt:    time.Now().UTC(),
	}
}

// OrderStatusUpdatedEvent carries both statuses so the audit trail shows the transition.
type OrderStatusUpdatedEvent struct {
	OrderID       string
	CustomerEmail string
	OldStatus     Status
	NewStatus     Status
	OccurredAt    time.Time
}

func (OrderStatusUpdatedEvent) EventName() string { return "order.status_updated" }

func NewOrderStatusUpdatedEvent(o *Order, oldStatus Status) OrderStatusUpdatedEvent {
	return OrderStatusUpdatedEvent{
		OrderID:       o.ID,
		CustomerEmail: o.CustomerEmail,
		OldStatus:     oldStatus,
		NewStatus:     o.Status,
		OccurredAt:    time.Now().UTC(),
	}
}

// PaymentProcessedEvent is emitted when a payment attempt is accepted.
type PaymentProcessedEvent struct {
	OrderID       string
	CustomerEmail string
	PaymentMethod string
	Amount        decimal.Decimal
	OccurredAt    time.Time
}

func (PaymentProcessedEvent) EventName() string { return "order.payment_processed" }

func NewPaymentProcessedEvent(o *Order) PaymentProcessedEvent {
	return PaymentProcessedEvent{
		OrderID:       o.ID,
		CustomerEmail: o.CustomerEmail,
		PaymentMethod: o.PaymentMethod,
		Amount:        o.TotalAmount,
		OccurredAt:    time.Now().UTC(),
	}
}

// PaymentDeclinedEvent is emitted when a payment attempt is declined.
// A decline is a modeled business outcome, not a fault.
type PaymentDeclinedEvent struct {
	OrderID       string
	PaymentMethod string
	Amount        decimal.Decimal
	Reason        string
	OccurredAt    time.Time
}

func (PaymentDeclinedEvent) EventName() string { return "order.payment_declined" }

func NewPaymentDeclinedEvent(o *Order, paymentMethod, reason string) PaymentDeclinedEvent {
	return PaymentDeclinedEvent{
		OrderID:       o.ID,
		PaymentMethod: paymentMethod,
		Amount:        o.TotalAmount,
		Reason:        reason,
		OccurredAt:    time.Now().UTC(),
	}
}

// OrdersFetchedEvent records a business-significant order listing.
type OrdersFetchedEvent struct {
	CustomerEmail string
	Count         int
	OccurredAt    time.Time
}

func (OrdersFetchedEvent) EventName() string { return "order.orders_fetched" }

func NewOrdersFetchedEvent(customerEmail string, count int) OrdersFetchedEvent {
	return OrdersFetchedEvent{
		CustomerEmail: customerEmail,
		Count:         count,
		OccurredAt:    time.Now().UTC(),
	}
}

// RevenueCalculatedEvent records one revenue aggregation run.
type RevenueCalculatedEvent struct {
	TotalRevenue    decimal.Decimal
	ConfirmedOrders int
	OccurredAt      time.Time
}

func (RevenueCalculatedEvent) EventName() string { return "order.revenue_calculated" }

func NewRevenueCalculatedEvent(total decimal.Decimal, confirmedOrders int) RevenueCalculatedEvent {
	return RevenueCalculatedEvent{
		TotalRevenue:    total,
		ConfirmedOrders: confirmedOrders,
		OccurredAt:      time.Now().UTC(),
	}
}
