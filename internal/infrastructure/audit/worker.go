package audit

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	domorder "github.com/quickshop/storefront/internal/domain/order"
	domoutbox "github.com/quickshop/storefront/internal/domain/outbox"
	domproduct "github.com/quickshop/storefront/internal/domain/product"
	"github.com/quickshop/storefront/internal/pkg/logging"
	"go.uber.org/zap"
)

// Worker is the observability collaborator: it subscribes to every domain
// event and turns each one into a structured log record and a metric sample.
type Worker struct {
	subscriber domoutbox.Subscriber
	events     *prometheus.CounterVec
}

func New(subscriber domoutbox.Subscriber, events *prometheus.CounterVec) *Worker {
	return &Worker{
		subscriber: subscriber,
		events:     events,
	}
}

// NewEventCounter builds the counter Worker expects; the caller registers it.
func NewEventCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_events_total",
			Help: "Total number of domain events observed, by event name.",
		},
		[]string{"event"},
	)
}

func (w *Worker) Start() {
	for _, name := range []string{
		domproduct.ProductCreatedEvent{}.EventName(),
		domproduct.StockUpdatedEvent{}.EventName(),
		domproduct.ProductViewedEvent{}.EventName(),
		domproduct.CatalogSearchedEvent{}.EventName(),
		domorder.OrderCreatedEvent{}.EventName(),
		domorder.OrderStatusUpdatedEvent{}.EventName(),
		domorder.PaymentProcessedEvent{}.EventName(),
		domorder.PaymentDeclinedEvent{}.EventName(),
		domorder.OrdersFetchedEvent{}.EventName(),
		domorder.RevenueCalculatedEvent{}.EventName(),
	} {
		w.subscriber.Subscribe(name, w.handle)
	}
}

func (w *Worker) handle(ctx context.Context, e domoutbox.Event) error {
	logger := logging.FromContext(ctx).With(
		zap.String("component", "audit_worker"),
		zap.String("event_type", e.EventName()),
	)

	if w.events != nil {
		w.events.WithLabelValues(e.EventName()).Inc()
	}

	logger.Info("business_event", fields(e)...)
	return nil
}

func fields(e domoutbox.Event) []zap.Field {
	switch evt := e.(type) {
	case domproduct.ProductCreatedEvent:
		return []zap.Field{
			zap.String("product_id", evt.ProductID),
			zap.String("product_name", evt.Name),
			zap.String("category", evt.Category),
			zap.String("price", evt.Price.String()),
			zap.Int("stock", evt.Stock),
		}
	case domproduct.StockUpdatedEvent:
		return []zap.Field{
			zap.String("product_id", evt.ProductID),
			zap.Int("old_stock", evt.OldStock),
			zap.Int("new_stock", evt.NewStock),
		}
	case domproduct.ProductViewedEvent:
		return []zap.Field{
			zap.String("product_id", evt.ProductID),
			zap.String("product_name", evt.Name),
			zap.String("category", evt.Category),
		}
	case domproduct.CatalogSearchedEvent:
		return []zap.Field{
			zap.String("category", evt.Category),
			zap.String("query", evt.NameQuery),
			zap.Int("count", evt.Count),
		}
	case domorder.OrderCreatedEvent:
		return []zap.Field{
			zap.String("order_id", evt.OrderID),
			zap.String("customer_email", evt.CustomerEmail),
			zap.String("product_id", evt.ProductID),
			zap.Int("quantity", evt.Quantity),
			zap.String("total_amount", evt.TotalAmount.String()),
		}
	case domorder.OrderStatusUpdatedEvent:
		return []zap.Field{
			zap.String("order_id", evt.OrderID),
			zap.String("customer_email", evt.CustomerEmail),
			zap.String("old_status", string(evt.OldStatus)),
			zap.String("new_status", string(evt.NewStatus)),
		}
	case domorder.PaymentProcessedEvent:
		return []zap.Field{
			zap.String("order_id", evt.OrderID),
			zap.String("customer_email", evt.CustomerEmail),
			zap.String("payment_method", evt.PaymentMethod),
			zap.String("amount", evt.Amount.String()),
		}
	case domorder.PaymentDeclinedEvent:
		return []zap.Field{
			zap.String("order_id", evt.OrderID),
			zap.String("payment_method", evt.PaymentMethod),
			zap.String("amount", evt.Amount.String()),
			zap.String("reason", evt.Reason),
		}
	case domorder.OrdersFetchedEvent:
		return []zap.Field{
			zap.String("customer_email", evt.CustomerEmail),
			zap.Int("count", evt.Count),
		}
	case domorder.RevenueCalculatedEvent:
		return []zap.Field{
			zap.String("total_revenue", evt.TotalRevenue.String()),
			zap.Int("confirmed_orders", evt.ConfirmedOrders),
		}
	default:
		return []zap.Field{zap.Any("payload", e)}
	}
}
