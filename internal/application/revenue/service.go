package revenue

import (
	"context"
	"fmt"

	domain "github.com/quickshop/storefront/internal/domain/order"
	domoutbox "github.com/quickshop/storefront/internal/domain/outbox"
	"github.com/quickshop/storefront/internal/pkg/logging"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service folds revenue over the order ledger.
type Service struct {
	orders    domain.Repository
	publisher domoutbox.Publisher
}

func NewService(orders domain.Repository, publisher domoutbox.Publisher) *Service {
	return &Service{
		orders:    orders,
		publisher: publisher,
	}
}

// CalculateTotalRevenue sums TotalAmount over CONFIRMED orders. The sum is
// recomputed on every call; confirmations land asynchronously relative to
// any caller, so a cached total would go stale.
func (s *Service) CalculateTotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	confirmed, err := s.orders.FindByStatus(ctx, domain.StatusConfirmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("revenue: find confirmed orders: %w", err)
	}

	total := decimal.Zero
	for _, o := range confirmed {
		total = total.Add(o.TotalAmount)
	}

	logging.FromContext(ctx).Info("revenue_calculated",
		zap.String("component", "revenue_service"),
		zap.String("total_revenue", total.String()),
		zap.Int("confirmed_orders", len(confirmed)),
	)
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, domain.NewRevenueCalculatedEvent(total, len(confirmed))); err != nil {
			logging.FromContext(ctx).Warn("event_publish_failed", zap.Error(err))
		}
	}
	return total, nil
}
