package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	appCatalog "github.com/quickshop/storefront/internal/application/catalog"
	appOrder "github.com/quickshop/storefront/internal/application/order"
	appRevenue "github.com/quickshop/storefront/internal/application/revenue"
	"github.com/quickshop/storefront/internal/config"
	"github.com/quickshop/storefront/internal/infrastructure/audit"
	"github.com/quickshop/storefront/internal/infrastructure/id"
	"github.com/quickshop/storefront/internal/infrastructure/memory"
	"github.com/quickshop/storefront/internal/infrastructure/outbox"
	"github.com/quickshop/storefront/internal/infrastructure/simulator"
)

// core bundles the process-lifetime singletons: the two stores, the event
// bus, and the services wired over them.
type core struct {
	catalog *appCatalog.Service
	orders  *appOrder.Service
	revenue *appRevenue.Service
	bus     *outbox.Bus
}

// buildCore wires every component with explicit constructor arguments; there
// is no implicit registry.
func buildCore(ctx context.Context, cfg config.Config, registry prometheus.Registerer) (*core, error) {
	productRepo := memory.NewProductRepository()
	orderRepo := memory.NewOrderRepository()
	idGenerator := id.NewUUIDGenerator()

	processor, err := simulator.New(cfg.PaymentSuccessRate)
	if err != nil {
		return nil, fmt.Errorf("wire payment simulator: %w", err)
	}

	bus := outbox.NewBus()
	bus.Start(ctx)

	eventCounter := audit.NewEventCounter()
	if registry != nil {
		if err := registry.Register(eventCounter); err != nil {
			return nil, fmt.Errorf("register event counter: %w", err)
		}
	}
	auditWorker := audit.New(bus, eventCounter)
	auditWorker.Start()

	return &core{
		catalog: appCatalog.NewService(productRepo, idGenerator, bus),
		orders:  appOrder.NewService(orderRepo, productRepo, processor, idGenerator, bus),
		revenue: appRevenue.NewService(orderRepo, bus),
		bus:     bus,
	}, nil
}
