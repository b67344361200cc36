package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/quickshop/storefront/internal/config"
	"github.com/quickshop/storefront/internal/demo"
	"github.com/quickshop/storefront/internal/pkg/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Seed demo products and run concurrent traffic against the core",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return runSimulate(cfg, viper.GetInt("requests"))
	},
}

func init() {
	simulateCmd.Flags().Int("requests", 200, "number of virtual-user actions to issue")
	_ = viper.BindPFlag("requests", simulateCmd.Flags().Lookup("requests"))
}

func runSimulate(cfg config.Config, requests int) error {
	logger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.ContextWithLogger(ctx, logger)

	// Standalone run: metrics live in a private registry, nothing serves them.
	c, err := buildCore(ctx, cfg, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	defer c.bus.Stop(context.WithoutCancel(ctx))

	generator := demo.NewGenerator(c.catalog, c.orders, c.revenue)

	seeded, err := generator.SeedProducts(ctx)
	if err != nil {
		return err
	}
	if err := generator.SimulateTraffic(ctx, requests); err != nil {
		return err
	}

	total, err := c.revenue.CalculateTotalRevenue(ctx)
	if err != nil {
		return err
	}

	orders, err := c.orders.GetAllOrders(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("seeded %d products, issued %d actions, created %d orders, confirmed revenue %s\n",
		seeded, requests, len(orders), total.StringFixed(2))
	return nil
}
