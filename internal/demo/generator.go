package demo

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	appCatalog "github.com/quickshop/storefront/internal/application/catalog"
	appOrder "github.com/quickshop/storefront/internal/application/order"
	appRevenue "github.com/quickshop/storefront/internal/application/revenue"
	domproduct "github.com/quickshop/storefront/internal/domain/product"
	"github.com/quickshop/storefront/internal/pkg/logging"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var categories = []string{
	"Electronics", "Clothing", "Books", "Home & Garden",
	"Sports", "Toys", "Beauty", "Automotive",
}

var paymentMethods = []string{
	"CREDIT_CARD", "PAYPAL", "BANK_TRANSFER", "APPLE_PAY", "GOOGLE_PAY",
}

const productsPerCategory = 5

// Generator is a harness over the public operations: it seeds demo products
// and fires concurrent virtual-user actions. It holds no state of its own
// beyond the id list of seeded products.
type Generator struct {
	catalog *appCatalog.Service
	orders  *appOrder.Service
	revenue *appRevenue.Service

	mu         sync.Mutex
	random     *rand.Rand
	faker      *gofakeit.Faker
	productIDs []string
}

func NewGenerator(catalog *appCatalog.Service, orders *appOrder.Service, revenue *appRevenue.Service) *Generator {
	seed := time.Now().UnixNano()
	return &Generator{
		catalog: catalog,
		orders:  orders,
		revenue: revenue,
		random:  rand.New(rand.NewSource(seed)),
		faker:   gofakeit.New(uint64(seed)),
	}
}

// SeedProducts populates the catalog with faker-generated products across
// the fixed category list.
func (g *Generator) SeedProducts(ctx context.Context) (int, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "demo_generator"))

	created := 0
	for _, category := range categories {
		for i := 0; i < productsPerCategory; i++ {
			g.mu.Lock()
			name := fmt.Sprintf("%s %s", g.faker.AdjectiveDescriptive(), g.faker.ProductName())
			price := decimal.NewFromFloat(g.faker.Price(10, 500)).Round(2)
			stock := g.random.Intn(100)
			g.mu.Unlock()

			p, err := g.catalog.Save(ctx, appCatalog.SaveProductInput{
				Name:     name,
				Price:    price,
				Category: category,
				Stock:    stock,
			})
			if err != nil {
				return created, fmt.Errorf("demo: seed product: %w", err)
			}

			g.mu.Lock()
			g.productIDs = append(g.productIDs, p.ID)
			g.mu.Unlock()
			created++
		}
	}

	logger.Info("products_seeded", zap.Int("count", created))
	return created, nil
}

// SimulateTraffic issues count virtual-user actions as independent
// concurrent tasks. Individual action failures (not-found, insufficient
// stock, declined payments) are expected demo outcomes and are not
// propagated; only a cancelled context stops the run early.
func (g *Generator) SimulateTraffic(ctx context.Context, count int) error {
	logger := logging.FromContext(ctx).With(zap.String("component", "demo_generator"))
	logger.Info("traffic_simulation_started", zap.Int("request_count", count))

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(16)

	for i := 0; i < count; i++ {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			g.runAction(ctx)
			return nil
		})
	}
	return grp.Wait()
}

func (g *Generator) runAction(ctx context.Context) {
	logger := logging.FromContext(ctx).With(zap.String("component", "demo_generator"))

	var err error
	action := g.pick([]string{"browse", "search", "view", "order", "category", "revenue"})
	switch action {
	case "browse":
		_, err = g.catalog.List(ctx, domproduct.Filter{})
	case "search":
		g.mu.Lock()
		term := g.faker.ProductName()
		g.mu.Unlock()
		_, err = g.catalog.SearchByName(ctx, term)
	case "view":
		if id := g.randomProductID(); id != "" {
			_, err = g.catalog.GetByID(ctx, id)
		}
	case "order":
		err = g.placeOrder(ctx)
	case "category":
		_, err = g.catalog.ListByCategory(ctx, g.pick(categories))
	case "revenue":
		_, err = g.revenue.CalculateTotalRevenue(ctx)
	}

	if err != nil {
		logger.Debug("simulated_action_failed",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// placeOrder creates an order and immediately attempts payment, the way a
// checkout flow would.
func (g *Generator) placeOrder(ctx context.Context) error {
	productID := g.randomProductID()
	if productID == "" {
		return nil
	}

	g.mu.Lock()
	email := g.faker.Email()
	name := g.faker.Name()
	quantity := g.random.Intn(3) + 1
	g.mu.Unlock()

	o, err := g.orders.CreateOrder(ctx, appOrder.CreateOrderInput{
		CustomerEmail: email,
		CustomerName:  name,
		ProductID:     productID,
		Quantity:      quantity,
	})
	if err != nil {
		return err
	}

	_, err = g.orders.ProcessPayment(ctx, o.ID, g.pick(paymentMethods))
	return err
}

func (g *Generator) randomProductID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.productIDs) == 0 {
		return ""
	}
	return g.productIDs[g.random.Intn(len(g.productIDs))]
}

func (g *Generator) pick(options []string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return options[g.random.Intn(len(options))]
}
