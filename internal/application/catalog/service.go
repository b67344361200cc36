package catalog

import (
	"context"
	"errors"
	"fmt"

	domoutbox "github.com/quickshop/storefront/internal/domain/outbox"
	domain "github.com/quickshop/storefront/internal/domain/product"
	"github.com/quickshop/storefront/internal/infrastructure/id"
	"github.com/quickshop/storefront/internal/pkg/logging"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service owns the product catalog: lookups, filtered listings, product
// registration, and absolute stock updates.
type Service struct {
	repo        domain.Repository
	idGenerator id.Generator
	publisher   domoutbox.Publisher
}

func NewService(repo domain.Repository, idGen id.Generator, publisher domoutbox.Publisher) *Service {
	return &Service{
		repo:        repo,
		idGenerator: idGen,
		publisher:   publisher,
	}
}

func (s *Service) GetByID(ctx context.Context, productID string) (*domain.Product, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "catalog_service"))

	if productID == "" {
		return nil, errors.New("catalog: product id is required")
	}

	p, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Warn("product_not_found", zap.String("product_id", productID))
		}
		return nil, err
	}

	s.publish(ctx, domain.NewProductViewedEvent(p))
	return p, nil
}

func (s *Service) List(ctx context.Context, filter domain.Filter) ([]*domain.Product, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}

	s.publish(ctx, domain.NewCatalogSearchedEvent(filter, len(products)))
	return products, nil
}

// ListByCategory and SearchByName are named projections over List.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.List(ctx, domain.Filter{Category: category})
}

func (s *Service) SearchByName(ctx context.Context, query string) ([]*domain.Product, error) {
	return s.List(ctx, domain.Filter{NameQuery: query})
}

type SaveProductInput struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Category string
	Stock    int
}

// Save registers a product, assigning an id when the input carries none.
func (s *Service) Save(ctx context.Context, input SaveProductInput) (*domain.Product, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "catalog_service"))

	productID := input.ID
	if productID == "" {
		productID = s.idGenerator.NewID()
	}

	entity, err := domain.New(productID, input.Name, input.Category, input.Price, input.Stock)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, entity); err != nil {
		logger.Error("product_save_failed", zap.String("product_id", productID), zap.Error(err))
		return nil, fmt.Errorf("catalog: save: %w", err)
	}

	logger.Info("product_saved",
		zap.String("product_id", entity.ID),
		zap.String("product_name", entity.Name),
		zap.String("category", entity.Category),
	)
	s.publish(ctx, domain.NewProductCreatedEvent(entity))
	return entity, nil
}

// UpdateStock overwrites the stock count with an absolute value. Callers
// compute deltas themselves; order creation does not go through here.
func (s *Service) UpdateStock(ctx context.Context, productID string, newStock int) error {
	logger := logging.FromContext(ctx).With(zap.String("component", "catalog_service"))

	if productID == "" {
		return errors.New("catalog: product id is required")
	}
	if newStock < 0 {
		return domain.ErrInvalidStock
	}

	oldStock, err := s.repo.UpdateStock(ctx, productID, newStock)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Error("stock_update_product_not_found", zap.String("product_id", productID))
		}
		return err
	}

	logger.Info("stock_updated",
		zap.String("product_id", productID),
		zap.Int("old_stock", oldStock),
		zap.Int("new_stock", newStock),
	)
	s.publish(ctx, domain.NewStockUpdatedEvent(productID, oldStock, newStock))
	return nil
}

func (s *Service) publish(ctx context.Context, e domoutbox.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed",
			zap.String("event", e.EventName()),
			zap.Error(err),
		)
	}
}
