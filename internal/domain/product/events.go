package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductCreatedEvent is emitted when a new product enters the catalog.
type ProductCreatedEvent struct {
	ProductID  string
	Name       string
	Category   string
	Price      decimal.Decimal
	Stock      int
	OccurredAt time.Time
}

func (ProductCreatedEvent) EventName() string { return "product.created" }

func NewProductCreatedEvent(p *Product) ProductCreatedEvent {
	return ProductCreatedEvent{
		ProductID:  p.ID,
		Name:       p.Name,
		Category:   p.Category,
		Price:      p.Price,
		Stock:      p.Stock,
		OccurredAt: time.Now().UTC(),
	}
}

// StockUpdatedEvent is emitted on every stock mutation, carrying both the
// old and new counts so the audit trail can reconstruct the delta.
type StockUpdatedEvent struct {
	ProductID  string
	OldStock   int
	NewStock   int
	OccurredAt time.Time
}

func (StockUpdatedEvent) EventName() string { return "product.stock_updated" }

func NewStockUpdatedEvent(productID string, oldStock, newStock int) StockUpdatedEvent {
	return StockUpdatedEvent{
		ProductID:  productID,
		OldStock:   oldStock,
		NewStock:   newStock,
		OccurredAt: time.Now().UTC(),
	}
}

// ProductViewedEvent records a single-product lookup, a business-significant read.
type ProductViewedEvent struct {
	ProductID  string
	Name       string
	Category   string
	OccurredAt time.Time
}

func (ProductViewedEvent) EventName() string { return "product.viewed" }

func NewProductViewedEvent(p *Product) ProductViewedEvent {
	return ProductViewedEvent{
		ProductID:  p.ID,
		Name:       p.Name,
		Category:   p.Category,
		OccurredAt: time.Now().UTC(),
	}
}

// CatalogSearchedEvent records a list/search query and how many products it matched.
type CatalogSearchedEvent struct {
	Category   string
	NameQuery  string
	Count      int
	OccurredAt time.Time
}

func (CatalogSearchedEvent) EventName() string { return "product.catalog_searched" }

func NewCatalogSearchedEvent(filter Filter, count int) CatalogSearchedEvent {
	return CatalogSearchedEvent{
		Category:   filter.Category,
		NameQuery:  filter.NameQuery,
		Count:      count,
		OccurredAt: time.Now().UTC(),
	}
}
