package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/quickshop/storefront/internal/domain/product"
)

// ProductRepository keeps the catalog in process memory. A single RWMutex
// serializes every stock mutation, so Reserve's check-and-decrement is
// atomic with respect to concurrent callers.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	// ids preserves insertion order for List.
	ids []string
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[string]*domain.Product),
	}
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *ProductRepository) List(ctx context.Context, filter domain.Filter) ([]*domain.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Product, 0, len(r.ids))
	for _, id := range r.ids {
		p := r.products[id]
		if filter.Matches(p) {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (r *ProductRepository) Save(ctx context.Context, p *domain.Product) error {
	_ = ctx
	if p == nil || p.ID == "" {
		return fmt.Errorf("product repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[p.ID]; !exists {
		r.ids = append(r.ids, p.ID)
	}
	r.products[p.ID] = p.Clone()
	return nil
}

func (r *ProductRepository) UpdateStock(ctx context.Context, id string, stock int) (int, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return 0, domain.ErrNotFound
	}

	oldStock := p.Stock
	if err := p.SetStock(stock); err != nil {
		return 0, err
	}
	return oldStock, nil
}

func (r *ProductRepository) Reserve(ctx context.Context, id string, quantity int) (*domain.Product, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	if err := p.Reserve(quantity); err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

func (r *ProductRepository) Release(ctx context.Context, id string, quantity int) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	return p.Release(quantity)
}
