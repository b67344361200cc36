package product

import "context"

type Repository interface {
	FindByID(ctx context.Context, id string) (*Product, error)
	// List returns products matching the filter in stable insertion order.
	List(ctx context.Context, filter Filter) ([]*Product, error)
	Save(ctx context.Context, p *Product) error
	// UpdateStock overwrites the stock count with an absolute value and
	// returns the previous value.
	UpdateStock(ctx context.Context, id string, stock int) (oldStock int, err error)
	// Reserve checks availability and decrements stock in a single critical
	// section, returning a snapshot of the product after the decrement. Two
	// concurrent reservations against the same product can never jointly
	// exceed the available stock.
	Reserve(ctx context.Context, id string, quantity int) (*Product, error)
	// Release returns a reserved quantity to stock. Used only to unwind a
	// reservation when persisting the order fails.
	Release(ctx context.Context, id string, quantity int) error
}
