package order

import "context"

type Repository interface {
	Insert(ctx context.Context, o *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	Update(ctx context.Context, o *Order) error
	// FindByCustomer returns the customer's orders in insertion order.
	FindByCustomer(ctx context.Context, customerEmail string) ([]*Order, error)
	FindAll(ctx context.Context) ([]*Order, error)
	FindByStatus(ctx context.Context, status Status) ([]*Order, error)
}
