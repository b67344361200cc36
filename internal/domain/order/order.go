package order

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("order: not found")
	ErrConflict        = errors.New("order: already exists")
	ErrInvalidCustomer = errors.New("order: customer email and name are required")
	ErrInvalidQuantity = errors.New("order: quantity must be greater than zero")
	ErrInvalidStatus   = errors.New("order: unknown status")
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// ParseStatus validates a status label supplied by a caller.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(s)) {
	case StatusPending:
		return StatusPending, nil
	case StatusConfirmed:
		return StatusConfirmed, nil
	case StatusCancelled:
		return StatusCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

type Order struct {
	ID            string
	CustomerEmail string
	CustomerName  string
	ProductID     string

	Quantity int
	// UnitPrice is a snapshot of the product price at creation time. The
	// order keeps its value even if the catalog price changes later.
	UnitPrice   decimal.Decimal
	TotalAmount decimal.Decimal

	Status        Status
	PaymentMethod string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(id, customerEmail, customerName, productID string, quantity int, unitPrice decimal.Decimal) (*Order, error) {
	if strings.TrimSpace(customerEmail) == "" || strings.TrimSpace(customerName) == "" {
		return nil, ErrInvalidCustomer
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	now := time.Now().UTC()
	return &Order{
		ID:            id,
		CustomerEmail: customerEmail,
		CustomerName:  customerName,
		ProductID:     productID,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		TotalAmount:   unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Confirm records a successful payment attempt.
func (o *Order) Confirm(paymentMethod string) {
	o.PaymentMethod = paymentMethod
	o.Status = StatusConfirmed
	o.touch()
}

// SetStatus overwrites the status. No transition table is enforced here;
// callers own the decision.
func (o *Order) SetStatus(status Status) {
	o.Status = status
	o.touch()
}

func (o *Order) IsConfirmed() bool { return o.Status == StatusConfirmed }

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	return &clone
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now().UTC()
}
