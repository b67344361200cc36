package order

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/quickshop/storefront/internal/domain/order"
	domoutbox "github.com/quickshop/storefront/internal/domain/outbox"
	"github.com/quickshop/storefront/internal/domain/payment"
	domproduct "github.com/quickshop/storefront/internal/domain/product"
	"github.com/quickshop/storefront/internal/infrastructure/id"
	"github.com/quickshop/storefront/internal/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "storefront/order"

// Service is the order ledger. It owns the order lifecycle and is the only
// caller that reserves stock.
type Service struct {
	repo        domain.Repository
	productRepo domproduct.Repository
	processor   payment.Processor
	idGenerator id.Generator
	publisher   domoutbox.Publisher
	tracer      trace.Tracer
}

func NewService(
	repo domain.Repository,
	productRepo domproduct.Repository,
	processor payment.Processor,
	idGen id.Generator,
	publisher domoutbox.Publisher,
) *Service {
	return &Service{
		repo:        repo,
		productRepo: productRepo,
		processor:   processor,
		idGenerator: idGen,
		publisher:   publisher,
		tracer:      otel.Tracer(tracerName),
	}
}

type CreateOrderInput struct {
	CustomerEmail string
	CustomerName  string
	ProductID     string
	Quantity      int
}

// CreateOrder reserves stock and persists a PENDING order as one logical
// unit: the repository's Reserve is the serialization point for concurrent
// orders against the same product, and a failed insert releases the
// reservation so any failure leaves stock unchanged and no order behind.
func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (_ *domain.Order, err error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "order_service"))
	logger.Info("create_order_start",
		zap.String("customer_email", input.CustomerEmail),
		zap.String("product_id", input.ProductID),
		zap.Int("quantity", input.Quantity),
	)

	ctx, span := s.tracer.Start(ctx, "CreateOrder", trace.WithAttributes(
		attribute.String("order.product_id", input.ProductID),
		attribute.Int("order.quantity", input.Quantity),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	if input.ProductID == "" {
		return nil, errors.New("order: product id is required")
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	// Reserve first: check and decrement happen atomically inside the
	// repository, and the snapshot carries the price to freeze on the order.
	snapshot, err := s.productRepo.Reserve(ctx, input.ProductID, input.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, domproduct.ErrNotFound):
			logger.Error("create_order_product_not_found", zap.String("product_id", input.ProductID))
		case errors.Is(err, domproduct.ErrInsufficientStock):
			logger.Warn("create_order_insufficient_stock",
				zap.String("product_id", input.ProductID),
				zap.Int("requested_quantity", input.Quantity),
			)
		}
		return nil, err
	}

	entity, err := domain.New(
		s.idGenerator.NewID(),
		input.CustomerEmail,
		input.CustomerName,
		snapshot.ID,
		input.Quantity,
		snapshot.Price,
	)
	if err != nil {
		s.release(ctx, snapshot.ID, input.Quantity)
		return nil, err
	}

	if err := s.repo.Insert(ctx, entity); err != nil {
		s.release(ctx, snapshot.ID, input.Quantity)
		logger.Error("order_insert_failed", zap.String("order_id", entity.ID), zap.Error(err))
		return nil, fmt.Errorf("order: insert: %w", err)
	}

	span.SetAttributes(attribute.String("order.id", entity.ID))
	logger.Info("order_created",
		zap.String("order_id", entity.ID),
		zap.String("customer_email", entity.CustomerEmail),
		zap.String("total_amount", entity.TotalAmount.String()),
		zap.Int("remaining_stock", snapshot.Stock),
	)
	s.publish(ctx, domain.NewOrderCreatedEvent(entity))
	return entity, nil
}

// release unwinds a stock reservation after a later create step failed.
// A release failure here would leave an inconsistent ledger, so it is logged
// at error level for manual reconciliation; it cannot happen with the
// in-memory repository since the product was just reserved.
func (s *Service) release(ctx context.Context, productID string, quantity int) {
	if err := s.productRepo.Release(ctx, productID, quantity); err != nil {
		logging.FromContext(ctx).Error("stock_release_failed",
			zap.String("product_id", productID),
			zap.Int("quantity", quantity),
			zap.Error(err),
		)
	}
}

// UpdateOrderStatus overwrites the order status. Transitions are permissive;
// only the status label itself is validated.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID string, newStatus domain.Status) (*domain.Order, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "order_service"))

	if _, err := domain.ParseStatus(string(newStatus)); err != nil {
		return nil, err
	}

	entity, err := s.repo.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Error("status_update_order_not_found", zap.String("order_id", orderID))
		}
		return nil, err
	}

	oldStatus := entity.Status
	entity.SetStatus(newStatus)
	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("order: update: %w", err)
	}

	logger.Info("order_status_updated",
		zap.String("order_id", orderID),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(newStatus)),
	)
	s.publish(ctx, domain.NewOrderStatusUpdatedEvent(entity, oldStatus))
	return entity, nil
}

// ProcessPayment runs one payment attempt against a PENDING order. A decline
// returns false with the order untouched; reserved stock is never restored
// on decline (reservation holds until an explicit cancellation).
func (s *Service) ProcessPayment(ctx context.Context, orderID, paymentMethod string) (_ bool, err error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "order_service"))
	logger.Info("process_payment_start",
		zap.String("order_id", orderID),
		zap.String("payment_method", paymentMethod),
	)

	ctx, span := s.tracer.Start(ctx, "ProcessPayment", trace.WithAttributes(
		attribute.String("order.id", orderID),
		attribute.String("payment.method", paymentMethod),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	entity, err := s.repo.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Error("payment_order_not_found", zap.String("order_id", orderID))
		}
		return false, err
	}

	if entity.IsConfirmed() {
		logger.Info("payment_already_confirmed", zap.String("order_id", orderID))
		return true, nil
	}

	approved, err := s.processor.Decide(ctx)
	if err != nil {
		return false, fmt.Errorf("order: payment decision: %w", err)
	}

	if !approved {
		logger.Warn("payment_declined",
			zap.String("order_id", orderID),
			zap.String("payment_method", paymentMethod),
			zap.String("amount", entity.TotalAmount.String()),
		)
		s.publish(ctx, domain.NewPaymentDeclinedEvent(entity, paymentMethod, "payment_declined"))
		return false, nil
	}

	entity.Confirm(paymentMethod)
	if err := s.repo.Update(ctx, entity); err != nil {
		return false, fmt.Errorf("order: update: %w", err)
	}

	logger.Info("payment_processed",
		zap.String("order_id", orderID),
		zap.String("payment_method", paymentMethod),
		zap.String("amount", entity.TotalAmount.String()),
	)
	s.publish(ctx, domain.NewPaymentProcessedEvent(entity))
	return true, nil
}

func (s *Service) GetOrdersByCustomer(ctx context.Context, customerEmail string) ([]*domain.Order, error) {
	orders, err := s.repo.FindByCustomer(ctx, customerEmail)
	if err != nil {
		return nil, fmt.Errorf("order: find by customer: %w", err)
	}
	s.publish(ctx, domain.NewOrdersFetchedEvent(customerEmail, len(orders)))
	return orders, nil
}

func (s *Service) GetAllOrders(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("order: find all: %w", err)
	}
	s.publish(ctx, domain.NewOrdersFetchedEvent("", len(orders)))
	return orders, nil
}

func (s *Service) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	if orderID == "" {
		return nil, errors.New("order: id is required")
	}
	return s.repo.Get(ctx, orderID)
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
