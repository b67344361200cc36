package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	appCatalog "github.com/quickshop/storefront/internal/application/catalog"
	appOrder "github.com/quickshop/storefront/internal/application/order"
	appRevenue "github.com/quickshop/storefront/internal/application/revenue"
	domainOrder "github.com/quickshop/storefront/internal/domain/order"
	domainProduct "github.com/quickshop/storefront/internal/domain/product"
	"github.com/shopspring/decimal"
)

// Handler adapts the use-case services to HTTP. It owns no business rules;
// it decodes, delegates, and maps domain errors to status codes.
type Handler struct {
	catalog *appCatalog.Service
	orders  *appOrder.Service
	revenue *appRevenue.Service
}

func NewHandler(catalog *appCatalog.Service, orders *appOrder.Service, revenue *appRevenue.Service) *Handler {
	return &Handler{
		catalog: catalog,
		orders:  orders,
		revenue: revenue,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.handleListProducts)
		r.Post("/", h.handleSaveProduct)
		r.Get("/search", h.handleSearchProducts)
		r.Get("/category/{category}", h.handleProductsByCategory)
		r.Get("/{id}", h.handleGetProduct)
		r.Put("/{id}/stock", h.handleUpdateStock)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.handleListOrders)
		r.Post("/", h.handleCreateOrder)
		r.Get("/{id}", h.handleGetOrder)
		r.Put("/{id}/status", h.handleUpdateOrderStatus)
		r.Post("/{id}/payment", h.handleProcessPayment)
	})

	r.Get("/revenue", h.handleRevenue)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

type productResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
}

func toProductResponse(p *domainProduct.Product) productResponse {
	return productResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
	}
}

type orderResponse struct {
	ID            string             `json:"id"`
	CustomerEmail string             `json:"customer_email"`
	CustomerName  string             `json:"customer_name"`
	ProductID     string             `json:"product_id"`
	Quantity      int                `json:"quantity"`
	UnitPrice     decimal.Decimal    `json:"unit_price"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Status        domainOrder.Status `json:"status"`
	PaymentMethod string             `json:"payment_method,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

func toOrderResponse(o *domainOrder.Order) orderResponse {
	return orderResponse{
		ID:            o.ID,
		CustomerEmail: o.CustomerEmail,
		CustomerName:  o.CustomerName,
		ProductID:     o.ProductID,
		Quantity:      o.Quantity,
		UnitPrice:     o.UnitPrice,
		TotalAmount:   o.TotalAmount,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt,
	}
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context(), domainProduct.Filter{})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(products, toProductResponse))
}

func (h *Handler) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	products, err := h.catalog.SearchByName(r.Context(), query)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(products, toProductResponse))
}

func (h *Handler) handleProductsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	products, err := h.catalog.ListByCategory(r.Context(), category)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(products, toProductResponse))
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

type saveProductRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Stock    int             `json:"stock"`
}

func (h *Handler) handleSaveProduct(w http.ResponseWriter, r *http.Request) {
	var req saveProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	p, err := h.catalog.Save(r.Context(), appCatalog.SaveProductInput{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		Stock:    req.Stock,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(p))
}

type updateStockRequest struct {
	Stock int `json:"stock"`
}

func (h *Handler) handleUpdateStock(w http.ResponseWriter, r *http.Request) {
	var req updateStockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.catalog.UpdateStock(r.Context(), chi.URLParam(r, "id"), req.Stock); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createOrderRequest struct {
	CustomerEmail string `json:"customer_email"`
	CustomerName  string `json:"customer_name"`
	ProductID     string `json:"product_id"`
	Quantity      int    `json:"quantity"`
}

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	o, err := h.orders.CreateOrder(r.Context(), appOrder.CreateOrderInput{
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(o))
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	customer := r.URL.Query().Get("customer")

	var (
		orders []*domainOrder.Order
		err    error
	)
	if customer != "" {
		orders, err = h.orders.GetOrdersByCustomer(r.Context(), customer)
	} else {
		orders, err = h.orders.GetAllOrders(r.Context())
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(orders, toOrderResponse))
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	o, err := h.orders.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), domainOrder.Status(req.Status))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

type processPaymentRequest struct {
	PaymentMethod string `json:"payment_method"`
}

type processPaymentResponse struct {
	OrderID  string `json:"order_id"`
	Approved bool   `json:"approved"`
}

func (h *Handler) handleProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req processPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	orderID := chi.URLParam(r, "id")
	approved, err := h.orders.ProcessPayment(r.Context(), orderID, req.PaymentMethod)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	// A decline is a modeled outcome, not an error status.
	writeJSON(w, http.StatusOK, processPaymentResponse{OrderID: orderID, Approved: approved})
}

type revenueResponse struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

func (h *Handler) handleRevenue(w http.ResponseWriter, r *http.Request) {
	total, err := h.revenue.CalculateTotalRevenue(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, revenueResponse{TotalRevenue: total})
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainOrder.ErrNotFound),
		errors.Is(err, domainProduct.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domainProduct.ErrInsufficientStock):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, domainProduct.ErrInvalidName),
		errors.Is(err, domainProduct.ErrInvalidPrice),
		errors.Is(err, domainProduct.ErrInvalidStock),
		errors.Is(err, domainProduct.ErrInvalidQuantity),
		errors.Is(err, domainOrder.ErrInvalidCustomer),
		errors.Is(err, domainOrder.ErrInvalidQuantity),
		errors.Is(err, domainOrder.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func mapSlice[T any, R any](in []T, f func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
