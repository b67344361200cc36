package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	appCatalog "github.com/quickshop/storefront/internal/application/catalog"
	appOrder "github.com/quickshop/storefront/internal/application/order"
	appRevenue "github.com/quickshop/storefront/internal/application/revenue"
	"github.com/quickshop/storefront/internal/infrastructure/id"
	"github.com/quickshop/storefront/internal/infrastructure/memory"
	"github.com/quickshop/storefront/internal/infrastructure/simulator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, successRate float64) (*httptest.Server, *appCatalog.Service) {
	t.Helper()

	productRepo := memory.NewProductRepository()
	orderRepo := memory.NewOrderRepository()
	idGen := id.NewUUIDGenerator()
	processor, err := simulator.New(successRate)
	require.NoError(t, err)

	catalog := appCatalog.NewService(productRepo, idGen, nil)
	orders := appOrder.NewService(orderRepo, productRepo, processor, idGen, nil)
	revenue := appRevenue.NewService(orderRepo, nil)

	server := httptest.NewServer(NewHandler(catalog, orders, revenue).Router())
	t.Cleanup(server.Close)
	return server, catalog
}

func seedProduct(t *testing.T, catalog *appCatalog.Service, stock int) string {
	t.Helper()
	p, err := catalog.Save(context.Background(), appCatalog.SaveProductInput{
		Name:     "Widget",
		Price:    decimal.RequireFromString("20.00"),
		Category: "Toys",
		Stock:    stock,
	})
	require.NoError(t, err)
	return p.ID
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func TestCreateOrderEndpoint(t *testing.T) {
	server, catalog := newTestServer(t, 1.0)
	productID := seedProduct(t, catalog, 10)

	resp := postJSON(t, server.URL+"/orders", map[string]any{
		"customer_email": "alice@example.com",
		"customer_name":  "Alice",
		"product_id":     productID,
		"quantity":       3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body orderResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "PENDING", string(body.Status))
	assert.Equal(t, "60", body.TotalAmount.String())

	// Stock is visible through the product endpoint.
	getResp, err := http.Get(server.URL + "/products/" + productID)
	require.NoError(t, err)
	var p productResponse
	decodeBody(t, getResp, &p)
	assert.Equal(t, 7, p.Stock)
}

func TestCreateOrderEndpoint_Errors(t *testing.T) {
	server, catalog := newTestServer(t, 1.0)
	productID := seedProduct(t, catalog, 2)

	resp := postJSON(t, server.URL+"/orders", map[string]any{
		"customer_email": "alice@example.com",
		"customer_name":  "Alice",
		"product_id":     "missing",
		"quantity":       1,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, server.URL+"/orders", map[string]any{
		"customer_email": "alice@example.com",
		"customer_name":  "Alice",
		"product_id":     productID,
		"quantity":       5,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, server.URL+"/orders", map[string]any{
		"customer_email": "",
		"customer_name":  "Alice",
		"product_id":     productID,
		"quantity":       1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestPaymentAndRevenueEndpoints(t *testing.T) {
	server, catalog := newTestServer(t, 1.0)
	productID := seedProduct(t, catalog, 10)

	resp := postJSON(t, server.URL+"/orders", map[string]any{
		"customer_email": "alice@example.com",
		"customer_name":  "Alice",
		"product_id":     productID,
		"quantity":       3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created orderResponse
	decodeBody(t, resp, &created)

	resp = postJSON(t, fmt.Sprintf("%s/orders/%s/payment", server.URL, created.ID), map[string]any{
		"payment_method": "CREDIT_CARD",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var payment processPaymentResponse
	decodeBody(t, resp, &payment)
	assert.True(t, payment.Approved)

	revResp, err := http.Get(server.URL + "/revenue")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, revResp.StatusCode)
	var rev revenueResponse
	decodeBody(t, revResp, &rev)
	assert.Equal(t, "60.00", rev.TotalRevenue.StringFixed(2))
}

func TestPaymentEndpoint_Declined(t *testing.T) {
	server, catalog := newTestServer(t, 0.0)
	productID := seedProduct(t, catalog, 10)

	resp := postJSON(t, server.URL+"/orders", map[string]any{
		"customer_email": "alice@example.com",
		"customer_name":  "Alice",
		"product_id":     productID,
		"quantity":       1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created orderResponse
	decodeBody(t, resp, &created)

	resp = postJSON(t, fmt.Sprintf("%s/orders/%s/payment", server.URL, created.ID), map[string]any{
		"payment_method": "CREDIT_CARD",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "a decline is still a 200")
	var payment processPaymentResponse
	decodeBody(t, resp, &payment)
	assert.False(t, payment.Approved)
}

func TestPaymentEndpoint_OrderNotFound(t *testing.T) {
	server, _ := newTestServer(t, 1.0)

	resp := postJSON(t, server.URL+"/orders/missing/payment", map[string]any{
		"payment_method": "CREDIT_CARD",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestProductEndpoints(t *testing.T) {
	server, catalog := newTestServer(t, 1.0)
	productID := seedProduct(t, catalog, 5)

	resp, err := http.Get(server.URL + "/products/")
	require.NoError(t, err)
	var products []productResponse
	decodeBody(t, resp, &products)
	assert.Len(t, products, 1)

	resp, err = http.Get(server.URL + "/products/search?q=widget")
	require.NoError(t, err)
	decodeBody(t, resp, &products)
	assert.Len(t, products, 1)

	resp, err = http.Get(server.URL + "/products/category/Toys")
	require.NoError(t, err)
	decodeBody(t, resp, &products)
	assert.Len(t, products, 1)

	resp, err = http.Get(server.URL + "/products/nope")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodPut, server.URL+"/products/"+productID+"/stock",
		bytes.NewReader([]byte(`{"stock": 42}`)))
	require.NoError(t, err)
	putResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, putResp.StatusCode)
	putResp.Body.Close()
}

func TestUpdateOrderStatusEndpoint(t *testing.T) {
	server, catalog := newTestServer(t, 1.0)
	productID := seedProduct(t, catalog, 5)

	resp := postJSON(t, server.URL+"/orders", map[string]any{
		"customer_email": "alice@example.com",
		"customer_name":  "Alice",
		"product_id":     productID,
		"quantity":       1,
	})
	var created orderResponse
	decodeBody(t, resp, &created)

	req, err := http.NewRequest(http.MethodPut, fmt.Sprintf("%s/orders/%s/status", server.URL, created.ID),
		bytes.NewReader([]byte(`{"status": "CANCELLED"}`)))
	require.NoError(t, err)
	putResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, putResp.StatusCode)
	var updated orderResponse
	decodeBody(t, putResp, &updated)
	assert.Equal(t, "CANCELLED", string(updated.Status))

	req, err = http.NewRequest(http.MethodPut, fmt.Sprintf("%s/orders/%s/status", server.URL, created.ID),
		bytes.NewReader([]byte(`{"status": "SHIPPED"}`)))
	require.NoError(t, err)
	putResp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, putResp.StatusCode)
	putResp.Body.Close()
}
