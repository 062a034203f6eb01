package routes_test

import (
	"net/http"
	"testing"

	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func placeOrder(t *testing.T, srv http.Handler, token string, items ...map[string]any) models.Order {
	t.Helper()
	w, env := testutil.DoJSON(t, srv, http.MethodPost, "/api/orders", token, map[string]any{
		"items":           items,
		"shippingAddress": shippingAddress(),
		"paymentMethod":   "cod",
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)

	var order models.Order
	env.Decode(t, &order)
	return order
}

func item(p *models.Product, qty int) map[string]any {
	return map[string]any{"product": p.ID.String(), "quantity": qty}
}

func stockOf(t *testing.T, p *models.Product) int {
	t.Helper()
	var fresh models.Product
	require.NoError(t, config.DB.Unscoped().First(&fresh, "id = ?", p.ID).Error)
	return fresh.Stock
}

func TestPlaceOrder(t *testing.T) {
	srv := newServer(t)
	user := testutil.CreateUser(t, "asha@example.com")
	token := testutil.Token(t, user)
	soap := testutil.CreateProduct(t, "Neem Soap", testutil.Price(100), testutil.Stock(5))
	serum := testutil.CreateProduct(t, "Glow Serum", testutil.Price(250), testutil.Category("serum"))

	testutil.DoJSON(t, srv, http.MethodPost, "/api/cart", token, map[string]any{"productId": soap.ID})

	// Repeated lines for the same product are merged.
	order := placeOrder(t, srv, token, item(soap, 1), item(serum, 1), item(soap, 1))

	assert.Regexp(t, `^HB-\d{6}-\d{6}$`, order.OrderNumber)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 450.0, order.Pricing.Subtotal)
	assert.Equal(t, 81.0, order.Pricing.Tax)
	assert.Equal(t, 531.0, order.Pricing.Total)
	assert.Equal(t, "pending", order.PaymentInfo.Status)
	assert.Equal(t, "India", order.ShippingAddress.Data().Country)

	assert.Equal(t, 3, stockOf(t, soap))
	assert.Equal(t, 9, stockOf(t, serum))

	_, env := testutil.DoJSON(t, srv, http.MethodGet, "/api/cart", token, nil)
	var cart models.Cart
	env.Decode(t, &cart)
	assert.Empty(t, cart.Items)

	events := testutil.Events(t).Events()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventOrderPlaced, events[0].EventType)
	assert.Equal(t, order.OrderNumber, events[0].OrderNumber)
}

func TestPlaceOrderIgnoresClientPrices(t *testing.T) {
	srv := newServer(t)
	token := testutil.Token(t, testutil.CreateUser(t, "asha@example.com"))
	soap := testutil.CreateProduct(t, "Neem Soap", testutil.Price(100))

	order := placeOrder(t, srv, token, map[string]any{"product": soap.ID.String(), "quantity": 1, "price": 1})
	assert.Equal(t, 100.0, order.Items[0].Price)
	assert.Equal(t, 118.0, order.Pricing.Total)
}

func TestPlaceOrderRejections(t *testing.T) {
	srv := newServer(t)
	token := testutil.Token(t, testutil.CreateUser(t, "asha@example.com"))
	soap := testutil.CreateProduct(t, "Neem Soap", testutil.Stock(1))
	hidden := testutil.CreateProduct(t, "Old Soap", testutil.Hidden)

	address := shippingAddress()
	noCity := shippingAddress()
	delete(noCity, "city")

	cases := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{"no items", map[string]any{"items": []any{}, "shippingAddress": address, "paymentMethod": "cod"}, http.StatusBadRequest},
		{"unknown payment", map[string]any{"items": []any{item(soap, 1)}, "shippingAddress": address, "paymentMethod": "cash"}, http.StatusBadRequest},
		{"missing city", map[string]any{"items": []any{item(soap, 1)}, "shippingAddress": noCity, "paymentMethod": "cod"}, http.StatusBadRequest},
		{"insufficient stock", map[string]any{"items": []any{item(soap, 2)}, "shippingAddress": address, "paymentMethod": "cod"}, http.StatusBadRequest},
		{"inactive product", map[string]any{"items": []any{item(hidden, 1)}, "shippingAddress": address, "paymentMethod": "cod"}, http.StatusNotFound},
		{"quantity over cap", map[string]any{"items": []any{item(soap, models.MaxLineQuantity+1)}, "shippingAddress": address, "paymentMethod": "cod"}, http.StatusBadRequest},
		{"merged quantity over cap", map[string]any{"items": []any{item(soap, 600), item(soap, 600)}, "shippingAddress": address, "paymentMethod": "cod"}, http.StatusBadRequest},
		{"merged quantity overflow", map[string]any{"items": []any{item(soap, 1<<62), item(soap, 1<<62)}, "shippingAddress": address, "paymentMethod": "cod"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := testutil.DoJSON(t, srv, http.MethodPost, "/api/orders", token, tc.body)
			assert.Equal(t, tc.status, w.Code, env.Message)
		})
	}

	assert.Equal(t, 1, stockOf(t, soap))
	assert.Empty(t, testutil.Events(t).Events())
}

func TestPlaceOrderConflictWhenStockTakenConcurrently(t *testing.T) {
	srv := newServer(t)
	token := testutil.Token(t, testutil.CreateUser(t, "asha@example.com"))
	soap := testutil.CreateProduct(t, "Neem Soap", testutil.Stock(5))

	// Another checkout empties the shelf between the availability check and
	// the reservation. The callback runs inside the checkout transaction.
	stolen := false
	err := config.DB.Callback().Update().Before("gorm:update").Register("test:take_stock", func(db *gorm.DB) {
		if stolen || db.Statement.Table != "products" {
			return
		}
		stolen = true
		db.Session(&gorm.Session{NewDB: true}).Exec("UPDATE products SET stock = 0 WHERE id = ?", soap.ID)
	})
	require.NoError(t, err)

	w, env := testutil.DoJSON(t, srv, http.MethodPost, "/api/orders", token, map[string]any{
		"items":           []any{item(soap, 2)},
		"shippingAddress": shippingAddress(),
		"paymentMethod":   "cod",
	})
	require.True(t, stolen)
	assert.Equal(t, http.StatusConflict, w.Code, env.Message)

	var orders int64
	require.NoError(t, config.DB.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
	assert.Empty(t, testutil.Events(t).Events())
}

func TestPaidStatusIgnoredForCashOnDelivery(t *testing.T) {
	srv := newServer(t)
	token := testutil.Token(t, testutil.CreateUser(t, "asha@example.com"))
	soap := testutil.CreateProduct(t, "Neem Soap")

	body := func(method string) map[string]any {
		return map[string]any{
			"items":           []any{item(soap, 1)},
			"shippingAddress": shippingAddress(),
			"paymentMethod":   method,
			"paymentStatus":   "paid",
		}
	}

	_, env := testutil.DoJSON(t, srv, http.MethodPost, "/api/orders", token, body("cod"))
	var cod models.Order
	env.Decode(t, &cod)
	assert.Equal(t, "pending", cod.PaymentInfo.Status)

	_, env = testutil.DoJSON(t, srv, http.MethodPost, "/api/orders", token, body("razorpay"))
	var online models.Order
	env.Decode(t, &online)
	assert.Equal(t, "paid", online.PaymentInfo.Status)
	assert.NotNil(t, online.PaymentInfo.PaidAt)
}

func TestMyOrdersAndOwnership(t *testing.T) {
	srv := newServer(t)
	asha := testutil.Token(t, testutil.CreateUser(t, "asha@example.com"))
	ravi := testutil.Token(t, testutil.CreateUser(t, "ravi@example.com"))
	soap := testutil.CreateProduct(t, "Neem Soap")

	order := placeOrder(t, srv, asha, item(soap, 1))

	w, env := testutil.DoJSON(t, srv, http.MethodGet, "/api/orders/my-orders", asha, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []models.Order
	env.Decode(t, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(1), env.Pagination.Total)

	w, _ = testutil.DoJSON(t, srv, http.MethodGet, "/api/orders/"+order.ID.String(), asha, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = testutil.DoJSON(t, srv, http.MethodGet, "/api/orders/"+order.ID.String(), ravi, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = testutil.DoJSON(t, srv, http.MethodPut, "/api/orders/"+order.ID.String()+"/cancel", ravi, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelOrderRestocks(t *testing.T) {
	srv := newServer(t)
	token := testutil.Token(t, testutil.CreateUser(t, "asha@example.com"))
	soap := testutil.CreateProduct(t, "Neem Soap", testutil.Stock(4))

	order := placeOrder(t, srv, token, item(soap, 3))
	require.Equal(t, 1, stockOf(t, soap))

	w, env := testutil.DoJSON(t, srv, http.MethodPut, "/api/orders/"+order.ID.String()+"/cancel", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cancelled models.Order
	env.Decode(t, &cancelled)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, 4, stockOf(t, soap))

	w, env = testutil.DoJSON(t, srv, http.MethodPut, "/api/orders/"+order.ID.String()+"/cancel", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Order can only be cancelled while pending or processing", env.Message)
	assert.Equal(t, 4, stockOf(t, soap))

	events := testutil.Events(t).Events()
	require.Len(t, events, 2)
	assert.Equal(t, models.EventOrderStatusChanged, events[1].EventType)
}

func TestCannotCancelShippedOrder(t *testing.T) {
	srv := newServer(t)
	admin := testutil.Token(t, testutil.CreateUser(t, "admin@example.com", testutil.AsAdmin))
	token := testutil.Token(t, testutil.CreateUser(t, "asha@example.com"))
	soap := testutil.CreateProduct(t, "Neem Soap")

	order := placeOrder(t, srv, token, item(soap, 1))
	path := "/api/admin/orders/" + order.ID.String() + "/status"
	for _, status := range []string{"processing", "shipped"} {
		w, env := testutil.DoJSON(t, srv, http.MethodPatch, path, admin, map[string]any{"status": status})
		require.Equal(t, http.StatusOK, w.Code, env.Message)
	}

	w, _ := testutil.DoJSON(t, srv, http.MethodPut, "/api/orders/"+order.ID.String()+"/cancel", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminOrderStatusTransitions(t *testing.T) {
	srv := newServer(t)
	admin := testutil.Token(t, testutil.CreateUser(t, "admin@example.com", testutil.AsAdmin))
	token := testutil.Token(t, testutil.CreateUser(t, "asha@example.com"))
	soap := testutil.CreateProduct(t, "Neem Soap", testutil.Stock(5))

	order := placeOrder(t, srv, token, item(soap, 2))
	path := "/api/admin/orders/" + order.ID.String() + "/status"

	w, _ := testutil.DoJSON(t, srv, http.MethodPatch, path, admin, map[string]any{"status": "delivered"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = testutil.DoJSON(t, srv, http.MethodPatch, path, admin, map[string]any{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = testutil.DoJSON(t, srv, http.MethodPatch, path, admin, map[string]any{"status": "processing"})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := testutil.DoJSON(t, srv, http.MethodPatch, path, admin, map[string]any{"status": "shipped", "trackingNumber": "AWB123"})
	require.Equal(t, http.StatusOK, w.Code)
	var shipped models.Order
	env.Decode(t, &shipped)
	require.NotNil(t, shipped.TrackingNumber)
	assert.Equal(t, "AWB123", *shipped.TrackingNumber)

	w, env = testutil.DoJSON(t, srv, http.MethodPatch, path, admin, map[string]any{"status": "delivered"})
	require.Equal(t, http.StatusOK, w.Code)
	var delivered models.Order
	env.Decode(t, &delivered)
	assert.NotNil(t, delivered.DeliveredAt)

	w, _ = testutil.DoJSON(t, srv, http.MethodPatch, path, admin, map[string]any{"status": "cancelled"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 3, stockOf(t, soap))

	// placed + three changes
	assert.Len(t, testutil.Events(t).Events(), 4)
}

func TestAdminCancelRestocks(t *testing.T) {
	srv := newServer(t)
	admin := testutil.Token(t, testutil.CreateUser(t, "admin@example.com", testutil.AsAdmin))
	token := testutil.Token(t, testutil.CreateUser(t, "asha@example.com"))
	soap := testutil.CreateProduct(t, "Neem Soap", testutil.Stock(5))

	order := placeOrder(t, srv, token, item(soap, 2))
	w, _ := testutil.DoJSON(t, srv, http.MethodPatch, "/api/admin/orders/"+order.ID.String()+"/status", admin,
		map[string]any{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, stockOf(t, soap))
}

func TestDownloadInvoice(t *testing.T) {
	srv := newServer(t)
	token := testutil.Token(t, testutil.CreateUser(t, "asha@example.com"))
	soap := testutil.CreateProduct(t, "Neem Soap")

	order := placeOrder(t, srv, token, item(soap, 1))

	w, _ := testutil.DoJSON(t, srv, http.MethodGet, "/api/orders/"+order.ID.String()+"/invoice", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), order.OrderNumber)
	assert.True(t, len(w.Body.Bytes()) > 4 && string(w.Body.Bytes()[:4]) == "%PDF")
}
