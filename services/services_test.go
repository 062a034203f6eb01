package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func sampleOrder() *models.Order {
	tracking := "AWB-77"
	return &models.Order{
		ID:          uuid.New(),
		OrderNumber: "HB-250101-000042",
		UserID:      uuid.New(),
		Items: []models.OrderItem{
			{Name: "Neem Tulsi Soap", Quantity: 2, Price: 249},
			{Name: "Kumkumadi Serum", Quantity: 1, Price: 899},
		},
		ShippingAddress: datatypes.NewJSONType(models.ShippingAddress{
			Name: "Asha Rao", Phone: "9876543210", AddressLine1: "12 MG Road",
			City: "Bengaluru", State: "Karnataka", Pincode: "560001", Country: "India",
		}),
		PaymentMethod:  models.PaymentMethodCOD,
		Pricing:        models.OrderPricing{Subtotal: 1397, Tax: 251.46, Total: 1648.46},
		Status:         models.OrderStatusPending,
		TrackingNumber: &tracking,
		CreatedAt:      time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestGenerateInvoicePDF(t *testing.T) {
	buf, err := GenerateInvoicePDF(sampleOrder(), &models.User{Email: "asha@example.com", DisplayName: "Asha"}, config.Store)
	require.NoError(t, err)
	require.NotNil(t, buf)
	assert.Greater(t, buf.Len(), 500)
	assert.Equal(t, "%PDF", string(buf.Bytes()[:4]))
}

func TestInvoiceFilename(t *testing.T) {
	assert.Equal(t, "invoice-HB-250101-000042.pdf", InvoiceFilename(sampleOrder()))
}

func TestResendSendOrderInvoice(t *testing.T) {
	var got emailPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"email_1"}`))
	}))
	defer srv.Close()

	client := NewResendClientWithEndpoint("re_test", "Herbsera <orders@herbsera.test>", srv.URL)
	err := client.SendOrderInvoice(context.Background(), sampleOrder(),
		&models.User{Email: "asha@example.com", DisplayName: "Asha"}, []byte("%PDF-1.3 fake"))
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_test", auth)
	assert.Equal(t, []string{"asha@example.com"}, got.To)
	assert.Contains(t, got.Subject, "HB-250101-000042")
	assert.Contains(t, got.HTML, "Neem Tulsi Soap")
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, "invoice-HB-250101-000042.pdf", got.Attachments[0].Filename)

	decoded, err := base64.StdEncoding.DecodeString(got.Attachments[0].Content)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 fake", string(decoded))
}

func TestResendSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer srv.Close()

	client := NewResendClientWithEndpoint("re_test", "x", srv.URL)
	err := client.SendOrderStatusUpdate(context.Background(), models.OrderEvent{
		OrderNumber: "HB-1", CustomerEmail: "a@example.com", Status: models.OrderStatusShipped,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "invalid from")
}

func TestResendRequiresRecipient(t *testing.T) {
	client := NewResendClientWithEndpoint("re_test", "x", "http://127.0.0.1:0")
	assert.Error(t, client.SendOrderInvoice(context.Background(), sampleOrder(), nil, nil))
	assert.Error(t, client.SendOrderStatusUpdate(context.Background(), models.OrderEvent{OrderNumber: "HB-1"}))
}

type fakeChannel struct {
	exchange, key string
	msg           amqp.Publishing
	err           error
	closed        bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestRabbitPublisherPublishesPersistentJSON(t *testing.T) {
	ch := &fakeChannel{}
	p := &RabbitPublisher{ch: ch}

	o := sampleOrder()
	ev := models.NewOrderEvent(models.EventOrderPlaced, o, "")
	require.NoError(t, p.PublishOrderEvent(context.Background(), ev))

	assert.Equal(t, EventsExchange, ch.exchange)
	assert.Equal(t, models.EventOrderPlaced, ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)

	var decoded models.OrderEvent
	require.NoError(t, json.Unmarshal(ch.msg.Body, &decoded))
	assert.Equal(t, o.OrderNumber, decoded.OrderNumber)
	assert.Equal(t, 1648.46, decoded.Total)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

type failingPublisher struct{ calls int }

func (f *failingPublisher) PublishOrderEvent(context.Context, models.OrderEvent) error {
	f.calls++
	return errors.New("broker down")
}
func (f *failingPublisher) Close() error { return nil }

func TestPublishOrderEventSwallowsBrokerErrors(t *testing.T) {
	prev := Events
	fp := &failingPublisher{}
	Events = fp
	t.Cleanup(func() { Events = prev })

	PublishOrderEvent(context.Background(), models.EventOrderPlaced, sampleOrder(), "")
	assert.Equal(t, 1, fp.calls)
}

func TestHandleDelivery(t *testing.T) {
	var seen models.OrderEvent
	handler := func(_ context.Context, ev models.OrderEvent) error {
		seen = ev
		return nil
	}

	body, _ := json.Marshal(models.OrderEvent{EventType: models.EventOrderPlaced, OrderID: "o-1", OrderNumber: "HB-1"})
	require.NoError(t, HandleDelivery(context.Background(), body, handler))
	assert.Equal(t, "HB-1", seen.OrderNumber)

	assert.Error(t, HandleDelivery(context.Background(), []byte("not json"), handler))
	assert.Error(t, HandleDelivery(context.Background(), []byte(`{"orderNumber":"x"}`), handler))
}
