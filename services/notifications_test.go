package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	invoices []string
	pdfSize  int
	updates  []models.OrderEvent
}

func (m *recordingMailer) SendOrderInvoice(_ context.Context, o *models.Order, _ *models.User, pdf []byte) error {
	m.invoices = append(m.invoices, o.OrderNumber)
	m.pdfSize = len(pdf)
	return nil
}

func (m *recordingMailer) SendOrderStatusUpdate(_ context.Context, ev models.OrderEvent) error {
	m.updates = append(m.updates, ev)
	return nil
}

func TestNotifyCustomerSendsInvoiceForPlacedOrders(t *testing.T) {
	order := sampleOrder()
	order.User = &models.User{Email: "asha@example.com", DisplayName: "Asha"}

	var loaded uuid.UUID
	load := func(_ context.Context, id uuid.UUID) (*models.Order, error) {
		loaded = id
		return order, nil
	}

	mailer := &recordingMailer{}
	handle := NotifyCustomer(mailer, load)

	err := handle(context.Background(), models.NewOrderEvent(models.EventOrderPlaced, order, ""))
	require.NoError(t, err)
	assert.Equal(t, order.ID, loaded)
	assert.Equal(t, []string{order.OrderNumber}, mailer.invoices)
	assert.Greater(t, mailer.pdfSize, 0)
	assert.Empty(t, mailer.updates)
}

func TestNotifyCustomerSendsStatusUpdates(t *testing.T) {
	mailer := &recordingMailer{}
	handle := NotifyCustomer(mailer, func(context.Context, uuid.UUID) (*models.Order, error) {
		t.Fatal("status updates must not load the order")
		return nil, nil
	})

	order := sampleOrder()
	order.Status = models.OrderStatusShipped
	ev := models.NewOrderEvent(models.EventOrderStatusChanged, order, models.OrderStatusProcessing)

	require.NoError(t, handle(context.Background(), ev))
	require.Len(t, mailer.updates, 1)
	assert.Equal(t, models.OrderStatusShipped, mailer.updates[0].Status)
	assert.Equal(t, "AWB-77", mailer.updates[0].TrackingNumber)
}

func TestNotifyCustomerPropagatesLoadErrors(t *testing.T) {
	handle := NotifyCustomer(&recordingMailer{}, func(context.Context, uuid.UUID) (*models.Order, error) {
		return nil, ErrOrderNotFound
	})

	err := handle(context.Background(), models.OrderEvent{EventType: models.EventOrderPlaced, OrderID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrOrderNotFound)

	err = handle(context.Background(), models.OrderEvent{EventType: models.EventOrderPlaced, OrderID: "nope"})
	assert.Error(t, err)
}
