package models

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusRefunded, true},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusProcessing, false},
		{OrderStatusRefunded, OrderStatusDelivered, false},
		{OrderStatusShipped, OrderStatusShipped, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatusValidity(t *testing.T) {
	assert.True(t, OrderStatusRefunded.IsValid())
	assert.False(t, OrderStatus("lost").IsValid())
	assert.False(t, OrderStatusCancelled.CountsAsRevenue())
	assert.True(t, OrderStatusShipped.CountsAsRevenue())
}

func TestPaymentMethodValidity(t *testing.T) {
	assert.True(t, PaymentMethodCOD.IsValid())
	assert.True(t, PaymentMethod("stripe").IsValid())
	assert.False(t, PaymentMethod("paypal").IsValid())
}

func TestCartRecalculate(t *testing.T) {
	cart := &Cart{Items: []CartItem{
		{Quantity: 2, Price: 299.5},
		{Quantity: 1, Price: 150},
		{Quantity: 3, Price: 0.1},
	}}
	cart.Recalculate()

	assert.Equal(t, 749.3, cart.TotalPrice)
	assert.Equal(t, 6, cart.ItemCount)

	empty := &Cart{}
	empty.Recalculate()
	assert.NotNil(t, empty.Items)
	assert.Zero(t, empty.TotalPrice)
	assert.Zero(t, empty.ItemCount)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 42)
	assert.Equal(t, 5, p.Pages)
	assert.Equal(t, int64(42), p.Total)

	assert.Equal(t, 0, NewPagination(1, 10, 0).Pages)
}

func TestUpdateOrderStatusRequestTracking(t *testing.T) {
	id := "TRK-1"
	num := "TRK-2"

	assert.Equal(t, &id, UpdateOrderStatusRequest{TrackingID: &id}.Tracking())
	assert.Equal(t, &num, UpdateOrderStatusRequest{TrackingID: &id, TrackingNumber: &num}.Tracking())
	assert.Nil(t, UpdateOrderStatusRequest{}.Tracking())
}

func TestReviewWithAuthor(t *testing.T) {
	photo := "https://example.com/p.png"
	u := &User{ID: uuid.New(), DisplayName: "Asha", PhotoURL: &photo}

	r := (&Review{}).WithAuthor(u)
	if assert.NotNil(t, r.Author) {
		assert.Equal(t, "Asha", r.Author.DisplayName)
		assert.Equal(t, &photo, r.Author.PhotoURL)
	}
}

func TestNewOrderEvent(t *testing.T) {
	tracking := "AWB123"
	o := &Order{
		ID:             uuid.New(),
		OrderNumber:    "HB-250101-000001",
		UserID:         uuid.New(),
		Status:         OrderStatusShipped,
		TrackingNumber: &tracking,
		Pricing:        OrderPricing{Total: 1180},
		User:           &User{Email: "a@example.com", DisplayName: "A"},
	}

	ev := NewOrderEvent(EventOrderStatusChanged, o, OrderStatusProcessing)
	assert.Equal(t, EventOrderStatusChanged, ev.EventType)
	assert.Equal(t, OrderStatusProcessing, ev.PreviousStatus)
	assert.Equal(t, "AWB123", ev.TrackingNumber)
	assert.Equal(t, "a@example.com", ev.CustomerEmail)
	assert.Equal(t, 1180.0, ev.Total)
}

func TestAllListsParentsBeforeChildren(t *testing.T) {
	pos := map[string]int{}
	for i, m := range All() {
		name := fmt.Sprintf("%T", m)
		_, dup := pos[name]
		assert.False(t, dup, name)
		pos[name] = i
	}

	for child, parent := range map[string]string{
		"*models.Address":           "*models.User",
		"*models.CartItem":          "*models.Cart",
		"*models.OrderItem":         "*models.Order",
		"*models.Review":            "*models.Product",
		"*models.ReviewHelpfulVote": "*models.Review",
	} {
		require.Contains(t, pos, child)
		require.Contains(t, pos, parent)
		assert.Less(t, pos[parent], pos[child], child)
	}
}
