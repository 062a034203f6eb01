package models

import "time"

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the message published when an order is placed or moves
// through its lifecycle.
type OrderEvent struct {
	EventType      string      `json:"eventType"`
	OrderID        string      `json:"orderId"`
	OrderNumber    string      `json:"orderNumber"`
	UserID         string      `json:"userId"`
	CustomerEmail  string      `json:"customerEmail,omitempty"`
	CustomerName   string      `json:"customerName,omitempty"`
	Status         OrderStatus `json:"status"`
	PreviousStatus OrderStatus `json:"previousStatus,omitempty"`
	Total          float64     `json:"total"`
	TrackingNumber string      `json:"trackingNumber,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`
}

// NewOrderEvent builds an event from an order. customer may be nil.
func NewOrderEvent(eventType string, o *Order, previous OrderStatus) OrderEvent {
	ev := OrderEvent{
		EventType:      eventType,
		OrderID:        o.ID.String(),
		OrderNumber:    o.OrderNumber,
		UserID:         o.UserID.String(),
		Status:         o.Status,
		PreviousStatus: previous,
		Total:          o.Pricing.Total,
		Timestamp:      time.Now().UTC(),
	}
	if o.TrackingNumber != nil {
		ev.TrackingNumber = *o.TrackingNumber
	}
	if o.User != nil {
		ev.CustomerEmail = o.User.Email
		ev.CustomerName = o.User.DisplayName
	}
	return ev
}
