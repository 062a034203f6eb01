package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaxLineQuantity caps the units of one product in a cart or order.
const MaxLineQuantity = 1000

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {OrderStatusRefunded},
}

// IsValid reports whether s is one of the known statuses.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// CanTransitionTo reports whether an admin may move an order from s to next.
// Re-applying the current status is allowed so tracking can be edited.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CountsAsRevenue is false for orders whose money was never kept.
func (s OrderStatus) CountsAsRevenue() bool {
	return s != OrderStatusCancelled && s != OrderStatusRefunded
}

type PaymentMethod string

const (
	PaymentMethodRazorpay PaymentMethod = "razorpay"
	PaymentMethodStripe   PaymentMethod = "stripe"
	PaymentMethodCOD      PaymentMethod = "cod"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodRazorpay || m == PaymentMethodStripe || m == PaymentMethodCOD
}

type ShippingAddress struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Country      string `json:"country"`
}

type PaymentInfo struct {
	ID     string     `json:"id,omitempty" gorm:"type:varchar(100)"`
	Status string     `json:"status" gorm:"type:varchar(20)"`
	PaidAt *time.Time `json:"paidAt,omitempty"`
}

type OrderPricing struct {
	Subtotal     float64 `json:"subtotal" gorm:"not null"`
	Tax          float64 `json:"tax" gorm:"not null"`
	ShippingCost float64 `json:"shippingCost" gorm:"not null"`
	Discount     float64 `json:"discount" gorm:"not null"`
	Total        float64 `json:"total" gorm:"not null"`
}

// Order is a frozen checkout snapshot. After creation only status,
// tracking and payment fields change.
type Order struct {
	ID              uuid.UUID                           `json:"id" gorm:"type:uuid;primaryKey"`
	OrderNumber     string                              `json:"orderNumber" gorm:"type:varchar(32);uniqueIndex;not null"`
	UserID          uuid.UUID                           `json:"userId" gorm:"type:uuid;not null;index"`
	User            *User                               `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items           []OrderItem                         `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress datatypes.JSONType[ShippingAddress] `json:"shippingAddress"`
	PaymentMethod   PaymentMethod                       `json:"paymentMethod" gorm:"type:varchar(20);not null"`
	PaymentInfo     PaymentInfo                         `json:"paymentInfo" gorm:"embedded;embeddedPrefix:payment_"`
	Pricing         OrderPricing                        `json:"pricing" gorm:"embedded"`
	Status          OrderStatus                         `json:"status" gorm:"type:varchar(20);not null;index"`
	TrackingNumber  *string                             `json:"trackingNumber,omitempty" gorm:"type:varchar(100)"`
	Notes           string                              `json:"notes,omitempty" gorm:"type:text"`
	DeliveredAt     *time.Time                          `json:"deliveredAt,omitempty"`
	CancelledAt     *time.Time                          `json:"cancelledAt,omitempty"`
	CreatedAt       time.Time                           `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt       time.Time                           `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

type OrderItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"type:varchar(200);not null"`
	Image     string    `json:"image,omitempty" gorm:"type:text"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Price     float64   `json:"price" gorm:"not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

// OrderItemInput is one requested line. Price is accepted for compatibility
// and ignored; unit prices always come from the catalog.
type OrderItemInput struct {
	Product  string   `json:"product" binding:"required"`
	Quantity int      `json:"quantity" binding:"required,min=1"`
	Price    *float64 `json:"price,omitempty"`
}

type CreateOrderRequest struct {
	Items           []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	ShippingAddress ShippingAddress  `json:"shippingAddress"`
	PaymentMethod   PaymentMethod    `json:"paymentMethod" binding:"required"`
	PaymentStatus   string           `json:"paymentStatus,omitempty"`
	PaymentInfo     *PaymentInfo     `json:"paymentInfo,omitempty"`
	Notes           string           `json:"notes,omitempty" binding:"max=500"`
}

type UpdateOrderStatusRequest struct {
	Status         OrderStatus `json:"status" binding:"required"`
	TrackingID     *string     `json:"trackingId,omitempty"`
	TrackingNumber *string     `json:"trackingNumber,omitempty"`
}

// Tracking returns whichever tracking field the caller sent.
func (r UpdateOrderStatusRequest) Tracking() *string {
	if r.TrackingNumber != nil {
		return r.TrackingNumber
	}
	return r.TrackingID
}
