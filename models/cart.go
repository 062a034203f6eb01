package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/pricing"
	"gorm.io/gorm"
)

// Cart is the server-side cart. There is exactly one per user.
type Cart struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID  `json:"user" gorm:"type:uuid;not null;uniqueIndex"`
	Items      []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	TotalPrice float64    `json:"totalPrice" gorm:"-"`
	ItemCount  int        `json:"itemCount" gorm:"-"`
	CreatedAt  time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Cart) TableName() string {
	return "carts"
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

// Recalculate refreshes the derived totals from the items.
func (c *Cart) Recalculate() {
	if c.Items == nil {
		c.Items = []CartItem{}
	}
	lines := make([]pricing.Line, 0, len(c.Items))
	for _, it := range c.Items {
		lines = append(lines, pricing.Line{UnitPrice: it.Price, Quantity: it.Quantity})
	}
	c.TotalPrice = pricing.Subtotal(lines)
	c.ItemCount = pricing.ItemCount(lines)
}

type CartItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Price     float64   `json:"price" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

type AddToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}
