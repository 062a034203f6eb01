package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Address struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null"`
	Phone        string    `json:"phone" gorm:"type:varchar(20);not null"`
	AddressLine1 string    `json:"addressLine1" gorm:"type:varchar(255);not null"`
	AddressLine2 string    `json:"addressLine2,omitempty" gorm:"type:varchar(255)"`
	City         string    `json:"city" gorm:"type:varchar(100);not null"`
	State        string    `json:"state" gorm:"type:varchar(100);not null"`
	Pincode      string    `json:"pincode" gorm:"type:varchar(10);not null"`
	Country      string    `json:"country" gorm:"type:varchar(100);not null"`
	IsDefault    bool      `json:"isDefault" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Address) TableName() string {
	return "addresses"
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

// Snapshot freezes the address for an order.
func (a *Address) Snapshot() ShippingAddress {
	return ShippingAddress{
		Name:         a.Name,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		Pincode:      a.Pincode,
		Country:      a.Country,
	}
}

type AddAddressRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Phone        string `json:"phone" binding:"required,max=20"`
	AddressLine1 string `json:"addressLine1" binding:"required,max=255"`
	AddressLine2 string `json:"addressLine2" binding:"max=255"`
	City         string `json:"city" binding:"required,max=100"`
	State        string `json:"state" binding:"required,max=100"`
	Pincode      string `json:"pincode" binding:"required,max=10"`
	Country      string `json:"country" binding:"max=100"`
	IsDefault    bool   `json:"isDefault"`
}

type UpdateAddressRequest struct {
	Name         *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Phone        *string `json:"phone,omitempty" binding:"omitempty,min=1,max=20"`
	AddressLine1 *string `json:"addressLine1,omitempty" binding:"omitempty,min=1,max=255"`
	AddressLine2 *string `json:"addressLine2,omitempty" binding:"omitempty,max=255"`
	City         *string `json:"city,omitempty" binding:"omitempty,min=1,max=100"`
	State        *string `json:"state,omitempty" binding:"omitempty,min=1,max=100"`
	Pincode      *string `json:"pincode,omitempty" binding:"omitempty,min=1,max=10"`
	Country      *string `json:"country,omitempty" binding:"omitempty,max=100"`
	IsDefault    *bool   `json:"isDefault,omitempty"`
}
