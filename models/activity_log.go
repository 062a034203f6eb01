package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ResourceTypeProduct = "product"
	ResourceTypeOrder   = "order"
	ResourceTypeUser    = "user"
	ResourceTypeReview  = "review"
)

// ActivityLog is one admin write action.
type ActivityLog struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	AdminID      uuid.UUID `json:"adminId" gorm:"type:uuid;not null;index"`
	AdminEmail   string    `json:"adminEmail" gorm:"type:varchar(255);not null"`
	Action       string    `json:"action" gorm:"type:varchar(50);not null;index"` // created_product, updated_order, ...
	ResourceType string    `json:"resourceType" gorm:"type:varchar(30);not null;index"`
	ResourceID   string    `json:"resourceId" gorm:"type:varchar(100)"`
	Method       string    `json:"method" gorm:"type:varchar(10);not null"`
	Path         string    `json:"path" gorm:"type:text;not null"`
	StatusCode   int       `json:"statusCode" gorm:"not null"`
	Status       string    `json:"status" gorm:"type:varchar(10);not null"` // success, failed
	IPAddress    string    `json:"ipAddress" gorm:"type:varchar(64)"`
	UserAgent    string    `json:"userAgent" gorm:"type:text"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime;index"`
}

func (al *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if al.ID == uuid.Nil {
		al.ID = uuid.Must(uuid.NewV7())
	}
	if al.Status == "" {
		al.Status = "success"
	}
	return nil
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
