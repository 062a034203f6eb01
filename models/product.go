package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductImage struct {
	URL      string `json:"url"`
	Alt      string `json:"alt,omitempty"`
	PublicID string `json:"publicId,omitempty"`
}

type Ingredient struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage,omitempty"`
	Benefits   string  `json:"benefits,omitempty"`
}

type ProductWeight struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit" gorm:"type:varchar(10)"`
}

type ProductRatings struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type Product struct {
	ID           uuid.UUID                          `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string                             `json:"name" gorm:"type:varchar(200);not null"`
	Slug         string                             `json:"slug" gorm:"type:varchar(220);uniqueIndex;not null"`
	Description  string                             `json:"description" gorm:"type:text"`
	Benefit      string                             `json:"benefit" gorm:"type:text"`
	Price        float64                            `json:"price" gorm:"not null"`
	ComparePrice *float64                           `json:"comparePrice,omitempty"`
	Images       datatypes.JSONSlice[ProductImage]  `json:"images"`
	Category     string                             `json:"category" gorm:"type:varchar(50);not null;index"`
	Stock        int                                `json:"stock" gorm:"not null"`
	SKU          *string                            `json:"sku,omitempty" gorm:"type:varchar(64);uniqueIndex"`
	Featured     bool                               `json:"featured" gorm:"not null;index"`
	IsActive     bool                               `json:"isActive" gorm:"not null;index"`
	Ratings      ProductRatings                     `json:"ratings" gorm:"embedded;embeddedPrefix:rating_"`
	Ingredients  datatypes.JSONSlice[Ingredient]    `json:"ingredients"`
	Benefits     datatypes.JSONSlice[string]        `json:"benefits"`
	Weight       ProductWeight                      `json:"weight" gorm:"embedded;embeddedPrefix:weight_"`
	Tags         datatypes.JSONSlice[string]        `json:"tags"`
	Usage        string                             `json:"usage,omitempty" gorm:"type:text"`
	CreatedAt    time.Time                          `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time                          `json:"updatedAt" gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt                     `json:"-" gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV7())
	}
	p.normalize()
	return nil
}

func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.normalize()
	return nil
}

// normalize keeps JSON columns as [] rather than null
func (p *Product) normalize() {
	if p.Images == nil {
		p.Images = datatypes.JSONSlice[ProductImage]{}
	}
	if p.Ingredients == nil {
		p.Ingredients = datatypes.JSONSlice[Ingredient]{}
	}
	if p.Benefits == nil {
		p.Benefits = datatypes.JSONSlice[string]{}
	}
	if p.Tags == nil {
		p.Tags = datatypes.JSONSlice[string]{}
	}
}

// PrimaryImage returns the first image URL, used for order snapshots.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// ProductRequest is the admin create / full-edit payload.
type ProductRequest struct {
	Name         string         `json:"name" binding:"required,max=200"`
	Description  string         `json:"description" binding:"required"`
	Benefit      string         `json:"benefit"`
	Price        float64        `json:"price" binding:"required,gt=0"`
	ComparePrice *float64       `json:"comparePrice"`
	Images       []ProductImage `json:"images"`
	Category     string         `json:"category" binding:"required"`
	Stock        *int           `json:"stock" binding:"required,min=0"`
	SKU          *string        `json:"sku"`
	Featured     bool           `json:"featured"`
	IsActive     *bool          `json:"isActive"`
	Ingredients  []Ingredient   `json:"ingredients"`
	Benefits     []string       `json:"benefits"`
	Weight       *ProductWeight `json:"weight"`
	Tags         []string       `json:"tags"`
	Usage        string         `json:"usage"`
}

// ProductFilters are the storefront list query parameters.
type ProductFilters struct {
	Page     int
	Limit    int
	Category string
	Featured *bool
	Search   string
	Sort     string
	MinPrice *float64
	MaxPrice *float64
}

type CategorySummary struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
