package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	ProviderGoogle   = "google"
	ProviderPassword = "password"
)

type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	DisplayName  string     `json:"displayName" gorm:"type:varchar(100);not null"`
	PhotoURL     *string    `json:"photoURL,omitempty" gorm:"column:photo_url;type:text"`
	PhoneNumber  *string    `json:"phoneNumber,omitempty" gorm:"type:varchar(20)"`
	Role         string     `json:"role" gorm:"type:varchar(20);not null;index"`
	Provider     string     `json:"provider" gorm:"type:varchar(20);not null"`
	GoogleID     *string    `json:"-" gorm:"column:google_id;type:varchar(255);uniqueIndex"`
	PasswordHash string     `json:"-" gorm:"type:varchar(255)"`
	IsActive     bool       `json:"isActive" gorm:"not null;index"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`

	// Relationships
	Addresses []Address `json:"addresses,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Wishlist  []Product `json:"wishlist,omitempty" gorm:"many2many:user_wishlist"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.Must(uuid.NewV7())
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicAuthor is the slice of a user shown next to their reviews.
type PublicAuthor struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"displayName"`
	PhotoURL    *string   `json:"photoURL,omitempty"`
}

// GoogleUserInfo represents data from Google OAuth
type GoogleUserInfo struct {
	Sub           string `json:"sub"`
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// AuthResponse is returned after successful authentication
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	DisplayName string `json:"displayName" binding:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleTokenRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName" binding:"omitempty,min=1,max=100"`
	PhoneNumber *string `json:"phoneNumber"`
	PhotoURL    *string `json:"photoURL" binding:"omitempty,url"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

type WishlistRequest struct {
	ProductID string `json:"productId" binding:"required"`
}
