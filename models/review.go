package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MaxReviewTitle   = 100
	MaxReviewComment = 1000
)

type ReviewImage struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId,omitempty"`
}

type Review struct {
	ID                 uuid.UUID                        `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID          uuid.UUID                        `json:"product" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_product;index"`
	UserID             uuid.UUID                        `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_product"`
	User               *User                            `json:"-" gorm:"foreignKey:UserID"`
	Author             *PublicAuthor                    `json:"user,omitempty" gorm:"-"`
	Rating             int                              `json:"rating" gorm:"not null"`
	Title              string                           `json:"title,omitempty" gorm:"type:varchar(100)"`
	Comment            string                           `json:"comment" gorm:"type:text;not null"`
	Images             datatypes.JSONSlice[ReviewImage] `json:"images"`
	IsVerifiedPurchase bool                             `json:"isVerifiedPurchase" gorm:"not null"`
	HelpfulCount       int                              `json:"helpfulCount" gorm:"not null"`
	IsApproved         bool                             `json:"isApproved" gorm:"not null;index"`
	CreatedAt          time.Time                        `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt          time.Time                        `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.Must(uuid.NewV7())
	}
	if r.Images == nil {
		r.Images = datatypes.JSONSlice[ReviewImage]{}
	}
	return nil
}

// AfterFind exposes the preloaded author under "user".
func (r *Review) AfterFind(tx *gorm.DB) error {
	r.attachAuthor()
	return nil
}

func (r *Review) attachAuthor() {
	if r.User != nil {
		r.Author = &PublicAuthor{
			ID:          r.User.ID,
			DisplayName: r.User.DisplayName,
			PhotoURL:    r.User.PhotoURL,
		}
	}
}

// WithAuthor sets the author from a loaded user.
func (r *Review) WithAuthor(u *User) *Review {
	r.User = u
	r.attachAuthor()
	return r
}

// ReviewHelpfulVote records that a user found a review helpful.
type ReviewHelpfulVote struct {
	ReviewID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ReviewHelpfulVote) TableName() string {
	return "review_helpful_votes"
}

type CreateReviewRequest struct {
	Product string        `json:"product" binding:"required"`
	Rating  int           `json:"rating"`
	Title   string        `json:"title"`
	Comment string        `json:"comment"`
	Images  []ReviewImage `json:"images"`
}

type UpdateReviewRequest struct {
	Rating  *int          `json:"rating,omitempty"`
	Title   *string       `json:"title,omitempty"`
	Comment *string       `json:"comment,omitempty"`
	Images  []ReviewImage `json:"images,omitempty"`
}
