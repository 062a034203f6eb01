package client

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/herbsera/herbsera-backend/models"
)

// FormError is a client-side validation failure. Nothing was sent.
type FormError struct {
	Field   string
	Message string
}

func (e *FormError) Error() string { return e.Message }

// ValidateReview runs the review form checks the server also enforces.
func ValidateReview(rating int, title, comment string) error {
	switch {
	case rating < 1 || rating > 5:
		return &FormError{Field: "rating", Message: "Rating must be between 1 and 5"}
	case strings.TrimSpace(comment) == "":
		return &FormError{Field: "comment", Message: "Comment is required"}
	case utf8.RuneCountInString(title) > models.MaxReviewTitle:
		return &FormError{Field: "title", Message: fmt.Sprintf("Title cannot exceed %d characters", models.MaxReviewTitle)}
	case utf8.RuneCountInString(comment) > models.MaxReviewComment:
		return &FormError{Field: "comment", Message: fmt.Sprintf("Comment cannot exceed %d characters", models.MaxReviewComment)}
	}
	return nil
}
