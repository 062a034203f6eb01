package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/herbsera/herbsera-backend/models"
)

type ReviewsService struct{ c *Client }

func (s *ReviewsService) ForProduct(ctx context.Context, productID string, opts ListOptions) (*Page[models.Review], error) {
	return list[models.Review](ctx, s.c, "/reviews/product/"+url.PathEscape(productID), opts.values())
}

// Create validates the form locally before submitting.
func (s *ReviewsService) Create(ctx context.Context, req models.CreateReviewRequest) (*models.Review, error) {
	if err := ValidateReview(req.Rating, req.Title, req.Comment); err != nil {
		return nil, err
	}
	return s.call(ctx, http.MethodPost, "/reviews", req)
}

func (s *ReviewsService) Update(ctx context.Context, id string, req models.UpdateReviewRequest) (*models.Review, error) {
	return s.call(ctx, http.MethodPut, "/reviews/"+url.PathEscape(id), req)
}

func (s *ReviewsService) Delete(ctx context.Context, id string) error {
	_, err := s.c.do(ctx, http.MethodDelete, "/reviews/"+url.PathEscape(id), nil, nil, nil)
	return err
}

func (s *ReviewsService) MarkHelpful(ctx context.Context, id string) (*models.Review, error) {
	return s.call(ctx, http.MethodPost, "/reviews/"+url.PathEscape(id)+"/helpful", nil)
}

func (s *ReviewsService) call(ctx context.Context, method, path string, body any) (*models.Review, error) {
	var out models.Review
	if _, err := s.c.do(ctx, method, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
