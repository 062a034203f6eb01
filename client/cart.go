package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/herbsera/herbsera-backend/models"
)

// CartService covers /cart. Every mutation returns the server-computed cart.
type CartService struct{ c *Client }

func (s *CartService) Get(ctx context.Context) (*models.Cart, error) {
	return s.call(ctx, http.MethodGet, "/cart", nil)
}

func (s *CartService) Add(ctx context.Context, productID string, quantity int) (*models.Cart, error) {
	return s.call(ctx, http.MethodPost, "/cart", models.AddToCartRequest{ProductID: productID, Quantity: &quantity})
}

func (s *CartService) Update(ctx context.Context, itemID string, quantity int) (*models.Cart, error) {
	return s.call(ctx, http.MethodPut, "/cart/"+url.PathEscape(itemID), models.UpdateCartItemRequest{Quantity: quantity})
}

func (s *CartService) Remove(ctx context.Context, itemID string) (*models.Cart, error) {
	return s.call(ctx, http.MethodDelete, "/cart/"+url.PathEscape(itemID), nil)
}

func (s *CartService) Clear(ctx context.Context) (*models.Cart, error) {
	return s.call(ctx, http.MethodDelete, "/cart", nil)
}

func (s *CartService) call(ctx context.Context, method, path string, body any) (*models.Cart, error) {
	var out models.Cart
	if _, err := s.c.do(ctx, method, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
