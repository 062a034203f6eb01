package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/herbsera/herbsera-backend/models"
)

// UsersService covers the signed-in user's profile, addresses and wishlist.
type UsersService struct{ c *Client }

func (s *UsersService) Profile(ctx context.Context) (*models.User, error) {
	return s.user(ctx, http.MethodGet, "/users/profile", nil)
}

func (s *UsersService) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	return s.user(ctx, http.MethodPut, "/users/profile", req)
}

func (s *UsersService) AddAddress(ctx context.Context, req models.AddAddressRequest) (*models.User, error) {
	return s.user(ctx, http.MethodPost, "/users/addresses", req)
}

func (s *UsersService) UpdateAddress(ctx context.Context, id string, req models.UpdateAddressRequest) (*models.User, error) {
	return s.user(ctx, http.MethodPut, "/users/addresses/"+url.PathEscape(id), req)
}

func (s *UsersService) DeleteAddress(ctx context.Context, id string) (*models.User, error) {
	return s.user(ctx, http.MethodDelete, "/users/addresses/"+url.PathEscape(id), nil)
}

func (s *UsersService) Wishlist(ctx context.Context) ([]models.Product, error) {
	return s.products(ctx, http.MethodGet, "/users/wishlist", nil)
}

func (s *UsersService) AddToWishlist(ctx context.Context, productID string) ([]models.Product, error) {
	return s.products(ctx, http.MethodPost, "/users/wishlist", models.WishlistRequest{ProductID: productID})
}

func (s *UsersService) RemoveFromWishlist(ctx context.Context, productID string) ([]models.Product, error) {
	return s.products(ctx, http.MethodDelete, "/users/wishlist/"+url.PathEscape(productID), nil)
}

func (s *UsersService) user(ctx context.Context, method, path string, body any) (*models.User, error) {
	var out models.User
	if _, err := s.c.do(ctx, method, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UsersService) products(ctx context.Context, method, path string, body any) ([]models.Product, error) {
	var out []models.Product
	_, err := s.c.do(ctx, method, path, nil, body, &out)
	return out, err
}
