package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/herbsera/herbsera-backend/models"
)

type OrdersService struct{ c *Client }

// Create places an order. Prices in the request are ignored by the server.
func (s *OrdersService) Create(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	var out models.Order
	if _, err := s.c.do(ctx, http.MethodPost, "/orders", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *OrdersService) Mine(ctx context.Context, opts ListOptions) (*Page[models.Order], error) {
	return list[models.Order](ctx, s.c, "/orders/my-orders", opts.values())
}

func (s *OrdersService) Get(ctx context.Context, id string) (*models.Order, error) {
	var out models.Order
	if _, err := s.c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *OrdersService) Cancel(ctx context.Context, id string) (*models.Order, error) {
	var out models.Order
	if _, err := s.c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/cancel", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Invoice downloads the order's PDF invoice.
func (s *OrdersService) Invoice(ctx context.Context, id string) ([]byte, error) {
	return s.c.download(ctx, "/orders/"+url.PathEscape(id)+"/invoice")
}
