package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/herbsera/herbsera-backend/models"
)

type ProductsService struct{ c *Client }

// ProductQuery filters the storefront listing. Zero values are omitted.
type ProductQuery struct {
	ListOptions
	Category string
	Featured *bool
	Search   string
	Sort     string // price_asc, price_desc, rating, name
	MinPrice *float64
	MaxPrice *float64
}

func (q ProductQuery) values() url.Values {
	v := q.ListOptions.values()
	setIf(v, "category", q.Category)
	setIf(v, "search", q.Search)
	setIf(v, "sort", q.Sort)
	if q.Featured != nil {
		v.Set("featured", strconv.FormatBool(*q.Featured))
	}
	if q.MinPrice != nil {
		v.Set("minPrice", strconv.FormatFloat(*q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64))
	}
	return v
}

func (s *ProductsService) List(ctx context.Context, q ProductQuery) (*Page[models.Product], error) {
	return list[models.Product](ctx, s.c, "/products", q.values())
}

func (s *ProductsService) Featured(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	_, err := s.c.do(ctx, http.MethodGet, "/products/featured", nil, nil, &out)
	return out, err
}

// Categories lists every configured category with its active product count.
func (s *ProductsService) Categories(ctx context.Context) ([]models.CategorySummary, error) {
	var out []models.CategorySummary
	_, err := s.c.do(ctx, http.MethodGet, "/products/categories", nil, nil, &out)
	return out, err
}

func (s *ProductsService) Get(ctx context.Context, id string) (*models.Product, error) {
	var out models.Product
	if _, err := s.c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ProductsService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var out models.Product
	if _, err := s.c.do(ctx, http.MethodGet, "/products/slug/"+url.PathEscape(slug), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
