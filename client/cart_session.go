package client

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/pricing"
)

// ErrLoginRequired is returned when a cart mutation is attempted while
// signed out.
var ErrLoginRequired = errors.New("please login to add items to cart")

// CartSession holds the latest server cart for display. It is safe for
// concurrent use.
type CartSession struct {
	c *Client

	mu   sync.RWMutex
	cart *models.Cart
}

func NewCartSession(c *Client) *CartSession {
	return &CartSession{c: c}
}

// Refresh reloads the cart. Signed-out users and users without a cart
// get an empty cart.
func (s *CartSession) Refresh(ctx context.Context) error {
	if !s.c.LoggedIn() {
		s.set(nil)
		return nil
	}

	cart, err := s.c.Cart.Get(ctx)
	if IsStatus(err, http.StatusNotFound) {
		s.set(nil)
		return nil
	}
	if err != nil {
		return err
	}
	s.set(cart)
	return nil
}

func (s *CartSession) Add(ctx context.Context, productID string, quantity int) error {
	if !s.c.LoggedIn() {
		return ErrLoginRequired
	}
	return s.apply(s.c.Cart.Add(ctx, productID, quantity))
}

func (s *CartSession) Update(ctx context.Context, itemID string, quantity int) error {
	if !s.c.LoggedIn() {
		return ErrLoginRequired
	}
	return s.apply(s.c.Cart.Update(ctx, itemID, quantity))
}

func (s *CartSession) Remove(ctx context.Context, itemID string) error {
	if !s.c.LoggedIn() {
		return ErrLoginRequired
	}
	return s.apply(s.c.Cart.Remove(ctx, itemID))
}

func (s *CartSession) Clear(ctx context.Context) error {
	if !s.c.LoggedIn() {
		s.set(nil)
		return nil
	}
	return s.apply(s.c.Cart.Clear(ctx))
}

// Reset drops the local cart, e.g. after logout.
func (s *CartSession) Reset() { s.set(nil) }

func (s *CartSession) apply(cart *models.Cart, err error) error {
	if err != nil {
		return err
	}
	s.set(cart)
	return nil
}

func (s *CartSession) set(cart *models.Cart) {
	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()
}

// Items returns a copy of the current lines.
func (s *CartSession) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cart == nil {
		return nil
	}
	return append([]models.CartItem(nil), s.cart.Items...)
}

// ItemCount is the badge count: the sum of quantities.
func (s *CartSession) ItemCount() int {
	return pricing.ItemCount(s.lines())
}

// Summary is the display total: 18% tax, free shipping, no discount.
func (s *CartSession) Summary() pricing.Breakdown {
	return pricing.Compute(s.lines(), pricing.DefaultRules())
}

func (s *CartSession) lines() []pricing.Line {
	items := s.Items()
	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.Line{UnitPrice: it.Price, Quantity: it.Quantity})
	}
	return lines
}
