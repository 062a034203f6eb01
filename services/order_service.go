package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	catalog_cache "github.com/herbsera/herbsera-backend/cache"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/pricing"
	"github.com/herbsera/herbsera-backend/utils"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotCancellable    = errors.New("order can no longer be cancelled")
)

// ValidationError carries a client-facing message for a 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// StockError names the product that ran out. Conflict is set when the stock was taken by a concurrent checkout after
// the availability check passed.
type StockError struct {
	Product   string
	Available int
	Conflict  bool
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.Product)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// PricingRules builds checkout rules from the store settings.
func PricingRules() pricing.Rules {
	return pricing.Rules{
		TaxRate:               config.Store.TaxRate,
		ShippingCost:          config.Store.ShippingCost,
		FreeShippingThreshold: config.Store.FreeShippingThreshold,
	}
}

// ─────────────────────────────────────────────────────────────
// Placing orders
// ─────────────────────────────────────────────────────────────

func validateShippingAddress(a *models.ShippingAddress) error {
	required := []struct{ field, value string }{
		{"name", a.Name},
		{"phone", a.Phone},
		{"addressLine1", a.AddressLine1},
		{"city", a.City},
		{"state", a.State},
		{"pincode", a.Pincode},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return invalid("shippingAddress.%s is required", r.field)
		}
	}
	if strings.TrimSpace(a.Country) == "" {
		a.Country = "India"
	}
	return nil
}

type requestedLine struct {
	productID uuid.UUID
	quantity  int
}

// mergeLines folds repeated products into one line, keeping first-seen order.
func mergeLines(items []models.OrderItemInput) ([]requestedLine, error) {
	if len(items) == 0 {
		return nil, invalid("Order must contain at least one item")
	}
	index := make(map[uuid.UUID]int, len(items))
	lines := make([]requestedLine, 0, len(items))
	for _, it := range items {
		id, err := uuid.Parse(strings.TrimSpace(it.Product))
		if err != nil {
			return nil, invalid("Invalid product ID: %s", it.Product)
		}
		if it.Quantity < 1 {
			return nil, invalid("Quantity must be at least 1")
		}
		if it.Quantity > models.MaxLineQuantity {
			return nil, invalid("Quantity cannot exceed %d", models.MaxLineQuantity)
		}
		if i, ok := index[id]; ok {
			if lines[i].quantity > models.MaxLineQuantity-it.Quantity {
				return nil, invalid("Quantity cannot exceed %d", models.MaxLineQuantity)
			}
			lines[i].quantity += it.Quantity
			continue
		}
		index[id] = len(lines)
		lines = append(lines, requestedLine{productID: id, quantity: it.Quantity})
	}
	return lines, nil
}

func paymentInfoFor(req *models.CreateOrderRequest, now time.Time) models.PaymentInfo {
	info := models.PaymentInfo{Status: "pending"}
	if req.PaymentInfo != nil {
		info = *req.PaymentInfo
	}
	if strings.EqualFold(req.PaymentStatus, "paid") && req.PaymentMethod != models.PaymentMethodCOD {
		info.Status = "paid"
	}
	if info.Status == "" {
		info.Status = "pending"
	}
	if info.Status == "paid" && info.PaidAt == nil {
		info.PaidAt = &now
	}
	return info
}

// PlaceOrder validates the request, reserves stock and writes the order in
// one transaction, then clears the user's cart. Unit prices always come from
// the catalog.
func PlaceOrder(ctx context.Context, userID uuid.UUID, req models.CreateOrderRequest) (*models.Order, error) {
	lines, err := mergeLines(req.Items)
	if err != nil {
		return nil, err
	}
	if !req.PaymentMethod.IsValid() {
		return nil, invalid("paymentMethod must be one of razorpay, stripe, cod")
	}
	if err := validateShippingAddress(&req.ShippingAddress); err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		OrderNumber:     utils.GenerateOrderNumber(now),
		UserID:          userID,
		ShippingAddress: datatypes.NewJSONType(req.ShippingAddress),
		PaymentMethod:   req.PaymentMethod,
		PaymentInfo:     paymentInfoFor(&req, now),
		Status:          models.OrderStatusPending,
		Notes:           strings.TrimSpace(req.Notes),
	}

	err = config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		priced := make([]pricing.Line, 0, len(lines))

		for _, line := range lines {
			var product models.Product
			if err := tx.Where("id = ? AND is_active = ?", line.productID, true).First(&product).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrProductNotFound, line.productID)
				}
				return fmt.Errorf("load product: %w", err)
			}
			if product.Stock < line.quantity {
				return &StockError{Product: product.Name, Available: product.Stock}
			}

			// Re-checked in SQL; a concurrent checkout may have taken the units.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", product.ID, line.quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.quantity))
			if res.Error != nil {
				return fmt.Errorf("reserve stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return &StockError{Product: product.Name, Conflict: true}
			}

			order.Items = append(order.Items, models.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				Image:     product.PrimaryImage(),
				Quantity:  line.quantity,
				Price:     product.Price,
			})
			priced = append(priced, pricing.Line{UnitPrice: product.Price, Quantity: line.quantity})
		}

		breakdown := pricing.Compute(priced, PricingRules())
		order.Pricing = models.OrderPricing{
			Subtotal:     breakdown.Subtotal,
			Tax:          breakdown.Tax,
			ShippingCost: breakdown.ShippingCost,
			Discount:     breakdown.Discount,
			Total:        breakdown.Total,
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		if err := tx.Where("cart_id IN (?)", tx.Model(&models.Cart{}).Select("id").Where("user_id = ?", userID)).
			Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	catalog_cache.Invalidate()

	var customer models.User
	if err := config.DB.WithContext(ctx).First(&customer, "id = ?", userID).Error; err == nil {
		order.User = &customer
	}
	PublishOrderEvent(ctx, models.EventOrderPlaced, order, "")

	zap.L().Info("[order.create] order placed",
		zap.String("order", order.OrderNumber),
		zap.String("user", userID.String()),
		zap.Float64("total", order.Pricing.Total))

	return order, nil
}

// ─────────────────────────────────────────────────────────────
// Lifecycle
// ─────────────────────────────────────────────────────────────

// LoadOrder fetches an order with its items and customer.
func LoadOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := config.DB.WithContext(ctx).
		Preload("Items").
		Preload("User").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	return &order, nil
}

func restock(tx *gorm.DB, items []models.OrderItem) error {
	for _, it := range items {
		if err := tx.Unscoped().Model(&models.Product{}).
			Where("id = ?", it.ProductID).
			UpdateColumn("stock", gorm.Expr("stock + ?", it.Quantity)).Error; err != nil {
			return fmt.Errorf("restock %s: %w", it.ProductID, err)
		}
	}
	return nil
}

// CancelOrder cancels the user's own order while it is still cancellable and
// puts the items back in stock.
func CancelOrder(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	order, err := LoadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	if !config.Store.IsCancellable(string(order.Status)) {
		return nil, fmt.Errorf("%w: status is %s", ErrNotCancellable, order.Status)
	}

	previous := order.Status
	now := time.Now()

	err = config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Only one of two racing cancels can match the old status.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, previous).
			Updates(map[string]any{"status": models.OrderStatusCancelled, "cancelled_at": now})
		if res.Error != nil {
			return fmt.Errorf("cancel order: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotCancellable
		}
		return restock(tx, order.Items)
	})
	if err != nil {
		return nil, err
	}

	catalog_cache.Invalidate()
	order.Status = models.OrderStatusCancelled
	order.CancelledAt = &now
	PublishOrderEvent(ctx, models.EventOrderStatusChanged, order, previous)

	return order, nil
}

// UpdateOrderStatus applies an admin status change. Re-applying the current
// status only updates tracking.
func UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, next models.OrderStatus, tracking *string) (*models.Order, error) {
	if !next.IsValid() {
		return nil, invalid("Invalid status: %s", next)
	}

	order, err := LoadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	if !previous.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, previous, next)
	}

	now := time.Now()
	updates := map[string]any{"status": next}
	if tracking != nil {
		t := strings.TrimSpace(*tracking)
		if t == "" {
			updates["tracking_number"] = nil
			order.TrackingNumber = nil
		} else {
			updates["tracking_number"] = t
			order.TrackingNumber = &t
		}
	}
	if next != previous {
		switch next {
		case models.OrderStatusDelivered:
			updates["delivered_at"] = now
			order.DeliveredAt = &now
		case models.OrderStatusCancelled:
			updates["cancelled_at"] = now
			order.CancelledAt = &now
		}
	}

	err = config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, previous).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("update order: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}
		if next == models.OrderStatusCancelled && previous != models.OrderStatusCancelled {
			return restock(tx, order.Items)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = next
	if next == models.OrderStatusCancelled {
		catalog_cache.Invalidate()
	}
	if next != previous {
		PublishOrderEvent(ctx, models.EventOrderStatusChanged, order, previous)
	}

	zap.L().Info("[order.status] updated",
		zap.String("order", order.OrderNumber),
		zap.String("from", string(previous)),
		zap.String("to", string(next)))

	return order, nil
}
