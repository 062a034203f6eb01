package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"go.uber.org/zap"
)

// OrderMailer sends customer emails about orders. *ResendClient implements it.
type OrderMailer interface {
	SendOrderInvoice(ctx context.Context, o *models.Order, customer *models.User, pdf []byte) error
	SendOrderStatusUpdate(ctx context.Context, ev models.OrderEvent) error
}

// OrderLoader fetches an order with items and customer.
type OrderLoader func(ctx context.Context, orderID uuid.UUID) (*models.Order, error)

// NotifyCustomer builds the worker's event handler: a placed order gets the
// PDF invoice, a status change gets a short update.
func NotifyCustomer(mailer OrderMailer, load OrderLoader) OrderEventHandler {
	return func(ctx context.Context, ev models.OrderEvent) error {
		switch ev.EventType {
		case models.EventOrderPlaced:
			id, err := uuid.Parse(ev.OrderID)
			if err != nil {
				return fmt.Errorf("bad order id %q: %w", ev.OrderID, err)
			}
			order, err := load(ctx, id)
			if err != nil {
				return err
			}
			pdf, err := GenerateInvoicePDF(order, order.User, config.Store)
			if err != nil {
				return err
			}
			return mailer.SendOrderInvoice(ctx, order, order.User, pdf.Bytes())

		case models.EventOrderStatusChanged:
			return mailer.SendOrderStatusUpdate(ctx, ev)

		default:
			zap.L().Debug("[notify] ignoring event", zap.String("event", ev.EventType))
			return nil
		}
	}
}
