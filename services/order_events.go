package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/herbsera/herbsera-backend/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	EventsExchange   = "herbsera.events"
	OrderEventsQueue = "herbsera.order-events"
	orderRoutingKeys = "order.*"
)

// EventPublisher publishes order lifecycle events.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, ev models.OrderEvent) error
	Close() error
}

// Events is the process-wide publisher. It drops events until a broker is
// configured.
var Events EventPublisher = NoopPublisher{}

type NoopPublisher struct{}

func (NoopPublisher) PublishOrderEvent(context.Context, models.OrderEvent) error { return nil }
func (NoopPublisher) Close() error                                              { return nil }

// amqpChannel is the part of *amqp.Channel the publisher needs.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type RabbitPublisher struct {
	ch amqpChannel
}

// NewRabbitPublisher declares the topic exchange and the order events queue
// so publishing never fails on missing infrastructure.
func NewRabbitPublisher(conn *amqp.Connection) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declareTopology(ch); err != nil {
		ch.Close()
		return nil, err
	}
	return &RabbitPublisher{ch: ch}, nil
}

func declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(EventsExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", EventsExchange, err)
	}
	if _, err := ch.QueueDeclare(OrderEventsQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", OrderEventsQueue, err)
	}
	if err := ch.QueueBind(OrderEventsQueue, orderRoutingKeys, EventsExchange, false, nil); err != nil {
		return fmt.Errorf("bind %s: %w", OrderEventsQueue, err)
	}
	return nil
}

func (p *RabbitPublisher) Close() error {
	return p.ch.Close()
}

func (p *RabbitPublisher) PublishOrderEvent(ctx context.Context, ev models.OrderEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", ev.EventType, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		ev.EventType,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.OrderID + ":" + ev.EventType + ":" + string(ev.Status),
			Timestamp:    ev.Timestamp,
			Body:         body,
		},
	)
}

// PublishOrderEvent sends through Events and only logs failures: an order
// that committed must not fail because the broker is down.
func PublishOrderEvent(ctx context.Context, eventType string, o *models.Order, previous models.OrderStatus) {
	ev := models.NewOrderEvent(eventType, o, previous)
	if err := Events.PublishOrderEvent(ctx, ev); err != nil {
		zap.L().Error("[events] publish failed",
			zap.String("event", eventType),
			zap.String("order", o.OrderNumber),
			zap.Error(err))
	}
}

// OrderEventHandler processes one consumed event.
type OrderEventHandler func(ctx context.Context, ev models.OrderEvent) error

// ConsumeOrderEvents delivers order events to handle until ctx is done.
// Failed messages are nacked without requeue.
func ConsumeOrderEvents(ctx context.Context, conn *amqp.Connection, consumerTag string, handle OrderEventHandler) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if err := declareTopology(ch); err != nil {
		return err
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	msgs, err := ch.Consume(OrderEventsQueue, consumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("[events] stopping consumer")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			if err := HandleDelivery(ctx, msg.Body, handle); err != nil {
				zap.L().Error("[events] handle message failed", zap.Error(err))
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)
		}
	}
}

// HandleDelivery decodes a message body and runs the handler.
func HandleDelivery(ctx context.Context, body []byte, handle OrderEventHandler) error {
	var ev models.OrderEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.OrderID == "" || ev.EventType == "" {
		return fmt.Errorf("event missing orderId or eventType")
	}
	return handle(ctx, ev)
}
