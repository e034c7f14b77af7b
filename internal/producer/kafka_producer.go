package producer

import (
	"context"
	"encoding/json"
	"time"

	"store-service/internal/service"

	"github.com/segmentio/kafka-go"
)

// OrderEventProducer публикует события заказов в один топик, ключ — id заказа.
type OrderEventProducer struct {
	writer *kafka.Writer
}

func NewOrderEventProducer(brokers []string, topic string) *OrderEventProducer {
	return &OrderEventProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (p *OrderEventProducer) publish(ctx context.Context, key string, event any) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

func (p *OrderEventProducer) PublishOrderCreated(ctx context.Context, event service.OrderCreatedEvent) error {
	return p.publish(ctx, event.OrderID.String(), event)
}

func (p *OrderEventProducer) PublishOrderPaid(ctx context.Context, event service.OrderPaidEvent) error {
	return p.publish(ctx, event.OrderID.String(), event)
}

func (p *OrderEventProducer) PublishOrderStatusChanged(ctx context.Context, event service.OrderStatusChangedEvent) error {
	return p.publish(ctx, event.OrderID.String(), event)
}

func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}
