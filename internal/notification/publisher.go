// Package notification carries payment completions to the outside world.
// The publisher side is called best-effort from the payment use case; the
// handler side runs in the notifier binary and turns records into emails.
package notification

import (
	"context"

	"github.com/example/ec-commerce/internal/usecase"
)

// TopicPaymentCompleted is the Kafka topic payment records are published to.
const TopicPaymentCompleted = "payment.completed"

// publisher is the transport the Kafka producer satisfies.
type publisher interface {
	Publish(ctx context.Context, key string, record any) error
}

// KafkaNotifier implements usecase.Notifier on top of a Kafka producer.
type KafkaNotifier struct {
	producer publisher
}

func NewKafkaNotifier(producer publisher) *KafkaNotifier {
	return &KafkaNotifier{producer: producer}
}

func (n *KafkaNotifier) PaymentCompleted(ctx context.Context, event usecase.PaymentCompleted) error {
	return n.producer.Publish(ctx, event.OrderID, event)
}
