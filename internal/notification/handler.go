package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/ec-commerce/internal/email"
	"github.com/example/ec-commerce/internal/repository"
	"github.com/example/ec-commerce/internal/usecase"
)

// Handler runs in the notifier binary. It consumes payment records and sends
// the confirmation email. Failures are logged and never propagated back; by
// the time a record is here the payment has already succeeded.
type Handler struct {
	emailService *email.Service
	users        repository.UserRepository
}

func NewHandler(emailService *email.Service, users repository.UserRepository) *Handler {
	return &Handler{
		emailService: emailService,
		users:        users,
	}
}

// HandleMessage processes one record from the payment topic.
func (h *Handler) HandleMessage(ctx context.Context, key, value []byte) error {
	var event usecase.PaymentCompleted
	if err := json.Unmarshal(value, &event); err != nil {
		log.Printf("[Notifier] failed to unmarshal payment record: %v", err)
		return err
	}

	u, err := h.users.FindByID(ctx, event.UserID)
	if err != nil {
		log.Printf("[Notifier] user %s not found for order %s: %v", event.UserID, event.OrderID, err)
		return nil
	}

	if err := h.emailService.SendPaymentConfirmation(u.Email, event.OrderID, event.PaymentAmount, event.RemainingBalance); err != nil {
		log.Printf("[Notifier] confirmation email failed for order %s: %v", event.OrderID, err)
		return nil
	}

	log.Printf("[Notifier] confirmation sent for order %s to %s", event.OrderID, u.Email)
	return nil
}
