package email

import (
	"fmt"
	"log"
	"net/smtp"
)

// Service sends transactional mail via SMTP. With no host configured it
// degrades to logging the message, which is what local development and the
// test environment use.
type Service struct {
	host string
	port string
	from string
}

func NewService(host, port, from string) *Service {
	return &Service{
		host: host,
		port: port,
		from: from,
	}
}

// SendPaymentConfirmation mails a receipt for a completed payment.
func (s *Service) SendPaymentConfirmation(to, orderID string, amount, remainingBalance int) error {
	shortID := orderID
	if len(orderID) > 8 {
		shortID = orderID[:8]
	}
	subject := fmt.Sprintf("Payment received for order %s", shortID)
	body := BuildPaymentConfirmationBody(orderID, amount, remainingBalance)
	return s.send(to, subject, body)
}

func (s *Service) send(to, subject, body string) error {
	if s.host == "" {
		log.Printf("[Email] (log transport) to=%s subject=%q\n%s", to, subject, body)
		return nil
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}
