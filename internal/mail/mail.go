package mail

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Service sends transactional email through SendGrid. A Service built
// without an API key is a no-op, so local runs and tests never touch
// the network.
type Service struct {
	client *sendgrid.Client
	sender string
}

func New(apiKey, sender string) *Service {
	if apiKey == "" {
		return &Service{}
	}
	return &Service{client: sendgrid.NewSendClient(apiKey), sender: sender}
}

func (s *Service) Enabled() bool { return s.client != nil }

func (s *Service) send(toEmail, subject, body string) error {
	if s.client == nil {
		return nil
	}
	from := sgmail.NewEmail("Bakes", s.sender)
	to := sgmail.NewEmail("", toEmail)
	msg := sgmail.NewSingleEmail(from, subject, to, body, body)
	resp, err := s.client.Send(msg)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("send email: sendgrid status %d", resp.StatusCode)
	}
	return nil
}

// SendOrderConfirmation notifies a customer that their order was placed.
func (s *Service) SendOrderConfirmation(toEmail string, orderID int64, total float64, paymentMethod string) error {
	body := fmt.Sprintf(
		"Thank you for your order!\n\nOrder ID: %d\nTotal: %.2f\nPayment method: %s\n\nWe will let you know when it ships.",
		orderID, total, paymentMethod,
	)
	return s.send(toEmail, fmt.Sprintf("Order #%d confirmed", orderID), body)
}

// SendContactNotification forwards a contact-form message to the shop inbox.
func (s *Service) SendContactNotification(recipient, name, email, subject, message string) error {
	body := fmt.Sprintf("From: %s <%s>\n\n%s", name, email, message)
	if subject == "" {
		subject = "Contact form message"
	}
	return s.send(recipient, subject, body)
}
