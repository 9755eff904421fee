package notify

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/woodline/backend/internal/domain"
)

// MailSender is what the dispatch queue needs from a mail transport.
type MailSender interface {
	SendOrderConfirmation(order *domain.Order, email, fullName string) error
}

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *Mailer) SendOrderConfirmation(order *domain.Order, email, fullName string) error {
	if fullName == "" {
		fullName = "customer"
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Order Confirmation - "+order.Number)
	msg.SetBody("text/plain", fmt.Sprintf(
		"Thank you for your order %s. Order number: %s. Total: %s",
		fullName, order.Number, order.TotalAmount.StringFixed(2)))
	return m.dialer.DialAndSend(msg)
}
