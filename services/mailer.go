package services

import (
	"fmt"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/Devprashant05/Paanshala-sub000/models"
)

// EmailSender delivers a message with optional file attachments.
// Callers treat it as fire-and-forget; errors are logged, not
// propagated.
type EmailSender interface {
	Send(to, subject, htmlBody string, attachments []string) error
}

// SMTPSender sends mail through an SMTP relay via gomail.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (s *SMTPSender) Send(to, subject, htmlBody string, attachments []string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	for _, path := range attachments {
		m.Attach(path)
	}

	d := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// OrderConfirmationBody renders the confirmation mail for a placed
// order.
func OrderConfirmationBody(order *models.Order) string {
	var b strings.Builder
	b.WriteString("<h2>Thank you for your order!</h2>")
	fmt.Fprintf(&b, "<p>Your order <strong>%s</strong> has been placed successfully.</p>", order.OrderNumber)
	b.WriteString("<table border=\"1\" cellpadding=\"6\" cellspacing=\"0\"><tr><th>Item</th><th>Qty</th><th>Price</th></tr>")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>%.2f</td></tr>", item.Name, item.Quantity, item.TotalPrice)
	}
	b.WriteString("</table>")
	fmt.Fprintf(&b, "<p>Subtotal: %.2f<br>Discount: %.2f<br><strong>Total: %.2f</strong></p>", order.Subtotal, order.Discount, order.Total)
	fmt.Fprintf(&b, "<p>We will ship your order to %s, %s.</p>", order.ShippingAddress.City, order.ShippingAddress.State)
	return b.String()
}
