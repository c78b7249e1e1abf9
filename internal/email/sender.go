package email

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// SMTPSender is the Mailer used when EMAIL_PROVIDER=smtp, for local
// development against a mailcatcher or a self-hosted relay.
type SMTPSender struct {
	Host     string
	Port     int
	User     string
	Password string
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) (Receipt, error) {

	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return Receipt{}, fmt.Errorf("smtp send error: %w", err)
	}

	// SMTP has no provider-side message id, so mint one locally to keep the
	// response envelope uniform across providers.
	return Receipt{ID: uuid.NewString()}, nil
}
