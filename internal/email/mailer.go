package email

import "context"

// Message is one outbound transactional email.
type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Receipt is the provider's acknowledgement of a dispatched message.
type Receipt struct {
	ID string `json:"id"`
}

// Mailer sends a single email and returns the provider receipt. Allows for
// different implementations (Resend, plain SMTP, fakes in tests).
type Mailer interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}
