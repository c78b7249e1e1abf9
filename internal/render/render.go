package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

var pricePrinter = message.NewPrinter(language.English)

// Email is a rendered subject/body pair ready for dispatch.
type Email struct {
	Subject string
	HTML    string
}

const notProvided = "Not provided"

type orderData struct {
	ProductName string
	Price       string
	Name        string
	Email       string
	Phone       string
	Address     string
}

// Order renders the operator notification for a new order. Absent phone and
// address render as "Not provided".
func Order(name, email string, phone, address *string, productName string, productPrice int64) (Email, error) {
	data := orderData{
		ProductName: productName,
		Price:       "₹" + pricePrinter.Sprintf("%d", productPrice),
		Name:        name,
		Email:       email,
		Phone:       orDefault(phone, notProvided),
		Address:     orDefault(address, notProvided),
	}

	html, err := execute("order.html", data)
	if err != nil {
		return Email{}, err
	}

	return Email{
		Subject: fmt.Sprintf("🛒 New Order: %s", productName),
		HTML:    html,
	}, nil
}

type contactData struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Contact renders the operator notification for a contact-form submission.
// The subject line defaults to "Website Contact" and the body's subject field
// to "General Inquiry" when the visitor left it blank.
func Contact(name, email string, subject *string, msg string) (Email, error) {
	data := contactData{
		Name:    name,
		Email:   email,
		Subject: orDefault(subject, "General Inquiry"),
		Message: msg,
	}

	html, err := execute("contact.html", data)
	if err != nil {
		return Email{}, err
	}

	return Email{
		Subject: fmt.Sprintf("📧 New Inquiry: %s", orDefault(subject, "Website Contact")),
		HTML:    html,
	}, nil
}

type replyData struct {
	Name     string
	Message  string
	OrderRef string
}

// Reply renders an admin-authored follow-up addressed to the customer. The
// subject falls back to a default that depends on whether the reply is tied
// to an order.
func Reply(name string, subject *string, msg string, orderID *string) (Email, error) {
	if name == "" {
		name = "there"
	}
	data := replyData{
		Name:     name,
		Message:  msg,
		OrderRef: orDefault(orderID, ""),
	}

	html, err := execute("reply.html", data)
	if err != nil {
		return Email{}, err
	}

	subjectLine := "Message from Aphonix Studios"
	if orderID != nil && *orderID != "" {
		subjectLine = "Update on your Aphonix Studios order"
	}
	if subject != nil && *subject != "" {
		subjectLine = *subject
	}

	return Email{
		Subject: subjectLine,
		HTML:    html,
	}, nil
}

func execute(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}
	return buf.String(), nil
}

func orDefault(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
