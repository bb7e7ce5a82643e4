package sendgrid

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ReceiptMailer emails the purchaser a summary of a finalized purchase.
type ReceiptMailer interface {
	SendReceipt(ctx context.Context, event *models.PurchaseCompletedEvent) error
	GetSendGridClient() *sendgrid.Client
}

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey string, fromEmail string, fromName string) ReceiptMailer {
	return &emailService{client: sendgrid.NewSendClient(apiKey), fromEmail: fromEmail, fromName: fromName}
}

func (e *emailService) SendReceipt(ctx context.Context, event *models.PurchaseCompletedEvent) error {

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(e.fromName, e.fromEmail))

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", event.Purchaser))
	personalization.Subject = fmt.Sprintf("Your receipt %s", event.TicketCode)
	message.AddPersonalizations(personalization)

	text, htmlBody := renderReceipt(event)
	message.AddContent(mail.NewContent("text/plain", text))
	message.AddContent(mail.NewContent("text/html", htmlBody))

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send receipt %s: %w", event.TicketCode, err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send receipt %s, status code: %d", event.TicketCode, response.StatusCode)
	}

	return nil
}

func (e *emailService) GetSendGridClient() *sendgrid.Client {
	return e.client
}

func renderReceipt(event *models.PurchaseCompletedEvent) (string, string) {
	var text, body strings.Builder

	fmt.Fprintf(&text, "Ticket %s\nPurchased at %s\n\n", event.TicketCode, event.OccurredAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&body, "<h1>Ticket %s</h1><p>Purchased at %s</p><ul>", html.EscapeString(event.TicketCode), event.OccurredAt.Format("2006-01-02 15:04:05 MST"))

	for _, item := range event.Items {
		fmt.Fprintf(&text, "%d x %s @ %s\n", item.Quantity, item.Title, item.UnitPrice.StringFixed(2))
		fmt.Fprintf(&body, "<li>%d x %s @ %s</li>", item.Quantity, html.EscapeString(item.Title), item.UnitPrice.StringFixed(2))
	}

	fmt.Fprintf(&text, "\nTotal: %s\n", event.Amount.StringFixed(2))
	fmt.Fprintf(&body, "</ul><p><strong>Total: %s</strong></p>", event.Amount.StringFixed(2))

	return text.String(), body.String()
}

// NopMailer is used when no API key is configured.
type NopMailer struct{}

func (NopMailer) SendReceipt(context.Context, *models.PurchaseCompletedEvent) error { return nil }

func (NopMailer) GetSendGridClient() *sendgrid.Client { return nil }

func NewReceiptMailer(apiKey, fromEmail, fromName string) ReceiptMailer {
	if apiKey == "" {
		return NopMailer{}
	}

	return NewEmailService(apiKey, fromEmail, fromName)
}
