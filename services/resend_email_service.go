package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendClient handles email sending via Resend API
type ResendClient struct {
	apiKey   string
	from     string
	endpoint string
	http     *http.Client
}

// NewResendClient reads RESEND_API_KEY and RESEND_FROM_EMAIL.
func NewResendClient() (*ResendClient, error) {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY environment variable not set")
	}

	from := os.Getenv("RESEND_FROM_EMAIL")
	if from == "" {
		from = "Herbsera <orders@herbsera.com>"
	}

	return NewResendClientWithEndpoint(apiKey, from, resendEndpoint), nil
}

func NewResendClientWithEndpoint(apiKey, from, endpoint string) *ResendClient {
	return &ResendClient{
		apiKey:   apiKey,
		from:     from,
		endpoint: endpoint,
		http: &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type emailAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type emailPayload struct {
	From        string            `json:"from"`
	To          []string          `json:"to"`
	Subject     string            `json:"subject"`
	HTML        string            `json:"html"`
	Attachments []emailAttachment `json:"attachments,omitempty"`
}

// SendOrderInvoice emails the invoice PDF with an HTML summary.
func (r *ResendClient) SendOrderInvoice(ctx context.Context, o *models.Order, customer *models.User, pdf []byte) error {
	if customer == nil || customer.Email == "" {
		return fmt.Errorf("order %s has no customer email", o.OrderNumber)
	}

	payload := emailPayload{
		From:    r.from,
		To:      []string{customer.Email},
		Subject: fmt.Sprintf("Your %s order %s", config.Store.Name, o.OrderNumber),
		HTML:    buildInvoiceHTML(o, customer),
		Attachments: []emailAttachment{{
			Filename: InvoiceFilename(o),
			Content:  base64.StdEncoding.EncodeToString(pdf),
		}},
	}
	return r.send(ctx, payload)
}

// SendOrderStatusUpdate tells the customer their order moved.
func (r *ResendClient) SendOrderStatusUpdate(ctx context.Context, ev models.OrderEvent) error {
	if ev.CustomerEmail == "" {
		return fmt.Errorf("order %s has no customer email", ev.OrderNumber)
	}

	body := fmt.Sprintf(`<p>Hi %s,</p><p>Your order <strong>%s</strong> is now <strong>%s</strong>.</p>`,
		html.EscapeString(ev.CustomerName), html.EscapeString(ev.OrderNumber), html.EscapeString(string(ev.Status)))
	if ev.TrackingNumber != "" {
		body += fmt.Sprintf(`<p>Tracking number: %s</p>`, html.EscapeString(ev.TrackingNumber))
	}

	return r.send(ctx, emailPayload{
		From:    r.from,
		To:      []string{ev.CustomerEmail},
		Subject: fmt.Sprintf("Order %s: %s", ev.OrderNumber, ev.Status),
		HTML:    body,
	})
}

func (r *ResendClient) send(ctx context.Context, payload emailPayload) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("resend returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	zap.L().Info("[resend] email sent", zap.Strings("to", payload.To), zap.String("subject", payload.Subject))
	return nil
}

func buildInvoiceHTML(o *models.Order, customer *models.User) string {
	var rows strings.Builder
	for _, item := range o.Items {
		fmt.Fprintf(&rows, `<tr><td style="padding:6px 0">%s</td><td style="text-align:right">%d</td><td style="text-align:right">%.2f</td></tr>`,
			html.EscapeString(item.Name), item.Quantity, item.Price*float64(item.Quantity))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<body style="font-family:-apple-system,'Segoe UI',sans-serif;background:#f6f8f4;padding:16px;color:#263428">
  <h2 style="color:#4a7c59">Thank you for your order, %s!</h2>
  <p>Order <strong>%s</strong> placed on %s.</p>
  <table width="100%%" cellpadding="0" cellspacing="0">%s</table>
  <p>Subtotal: %.2f<br>Tax: %.2f<br>Shipping: %.2f<br><strong>Total: %.2f %s</strong></p>
  <p>Your invoice is attached.</p>
</body>
</html>`,
		html.EscapeString(customer.DisplayName),
		html.EscapeString(o.OrderNumber),
		o.CreatedAt.Format("Jan 02, 2006"),
		rows.String(),
		o.Pricing.Subtotal, o.Pricing.Tax, o.Pricing.ShippingCost, o.Pricing.Total,
		config.Store.Currency,
	)
}
