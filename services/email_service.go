package services

import (
	"burnshop_server/lib"
	"burnshop_server/structs"
	"burnshop_server/structs/tables"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	client     *resend.Client
	clientOnce = sync.Once{}
)

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	es := &EmailService{
		logger: logger,
		cfg:    cfg,
	}
	if es.Enabled() {
		es.client = getEmailClient(cfg.Email.ApiKey)
	}
	return es
}

func getEmailClient(apiKey string) *resend.Client {
	clientOnce.Do(func() {
		client = resend.NewClient(apiKey)
	})
	return client
}

// Enabled reports whether an API key is configured. Without one every send is a no-op.
func (es *EmailService) Enabled() bool {
	return es.cfg.Email.ApiKey != ""
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	if !es.Enabled() {
		es.logger.Debug("Email disabled, skipping send", gecho.Field("subject", subject))
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

var statusHeadlines = map[tables.OrderStatus]string{
	tables.OrderStatusProcessing: "We are preparing your order",
	tables.OrderStatusShipped:    "Your order is on its way",
	tables.OrderStatusDelivered:  "Your order has been delivered",
	tables.OrderStatusCancelled:  "Your order has been cancelled",
	tables.OrderStatusRefunded:   "Your order has been refunded",
}

// SendOrderStatusEmail tells a customer their order moved to a new status
func (es *EmailService) SendOrderStatusEmail(email, username string, order *tables.Order) error {
	reference := lib.OrderReference(order.ID)

	var items strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&items, "<li>%dx %s - €%s</li>",
			item.Quantity, html.EscapeString(item.ProductName), item.LineTotal().StringFixed(2))
	}

	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #d9480f; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				.order-details { background-color: white; padding: 15px; margin: 15px 0; border-radius: 5px; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
				ul { list-style-type: none; padding: 0; }
				li { padding: 5px 0; border-bottom: 1px solid #eee; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>%s</h1>
				</div>
				<div class="content">
					<p>Hi %s,</p>
					<p>The status of order <strong>%s</strong> is now <strong>%s</strong>.</p>
					<div class="order-details">
						<ul>%s</ul>
						<p><strong>Total: €%s</strong></p>
					</div>
				</div>
				<div class="footer">
					<p>%s</p>
				</div>
			</div>
		</body>
		</html>
	`, statusHeadlines[order.Status], html.EscapeString(username), reference, order.Status,
		items.String(), order.TotalAmount.StringFixed(2), es.cfg.Server.AppName)

	subject := fmt.Sprintf("Order %s: %s", reference, order.Status)
	return es.SendEmail([]string{email}, subject, body)
}
