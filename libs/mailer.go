package libs

import (
	"fmt"
	"html/template"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"farm-fresh/models"
	"farm-fresh/utils"
)

type SMTPSettings struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func (s SMTPSettings) Configured() bool {
	return s.Host != "" && s.User != "" && s.Pass != ""
}

type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

func NewMailer(s SMTPSettings, logger *zap.Logger) (*Mailer, error) {
	if !s.Configured() {
		return nil, fmt.Errorf("SMTP configuration missing")
	}
	port := s.Port
	if port == 0 {
		port = 587
	}
	from := s.From
	if from == "" {
		from = s.User
	}
	return &Mailer{
		dialer: gomail.NewDialer(s.Host, port, s.User, s.Pass),
		from:   from,
		logger: logger,
	}, nil
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .logo { font-size: 24px; font-weight: bold; color: #16a34a; text-align: center; }
        .order-box { background-color: #f0fdf4; padding: 20px; margin: 20px 0; border-radius: 8px; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="logo">Farm Fresh</div>
        <h2>Thank you for your order, {{.Customer}}!</h2>
        <div class="order-box">
            <p><strong>Order Number:</strong> {{.OrderNumber}}</p>
            <ul>
            {{range .Lines}}<li>{{.}}</li>
            {{end}}</ul>
            <p><strong>Total Amount:</strong> {{.Total}}</p>
            <p><strong>Deliver to:</strong> {{.Address}}</p>
        </div>
        <p>Your fresh produce will be delivered within 24 hours.</p>
        <div class="footer">
            <p>This is an automated email. Please do not reply.</p>
        </div>
    </div>
</body>
</html>`))

type confirmationData struct {
	Customer    string
	OrderNumber string
	Lines       []string
	Total       string
	Address     string
}

// SendOrderConfirmation emails the customer a summary of a confirmed order.
func (m *Mailer) SendOrderConfirmation(order models.Order) error {
	body, err := renderConfirmation(order)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", order.Customer.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Order Confirmation #%s - Farm Fresh", order.OrderNumber))
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Info("order confirmation sent", zap.String("order_number", order.OrderNumber))
	return nil
}

func renderConfirmation(order models.Order) (string, error) {
	data := confirmationData{
		Customer:    order.Customer.Name,
		OrderNumber: order.OrderNumber,
		Total:       utils.FormatRupees(order.TotalAmount),
		Address:     order.Customer.Address,
	}
	for _, line := range order.Items {
		data.Lines = append(data.Lines, fmt.Sprintf("%d × %s @ %s", line.Quantity, line.Name, utils.FormatRupees(line.Price)))
	}

	var body strings.Builder
	if err := confirmationTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("render confirmation email: %w", err)
	}
	return body.String(), nil
}
