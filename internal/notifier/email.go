package notifier

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"store-service/internal/models"

	gopkgmail "gopkg.in/gomail.v2"
)

//go:embed templates/*.html templates/*.txt
var templatesFS embed.FS

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// EmailNotifier рендерит письма из встроенных шаблонов и шлёт через SMTP.
type EmailNotifier struct {
	cfg  SMTPConfig
	tmpl *template.Template
}

func NewEmailNotifier(cfg SMTPConfig) (*EmailNotifier, error) {
	tmpl, err := template.New("emails").Funcs(template.FuncMap{
		"money": formatMoney,
	}).ParseFS(templatesFS, "templates/*.html", "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &EmailNotifier{cfg: cfg, tmpl: tmpl}, nil
}

func formatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

type orderData struct {
	OrderID       string
	CustomerName  string
	Items         []itemData
	ShippingCents int64
	TotalCents    int64
	CreatedAt     string
}

type itemData struct {
	Name          string
	Quantity      uint32
	Size          string
	Color         string
	UnitCents     int64
	SubtotalCents int64
}

type paymentData struct {
	OrderID      string
	CustomerName string
	AmountCents  int64
	Currency     string
	ProviderID   string
	PaidAt       string
}

func buildOrderData(order *models.Order) orderData {
	d := orderData{
		OrderID:      order.ID.String(),
		CustomerName: order.CustomerName,
		TotalCents:   order.TotalPriceCents,
		CreatedAt:    order.CreatedAt.Format("02.01.2006 15:04"),
	}
	var itemsTotal int64
	for _, it := range order.Items {
		row := itemData{
			Quantity:      it.Quantity,
			UnitCents:     it.UnitPriceCents,
			SubtotalCents: it.UnitPriceCents * int64(it.Quantity),
		}
		if it.Product != nil {
			row.Name = it.Product.Name
		}
		if it.Size != nil {
			row.Size = *it.Size
		}
		if it.Color != nil {
			row.Color = *it.Color
		}
		itemsTotal += row.SubtotalCents
		d.Items = append(d.Items, row)
	}
	if order.TotalPriceCents > itemsTotal {
		d.ShippingCents = order.TotalPriceCents - itemsTotal
	}
	return d
}

func (n *EmailNotifier) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	subject := fmt.Sprintf("Order confirmation %s", shortID(order.ID.String()))
	return n.send(ctx, order.CustomerEmail, subject, "order_confirmation", buildOrderData(order))
}

func (n *EmailNotifier) SendPaymentConfirmation(ctx context.Context, order *models.Order, payment *models.Payment) error {
	paidAt := payment.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}
	data := paymentData{
		OrderID:      order.ID.String(),
		CustomerName: order.CustomerName,
		AmountCents:  payment.AmountCents,
		Currency:     payment.CurrencyCode,
		ProviderID:   payment.ProviderOrderID,
		PaidAt:       paidAt.Format("02.01.2006 15:04"),
	}
	subject := fmt.Sprintf("Payment received for order %s", shortID(order.ID.String()))
	return n.send(ctx, order.CustomerEmail, subject, "payment_confirmation", data)
}

func (n *EmailNotifier) SendShippingUpdate(ctx context.Context, order *models.Order) error {
	subject := fmt.Sprintf("Order %s has been shipped", shortID(order.ID.String()))
	return n.send(ctx, order.CustomerEmail, subject, "shipping_update", buildOrderData(order))
}

func shortID(id string) string {
	if len(id) > 8 {
		return "#" + id[:8]
	}
	return "#" + id
}

func (n *EmailNotifier) send(ctx context.Context, to, subject, tmplName string, data any) error {
	htmlBody, err := n.render(tmplName+".html", data)
	if err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	plainBody, err := n.render(tmplName+".txt", data)
	if err != nil {
		return fmt.Errorf("render plain: %w", err)
	}

	m := gopkgmail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	d := gopkgmail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.User, n.cfg.Password)
	d.SSL = n.cfg.Port == 465

	done := make(chan error, 1)
	go func() { done <- d.DialAndSend(m) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *EmailNotifier) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := n.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
