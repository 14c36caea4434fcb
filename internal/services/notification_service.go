// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/javajoker/perfume-store/internal/config"
	"github.com/javajoker/perfume-store/internal/i18n"
	"github.com/javajoker/perfume-store/internal/models"
)

// Mailer delivers a plain-text email.
type Mailer interface {
	Send(to, subject, body string) error
}

type NotificationService struct {
	config *config.Config
	mailer Mailer
}

var orderEmailTemplate = template.Must(template.New("order_created").Parse(
	`{{range .Lines}}{{.}}
{{end}}{{.PriceLine}}
{{.Phone}}
{{.Address}}`))

type orderEmailData struct {
	Lines     []string
	PriceLine string
	Phone     string
	Address   string
}

// NewNotificationService picks an SMTP mailer when SMTP is configured and a
// logging one otherwise.
func NewNotificationService(config *config.Config) *NotificationService {
	var mailer Mailer = logMailer{}
	if config.Email.Enabled() {
		mailer = NewSMTPMailer(config.Email)
	}
	return NewNotificationServiceWithMailer(config, mailer)
}

func NewNotificationServiceWithMailer(config *config.Config, mailer Mailer) *NotificationService {
	return &NotificationService{
		config: config,
		mailer: mailer,
	}
}

// OrderCreated emails the order summary to the customer. Failures are
// logged; the order itself is already stored.
func (s *NotificationService) OrderCreated(order *models.Order) {
	subject, body, err := s.RenderOrderEmail(order)
	if err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("Failed to render order email")
		return
	}

	if err := s.mailer.Send(order.Email, subject, body); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("Failed to send order email")
		return
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"to":       order.Email,
	}).Info("Order email sent")
}

// RenderOrderEmail builds the subject "Order #<id>" and a body listing each
// item's display name, the total price, the phone and the address.
func (s *NotificationService) RenderOrderEmail(order *models.Order) (string, string, error) {
	lang := s.config.I18n.DefaultLocale

	data := orderEmailData{
		Lines:     make([]string, 0, len(order.Items)),
		PriceLine: i18n.T(lang, i18n.KeyOrderEmailPrice, order.Price().StringFixed(2)),
		Phone:     order.Phone,
		Address:   order.Address,
	}
	for _, item := range order.Items {
		if item.Product == nil {
			continue
		}
		data.Lines = append(data.Lines, item.Product.DisplayName())
	}

	var buf bytes.Buffer
	if err := orderEmailTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to render order email: %w", err)
	}

	subject := i18n.T(lang, i18n.KeyOrderEmailSubject, order.ID)
	return subject, strings.TrimRight(buf.String(), "\n"), nil
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	name   string
}

func NewSMTPMailer(cfg config.EmailConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.FromEmail,
		name:   cfg.FromName,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.name)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}

// Email not configured, just log
type logMailer struct{}

func (logMailer) Send(to, subject, _ string) error {
	logrus.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
	}).Info("Email would be sent")
	return nil
}
