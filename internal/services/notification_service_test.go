// internal/services/notification_service_test.go
package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/perfume-store/internal/models"
	"github.com/javajoker/perfume-store/internal/testutil"
)

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

func sampleOrder() *models.Order {
	brand := models.Brand{Name: "Chanel", Slug: "chanel"}
	return &models.Order{
		ID:      17,
		Email:   "buyer@example.com",
		Phone:   "+994501234567",
		Address: "28 Nizami street, Baku",
		Items: []models.OrderItem{
			{ProductID: 1, Size: 30, Quantity: 2, Product: &models.Product{
				Name: "No 5", Slug: "no-5", PricePerGram: decimal.RequireFromString("3.00"), Brand: brand,
			}},
			{ProductID: 2, Size: 15, Quantity: 1, Product: &models.Product{
				Name: "Bleu", Slug: "bleu", PricePerGram: decimal.RequireFromString("2.50"), Brand: brand,
			}},
		},
	}
}

func TestRenderOrderEmail(t *testing.T) {
	service := NewNotificationServiceWithMailer(testutil.Config(t), &fakeMailer{})

	subject, body, err := service.RenderOrderEmail(sampleOrder())
	require.NoError(t, err)

	assert.Equal(t, "Order #17", subject)
	assert.Equal(t, "Chanel No 5\nChanel Bleu\nPrice: 217.50\n+994501234567\n28 Nizami street, Baku", body)
}

func TestOrderCreatedSendsEmail(t *testing.T) {
	mailer := &fakeMailer{}
	service := NewNotificationServiceWithMailer(testutil.Config(t), mailer)

	service.OrderCreated(sampleOrder())

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "buyer@example.com", mailer.sent[0].to)
	assert.Equal(t, "Order #17", mailer.sent[0].subject)
}

func TestOrderCreatedSwallowsMailerErrors(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	service := NewNotificationServiceWithMailer(testutil.Config(t), mailer)

	assert.NotPanics(t, func() { service.OrderCreated(sampleOrder()) })
	assert.Empty(t, mailer.sent)
}
