// internal/services/payment_service.go
package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/javajoker/perfume-store/internal/config"
)

type PaymentService struct {
	config *config.Config
	orders *OrderService

	// paymentintent.New unless replaced in tests
	newIntent func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type PaymentIntentResponse struct {
	OrderID      uint   `json:"order_id"`
	ClientSecret string `json:"client_secret"`
	PaymentID    string `json:"payment_id"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

func NewPaymentService(config *config.Config, orders *OrderService) *PaymentService {
	// Initialize Stripe
	stripe.Key = config.Payment.StripeSecretKey

	return &PaymentService{
		config:    config,
		orders:    orders,
		newIntent: paymentintent.New,
	}
}

func (s *PaymentService) Enabled() bool {
	return s.config.Payment.Enabled()
}

// CreateOrderPaymentIntent opens a Stripe PaymentIntent for the total of one
// of the caller's open orders and records its id on the order.
func (s *PaymentService) CreateOrderPaymentIntent(ctx context.Context, userID, orderID uint) (*PaymentIntentResponse, error) {
	if !s.Enabled() {
		return nil, ErrPaymentsDisabled
	}

	order, err := s.orders.GetUserOrder(userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Completed {
		return nil, ErrOrderAlreadyCompleted
	}

	// Convert amount to minor units for Stripe
	amount := order.Price().Round(2).Shift(2).IntPart()
	currency := s.config.Payment.Currency

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	params.AddMetadata("order_id", strconv.FormatUint(uint64(order.ID), 10))
	params.AddMetadata("user_id", strconv.FormatUint(uint64(userID), 10))
	params.AddMetadata("email", order.Email)

	pi, err := s.newIntent(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	if err := s.orders.SetPaymentReference(order.ID, pi.ID); err != nil {
		return nil, fmt.Errorf("failed to store payment reference: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id":   order.ID,
		"payment_id": pi.ID,
		"amount":     amount,
	}).Info("Payment intent created")

	return &PaymentIntentResponse{
		OrderID:      order.ID,
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
		Amount:       amount,
		Currency:     currency,
	}, nil
}
