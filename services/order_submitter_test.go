package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farm-fresh/models"
)

type recordingSender struct {
	sent []models.Order
	err  error
}

func (s *recordingSender) SendOrderConfirmation(order models.Order) error {
	s.sent = append(s.sent, order)
	return s.err
}

func TestSimulatedOrderSubmitter_NumbersAndStoresOrders(t *testing.T) {
	sub := NewSimulatedOrderSubmitter(nil, nil)

	first, err := sub.Submit(context.Background(), models.Order{SessionID: "s1", TotalAmount: decimal.NewFromInt(100)})
	require.NoError(t, err)
	second, err := sub.Submit(context.Background(), models.Order{SessionID: "s2"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first.OrderNumber, "ORD-"))
	assert.NotEqual(t, first.OrderNumber, second.OrderNumber)
	assert.Equal(t, ConfirmationTitle, first.Title)
	assert.Equal(t, ConfirmationMessage, first.Message)
	assert.Equal(t, 2, sub.Count())

	stored, ok := sub.Order(first.OrderNumber)
	require.True(t, ok)
	assert.Equal(t, "s1", stored.SessionID)
}

func TestSimulatedOrderSubmitter_EmailFailureDoesNotFailOrder(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	sub := NewSimulatedOrderSubmitter(sender, nil)

	order, err := sub.Submit(context.Background(), models.Order{
		Customer: models.CheckoutForm{Name: "Ravi", Email: "ravi@example.com", Address: "Pune"},
	})

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, order.OrderNumber, sender.sent[0].OrderNumber)
}

func TestSimulatedOrderSubmitter_CancelledContext(t *testing.T) {
	sub := NewSimulatedOrderSubmitter(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sub.Submit(ctx, models.Order{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, sub.Count())
}
