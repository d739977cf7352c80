package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"farm-fresh/models"
)

const (
	ConfirmationTitle   = "Thank you for your order!"
	ConfirmationMessage = "Your fresh produce will be delivered within 24 hours"
)

// OrderSubmitter hands a finished order to whatever fulfils it.
type OrderSubmitter interface {
	Submit(ctx context.Context, order models.Order) (models.Order, error)
}

type ConfirmationSender interface {
	SendOrderConfirmation(order models.Order) error
}

// SimulatedOrderSubmitter accepts every order. It numbers the order, keeps
// it in memory and, when a sender is configured, emails a confirmation.
type SimulatedOrderSubmitter struct {
	mu     sync.RWMutex
	orders map[string]models.Order
	sender ConfirmationSender
	logger *zap.Logger
}

func NewSimulatedOrderSubmitter(sender ConfirmationSender, logger *zap.Logger) *SimulatedOrderSubmitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulatedOrderSubmitter{
		orders: make(map[string]models.Order),
		sender: sender,
		logger: logger,
	}
}

func (s *SimulatedOrderSubmitter) Submit(ctx context.Context, order models.Order) (models.Order, error) {
	if err := ctx.Err(); err != nil {
		return models.Order{}, err
	}

	order.OrderNumber = newOrderNumber()
	order.Title = ConfirmationTitle
	order.Message = ConfirmationMessage

	s.mu.Lock()
	s.orders[order.OrderNumber] = order
	s.mu.Unlock()

	s.logger.Info("order placed",
		zap.String("order_number", order.OrderNumber),
		zap.String("session_id", order.SessionID),
		zap.Int("total_items", order.TotalItems),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)),
	)

	if s.sender != nil && order.Customer.Email != "" {
		// Delivery problems never fail a simulated order.
		if err := s.sender.SendOrderConfirmation(order); err != nil {
			s.logger.Warn("order confirmation email failed",
				zap.String("order_number", order.OrderNumber),
				zap.Error(err),
			)
		}
	}
	return order, nil
}

func (s *SimulatedOrderSubmitter) Order(number string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[number]
	return o, ok
}

func (s *SimulatedOrderSubmitter) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

func newOrderNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("ORD-%s", id[:10])
}
