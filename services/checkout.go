package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"farm-fresh/models"
	"farm-fresh/utils"
)

const (
	DefaultProcessingDelay   = 2 * time.Second
	DefaultConfirmationDelay = 3 * time.Second
)

type CheckoutOptions struct {
	Clock             Clock
	ProcessingDelay   time.Duration
	ConfirmationDelay time.Duration
	Logger            *zap.Logger
	// OnChange is called after every status transition, outside the lock.
	OnChange func(models.CheckoutEvent)
}

// Checkout runs one session's order flow: idle, submitting, confirmed, and
// back to idle. Only one submission can be in flight at a time.
type Checkout struct {
	mu        sync.Mutex
	sessionID string
	cart      *Cart
	submitter OrderSubmitter
	clock     Clock
	logger    *zap.Logger
	onChange  func(models.CheckoutEvent)

	processingDelay   time.Duration
	confirmationDelay time.Duration

	status    models.CheckoutStatus
	form      models.CheckoutForm
	order     *models.Order
	lastOrder *models.Order
	lastErr   error
}

func NewCheckout(sessionID string, cart *Cart, submitter OrderSubmitter, opts CheckoutOptions) *Checkout {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.ProcessingDelay <= 0 {
		opts.ProcessingDelay = DefaultProcessingDelay
	}
	if opts.ConfirmationDelay <= 0 {
		opts.ConfirmationDelay = DefaultConfirmationDelay
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Checkout{
		sessionID: sessionID,
		cart:      cart,
		submitter: submitter,
		clock:     opts.Clock,
		logger:    opts.Logger,
		onChange:  opts.OnChange,
		status:    models.CheckoutIdle,

		processingDelay:   opts.ProcessingDelay,
		confirmationDelay: opts.ConfirmationDelay,
	}
}

func (c *Checkout) Status() models.CheckoutStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// SaveForm keeps a draft of the customer details. The draft survives until
// an order completes.
func (c *Checkout) SaveForm(form models.CheckoutForm) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != models.CheckoutIdle {
		return models.ErrCheckoutInFlight
	}
	c.form = form.Trimmed()
	return nil
}

// Submit starts the order flow for the current cart contents. The returned
// snapshot is in the submitting state.
func (c *Checkout) Submit(ctx context.Context, form models.CheckoutForm) (models.CheckoutSnapshot, error) {
	c.mu.Lock()
	if c.status != models.CheckoutIdle {
		c.mu.Unlock()
		return models.CheckoutSnapshot{}, models.ErrCheckoutInFlight
	}

	c.form = form.Trimmed()
	if !c.form.Complete() {
		c.mu.Unlock()
		return models.CheckoutSnapshot{}, models.ErrIncompleteForm
	}

	lines := c.cart.Lines()
	if len(lines) == 0 {
		c.mu.Unlock()
		return models.CheckoutSnapshot{}, models.ErrEmptyCart
	}

	draft := models.Order{
		SessionID:   c.sessionID,
		Customer:    c.form,
		Items:       lines,
		TotalItems:  TotalItems(lines),
		TotalAmount: TotalPrice(lines),
		PlacedAt:    c.clock.Now(),
	}
	c.status = models.CheckoutSubmitting
	c.lastErr = nil

	// The request context ends with the response; the submission outlives it.
	submitCtx := context.WithoutCancel(ctx)
	c.clock.AfterFunc(c.processingDelay, func() { c.process(submitCtx, draft) })
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Info("checkout submitted",
		zap.String("session_id", c.sessionID),
		zap.Int("total_items", draft.TotalItems),
	)
	c.notify(models.CheckoutEvent{Status: models.CheckoutSubmitting})
	return snap, nil
}

func (c *Checkout) process(ctx context.Context, draft models.Order) {
	order, err := c.submitter.Submit(ctx, draft)

	c.mu.Lock()
	if err != nil {
		c.status = models.CheckoutIdle
		c.lastErr = err
		c.mu.Unlock()

		c.logger.Error("order submission failed", zap.String("session_id", c.sessionID), zap.Error(err))
		c.notify(models.CheckoutEvent{Status: models.CheckoutIdle, Error: err.Error()})
		return
	}

	c.status = models.CheckoutConfirmed
	c.order = &order
	c.clock.AfterFunc(c.confirmationDelay, c.finish)
	c.mu.Unlock()

	c.notify(models.CheckoutEvent{Status: models.CheckoutConfirmed, Order: &order})
}

// finish clears the cart and resets the form. It cannot be cancelled once
// the order is confirmed.
func (c *Checkout) finish() {
	c.mu.Lock()
	order := c.order
	c.lastOrder = order
	c.order = nil
	c.form = models.CheckoutForm{}
	c.status = models.CheckoutIdle
	// Cleared under the checkout lock so no new submission sees stale lines.
	c.cart.Clear()
	c.mu.Unlock()

	if order != nil {
		c.logger.Info("checkout completed",
			zap.String("session_id", c.sessionID),
			zap.String("order_number", order.OrderNumber),
		)
	}
	c.notify(models.CheckoutEvent{Status: models.CheckoutIdle, Order: order})
}

func (c *Checkout) Snapshot() models.CheckoutSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Checkout) snapshotLocked() models.CheckoutSnapshot {
	lines := c.cart.Lines()
	total := TotalPrice(lines)

	snap := models.CheckoutSnapshot{
		Status:       c.status,
		Form:         c.form,
		CanSubmit:    c.status == models.CheckoutIdle && c.form.Complete() && len(lines) > 0,
		TotalAmount:  total.StringFixed(2),
		TotalDisplay: utils.FormatRupees(total),
		Order:        copyOrder(c.order),
		LastOrder:    copyOrder(c.lastOrder),
	}
	if c.lastErr != nil {
		snap.LastError = c.lastErr.Error()
	}
	return snap
}

func (c *Checkout) notify(e models.CheckoutEvent) {
	if c.onChange != nil {
		c.onChange(e)
	}
}

func copyOrder(o *models.Order) *models.Order {
	if o == nil {
		return nil
	}
	cp := *o
	cp.Items = append([]models.CartLine(nil), o.Items...)
	return &cp
}
