package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"farm-fresh/models"
)

// Session owns one shopper's cart, checkout flow and event stream.
type Session struct {
	ID        string
	CreatedAt time.Time
	Cart      *Cart
	Checkout  *Checkout
	Events    *Broker

	mu          sync.Mutex
	lastSeen    time.Time
	unsubscribe func()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	if now.After(s.lastSeen) {
		s.lastSeen = now
	}
	s.mu.Unlock()
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.Events.Close()
}

type SessionOptions struct {
	TTL               time.Duration
	Clock             Clock
	ProcessingDelay   time.Duration
	ConfirmationDelay time.Duration
	Logger            *zap.Logger
}

type SessionService struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	submitter OrderSubmitter
	opts      SessionOptions
	logger    *zap.Logger
}

func NewSessionService(submitter OrderSubmitter, opts SessionOptions) *SessionService {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &SessionService{
		sessions:  make(map[string]*Session),
		submitter: submitter,
		opts:      opts,
		logger:    opts.Logger,
	}
}

// Create starts a session with an empty cart and an idle checkout.
func (s *SessionService) Create() *Session {
	now := s.opts.Clock.Now()
	id := uuid.NewString()
	broker := NewBroker()
	cart := NewCart()

	sess := &Session{
		ID:        id,
		CreatedAt: now,
		Cart:      cart,
		Events:    broker,
		lastSeen:  now,
	}
	sess.Checkout = NewCheckout(id, cart, s.submitter, CheckoutOptions{
		Clock:             s.opts.Clock,
		ProcessingDelay:   s.opts.ProcessingDelay,
		ConfirmationDelay: s.opts.ConfirmationDelay,
		Logger:            s.logger,
		OnChange: func(e models.CheckoutEvent) {
			broker.Publish(models.Event{Name: models.EventCheckout, Data: e})
		},
	})
	sess.unsubscribe = cart.Subscribe(func(e models.CartEvent) {
		s.logger.Debug("cart event",
			zap.String("session_id", id),
			zap.String("type", string(e.Type)),
			zap.Int("product_id", e.Line.ID),
			zap.Int("quantity", e.Line.Quantity),
		)
		broker.Publish(models.Event{Name: string(e.Type), Data: e})
		if e.Type == models.CartItemAdded {
			broker.Publish(models.Event{Name: models.EventNotification, Data: AddedNotification(e.Line.Name)})
		}
	})

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	s.logger.Info("session created", zap.String("session_id", id))
	return sess
}

// Get looks a session up and marks it as active.
func (s *SessionService) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, models.ErrSessionNotFound
	}

	sess.touch(s.opts.Clock.Now())
	return sess, nil
}

func (s *SessionService) Delete(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		sess.close()
	}
}

func (s *SessionService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the TTL. Sessions with a
// checkout in flight are kept until it completes.
func (s *SessionService) Sweep(now time.Time) int {
	if s.opts.TTL <= 0 {
		return 0
	}

	var expired []*Session
	s.mu.Lock()
	for id, sess := range s.sessions {
		if now.Sub(sess.LastSeen()) <= s.opts.TTL {
			continue
		}
		if sess.Checkout.Status() != models.CheckoutIdle {
			continue
		}
		delete(s.sessions, id)
		expired = append(expired, sess)
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.close()
	}
	if len(expired) > 0 {
		s.logger.Info("sessions swept", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// Run sweeps on every tick of interval until ctx is done.
func (s *SessionService) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep(s.opts.Clock.Now())
		}
	}
}
