package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"storefront-service/config"
	"storefront-service/internal/cart"
	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Checkout steps, linear: shipping -> payment -> review -> submitted.
const (
	StepShippingInfo  = "shipping_info"
	StepPaymentMethod = "payment_method"
	StepReview        = "review"
	StepSubmitted     = "submitted"
)

// PaymentMethodWhatsApp is the only offered payment method: the order is
// handed off as a pre-filled message to a fixed WhatsApp contact.
const PaymentMethodWhatsApp = "whatsapp"

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrNoSession          = errors.New("no checkout in progress")
	ErrWrongStep          = errors.New("operation not valid at current step")
	ErrTermsNotAccepted   = errors.New("terms must be accepted")
	ErrUnsupportedPayment = errors.New("unsupported payment method")
	ErrOrderNotFound      = errors.New("order not found")
)

// Session is one in-progress checkout. Partially filled state is not
// preserved across restarts; only the submitted confirmation is retained.
type Session struct {
	SessionID     string              `json:"session_id"`
	Step          string              `json:"step"`
	Shipping      models.ShippingInfo `json:"shipping"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	StartedAt     time.Time           `json:"started_at"`
}

// Confirmations retains submitted orders so the handoff link can be
// re-fetched. The Redis client implements it.
type Confirmations interface {
	SaveOrderConfirmation(ctx context.Context, ref string, data []byte) error
	LoadOrderConfirmation(ctx context.Context, ref string) ([]byte, bool, error)
}

// Publisher publishes checkout lifecycle events. Best-effort only.
type Publisher interface {
	PublishCheckoutStarted(ctx context.Context, event *models.CheckoutStartedEvent) error
	PublishOrderSubmitted(ctx context.Context, event *models.OrderSubmittedEvent) error
}

// Service drives the checkout state machine over the cart service.
type Service struct {
	carts         *cart.Service
	confirmations Confirmations
	publisher     Publisher
	cfg           config.CheckoutConfig
	logger        *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewService creates a checkout service. confirmations and publisher may be
// nil, which disables handoff retries and event publishing respectively.
func NewService(carts *cart.Service, confirmations Confirmations, publisher Publisher, cfg config.CheckoutConfig) *Service {
	return &Service{
		carts:         carts,
		confirmations: confirmations,
		publisher:     publisher,
		cfg:           cfg,
		logger:        util.GetLogger(),
		sessions:      make(map[string]*Session),
	}
}

// Begin starts (or restarts) checkout for the session's cart. An empty cart
// cannot enter checkout.
func (s *Service) Begin(ctx context.Context, sessionID string) (*Session, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutService.Begin")
	defer span.End()

	basket := s.carts.Get(ctx, sessionID)
	if basket.IsEmpty() {
		return nil, ErrEmptyCart
	}

	sess := &Session{
		SessionID: sessionID,
		Step:      StepShippingInfo,
		StartedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[sessionID] = sess
	s.mu.Unlock()

	util.CheckoutsStartedTotal.Inc()

	if s.publisher != nil {
		event := &models.CheckoutStartedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeCheckoutStarted,
				Timestamp: time.Now(),
			},
			SessionID: sessionID,
			ItemCount: basket.TotalItemCount(),
			Subtotal:  basket.TotalPrice(),
		}
		if err := s.publisher.PublishCheckoutStarted(ctx, event); err != nil {
			s.logger.Error("Failed to publish CheckoutStarted event", zap.Error(err))
		}
	}

	return s.snapshot(sess), nil
}

// Current returns the session's checkout state.
func (s *Service) Current(sessionID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNoSession
	}
	return s.snapshot(sess), nil
}

// SubmitShipping validates the contact/address fields and advances from the
// shipping step to payment selection.
func (s *Service) SubmitShipping(ctx context.Context, sessionID string, info models.ShippingInfo) (*Session, error) {
	_, span := util.StartSpan(ctx, "CheckoutService.SubmitShipping")
	defer span.End()

	if err := ValidateShipping(info); err != nil {
		util.CheckoutStepFailuresTotal.WithLabelValues(StepShippingInfo, "validation").Inc()
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNoSession
	}
	if sess.Step != StepShippingInfo {
		util.CheckoutStepFailuresTotal.WithLabelValues(sess.Step, "wrong_step").Inc()
		return nil, ErrWrongStep
	}

	sess.Shipping = info
	sess.Step = StepPaymentMethod
	return s.snapshot(sess), nil
}

// SelectPayment records the payment method and advances to review.
func (s *Service) SelectPayment(ctx context.Context, sessionID, method string) (*Session, error) {
	_, span := util.StartSpan(ctx, "CheckoutService.SelectPayment")
	defer span.End()

	if method != PaymentMethodWhatsApp {
		util.CheckoutStepFailuresTotal.WithLabelValues(StepPaymentMethod, "unsupported_method").Inc()
		return nil, ErrUnsupportedPayment
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNoSession
	}
	if sess.Step != StepPaymentMethod {
		util.CheckoutStepFailuresTotal.WithLabelValues(sess.Step, "wrong_step").Inc()
		return nil, ErrWrongStep
	}

	sess.PaymentMethod = method
	sess.Step = StepReview
	return s.snapshot(sess), nil
}

// Back steps one step backwards. Not valid at the first step or after submit.
func (s *Service) Back(sessionID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNoSession
	}

	switch sess.Step {
	case StepPaymentMethod:
		sess.Step = StepShippingInfo
	case StepReview:
		sess.Step = StepPaymentMethod
	default:
		return nil, ErrWrongStep
	}
	return s.snapshot(sess), nil
}

// Submit completes checkout: composes the order summary, builds the messaging
// handoff link, clears the cart and publishes the order event. There is no
// failure path after the submitted state is reached; the handoff itself is
// best-effort.
func (s *Service) Submit(ctx context.Context, sessionID string, acceptTerms bool) (*models.OrderConfirmation, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutService.Submit")
	defer span.End()

	if !acceptTerms {
		util.CheckoutStepFailuresTotal.WithLabelValues(StepReview, "terms").Inc()
		return nil, ErrTermsNotAccepted
	}

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNoSession
	}
	if sess.Step != StepReview {
		util.CheckoutStepFailuresTotal.WithLabelValues(sess.Step, "wrong_step").Inc()
		s.mu.Unlock()
		return nil, ErrWrongStep
	}
	shipping := sess.Shipping
	s.mu.Unlock()

	basket := s.carts.Get(ctx, sessionID)
	lines := basket.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	ref := NewReference(s.cfg.OrderRefPrefix)
	summary := ComposeSummary(ref, shipping, lines, s.cfg)
	confirmation := &models.OrderConfirmation{
		Summary:    summary,
		HandoffURL: HandoffURL(s.cfg.WhatsAppNumber, FormatMessage(summary)),
	}

	s.retainConfirmation(ctx, confirmation)

	s.carts.Clear(ctx, sessionID)

	s.mu.Lock()
	sess.Step = StepSubmitted
	s.mu.Unlock()

	util.OrdersSubmittedTotal.Inc()
	s.logger.Info("Order submitted",
		zap.String("order_ref", ref),
		zap.String("session_id", sessionID),
		zap.Int64("total", summary.Total))

	if s.publisher != nil {
		event := &models.OrderSubmittedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderSubmitted,
				Timestamp: time.Now(),
			},
			OrderRef:      ref,
			SessionID:     sessionID,
			CustomerEmail: shipping.Email,
			Total:         summary.Total,
			Items:         summary.Lines,
		}
		if err := s.publisher.PublishOrderSubmitted(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderSubmitted event", zap.Error(err))
		}
	}

	return confirmation, nil
}

// Handoff re-fetches a submitted order's confirmation by reference, the retry
// affordance for a failed messaging handoff.
func (s *Service) Handoff(ctx context.Context, ref string) (*models.OrderConfirmation, error) {
	if s.confirmations == nil {
		return nil, ErrOrderNotFound
	}

	data, found, err := s.confirmations.LoadOrderConfirmation(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrOrderNotFound
	}

	var confirmation models.OrderConfirmation
	if err := json.Unmarshal(data, &confirmation); err != nil {
		return nil, err
	}

	util.HandoffRetriesTotal.Inc()
	return &confirmation, nil
}

// retainConfirmation stores the confirmation for later handoff retries.
// Retention failures are logged, not surfaced: the shopper already has the
// confirmation in hand.
func (s *Service) retainConfirmation(ctx context.Context, confirmation *models.OrderConfirmation) {
	if s.confirmations == nil {
		return
	}

	data, err := json.Marshal(confirmation)
	if err != nil {
		s.logger.Error("Failed to marshal order confirmation", zap.Error(err))
		return
	}
	if err := s.confirmations.SaveOrderConfirmation(ctx, confirmation.Summary.Reference, data); err != nil {
		s.logger.Error("Failed to retain order confirmation",
			zap.String("order_ref", confirmation.Summary.Reference),
			zap.Error(err))
	}
}

func (s *Service) snapshot(sess *Session) *Session {
	copied := *sess
	return &copied
}
