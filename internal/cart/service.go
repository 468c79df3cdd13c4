package cart

import (
	"context"
	"sync"

	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// Snapshots is the cart persistence contract: a single namespaced key per
// session with last-writer-wins semantics. The Redis client implements it.
type Snapshots interface {
	LoadCartSnapshot(ctx context.Context, sessionID string) ([]byte, bool, error)
	SaveCartSnapshot(ctx context.Context, sessionID string, data []byte) error
	DeleteCartSnapshot(ctx context.Context, sessionID string) error
}

// Service is the single mutation surface for carts. Each session's cart is
// rehydrated from the snapshot store on first access and persisted after
// every mutation; persistence failures are logged and swallowed, never
// surfaced to the caller.
type Service struct {
	snapshots Snapshots
	logger    *zap.Logger

	mu    sync.Mutex
	carts map[string]*Cart
}

// NewService creates a cart service backed by the given snapshot store.
// A nil store disables persistence (used by tests and degraded startup).
func NewService(snapshots Snapshots) *Service {
	return &Service{
		snapshots: snapshots,
		logger:    util.GetLogger(),
		carts:     make(map[string]*Cart),
	}
}

// Get returns a point-in-time copy of the session's cart, loading it from the
// snapshot store on the first access. The live aggregate never leaves the
// service lock, so the copy is safe to read while other requests mutate the
// same session. Load failures and malformed snapshots fall back to an empty
// cart; they are never fatal.
func (s *Service) Get(ctx context.Context, sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Cart{lines: s.getLocked(ctx, sessionID).Lines()}
}

func (s *Service) getLocked(ctx context.Context, sessionID string) *Cart {
	if c, ok := s.carts[sessionID]; ok {
		return c
	}

	c := New()
	s.carts[sessionID] = c

	if s.snapshots == nil {
		return c
	}

	data, found, err := s.snapshots.LoadCartSnapshot(ctx, sessionID)
	if err != nil {
		util.CartRehydrationsTotal.WithLabelValues("error").Inc()
		s.logger.Warn("Failed to load cart snapshot, starting empty",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return c
	}
	if !found {
		util.CartRehydrationsTotal.WithLabelValues("empty").Inc()
		return c
	}

	if err := c.UnmarshalSnapshot(data); err != nil {
		util.CartRehydrationsTotal.WithLabelValues("malformed").Inc()
		s.logger.Warn("Discarding malformed cart snapshot",
			zap.String("session_id", sessionID),
			zap.Error(err))
		c.Clear()
		return c
	}

	util.CartRehydrationsTotal.WithLabelValues("loaded").Inc()
	return c
}

// AddItem adds quantity of the product to the session's cart.
func (s *Service) AddItem(ctx context.Context, sessionID string, product models.Product, quantity int) error {
	ctx, span := util.StartSpan(ctx, "CartService.AddItem")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getLocked(ctx, sessionID)
	if err := c.AddItem(product, quantity); err != nil {
		return err
	}

	util.CartItemsAddedTotal.Add(float64(quantity))
	s.persistLocked(ctx, sessionID, c)
	return nil
}

// RemoveItem removes the product's line from the session's cart.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) {
	ctx, span := util.StartSpan(ctx, "CartService.RemoveItem")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getLocked(ctx, sessionID)
	c.RemoveItem(productID)

	util.CartItemsRemovedTotal.Inc()
	s.persistLocked(ctx, sessionID, c)
}

// SetQuantity sets the product line's quantity; non-positive removes it.
func (s *Service) SetQuantity(ctx context.Context, sessionID, productID string, quantity int) {
	ctx, span := util.StartSpan(ctx, "CartService.SetQuantity")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getLocked(ctx, sessionID)
	c.SetQuantity(productID, quantity)
	s.persistLocked(ctx, sessionID, c)
}

// Clear empties the session's cart and persists the empty state.
func (s *Service) Clear(ctx context.Context, sessionID string) {
	ctx, span := util.StartSpan(ctx, "CartService.Clear")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getLocked(ctx, sessionID)
	c.Clear()

	util.CartsClearedTotal.Inc()
	s.persistLocked(ctx, sessionID, c)
}

// persistLocked writes the cart snapshot fire-and-forget: a failed write is
// logged, not retried and not reported to the caller.
func (s *Service) persistLocked(ctx context.Context, sessionID string, c *Cart) {
	if s.snapshots == nil {
		return
	}

	data, err := c.MarshalSnapshot()
	if err != nil {
		util.CartSnapshotFailuresTotal.WithLabelValues("marshal").Inc()
		s.logger.Error("Failed to marshal cart snapshot",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return
	}

	if err := s.snapshots.SaveCartSnapshot(ctx, sessionID, data); err != nil {
		util.CartSnapshotFailuresTotal.WithLabelValues("save").Inc()
		s.logger.Error("Failed to save cart snapshot",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
}
