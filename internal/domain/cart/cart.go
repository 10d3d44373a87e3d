// Package cart implements the per-session shopping cart: a keyed store of
// session quantity maps, mutated concurrently by many requests, priced from
// the current catalog snapshot at read time.
package cart

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/SCWINCK/CatDist/internal/domain/catalog"
	"github.com/SCWINCK/CatDist/internal/domain/coupon"
)

// Sentinel errors for cart mutations. They are returned to the caller of the
// failing operation and never affect other sessions.
var (
	ErrUnknownProduct  = errors.New("product not in catalog")
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
	ErrInvalidShipping = errors.New("shipping value must not be negative")
)

// session holds one cart's state. Its mutex serializes mutations for that
// session only; operations on different sessions never contend.
type session struct {
	mu       sync.Mutex
	items    map[string]int
	coupon   *coupon.Rule
	shipping decimal.Decimal
}

// Store maps opaque session ids to cart state. Sessions are created lazily on
// first mutation; expiry is owned by the layer issuing session ids, which
// calls Clear when a session ends.
type Store struct {
	catalog *catalog.Holder
	coupons coupon.Repository

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewStore creates a Store pricing carts against the catalog published by
// holder and validating coupon codes against coupons.
func NewStore(holder *catalog.Holder, coupons coupon.Repository) *Store {
	return &Store{
		catalog:  holder,
		coupons:  coupons,
		sessions: make(map[string]*session),
	}
}

// get returns the session for id, creating it if needed.
func (s *Store) get(id string) *session {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[id]; ok {
		return sess
	}
	sess = &session{items: make(map[string]int)}
	s.sessions[id] = sess
	return sess
}

// peek returns the session for id without creating one.
func (s *Store) peek(id string) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Add increments the quantity of productID in the session's cart by delta,
// inserting the line when absent. The product must exist in the current
// catalog snapshot and delta must be positive.
func (s *Store) Add(sessionID, productID string, delta int) error {
	if delta <= 0 {
		return ErrInvalidQuantity
	}
	if _, ok := s.catalog.Load().Product(productID); !ok {
		return errors.Wrapf(ErrUnknownProduct, "add %q", productID)
	}

	sess := s.get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.items[productID] += delta
	return nil
}

// SetQuantity sets the absolute quantity of productID in the session's cart.
// A quantity of zero or less removes the line. Setting a positive quantity
// for a product absent from the current catalog fails with ErrUnknownProduct.
func (s *Store) SetQuantity(sessionID, productID string, quantity int) error {
	if quantity <= 0 {
		s.Remove(sessionID, productID)
		return nil
	}
	if _, ok := s.catalog.Load().Product(productID); !ok {
		return errors.Wrapf(ErrUnknownProduct, "set quantity %q", productID)
	}

	sess := s.get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.items[productID] = quantity
	return nil
}

// Remove deletes the productID line from the session's cart. Removing a line
// that is not present is a no-op.
func (s *Store) Remove(sessionID, productID string) {
	sess, ok := s.peek(sessionID)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	delete(sess.items, productID)
}

// Clear empties the session's cart, including any applied coupon and shipping
// value. Idempotent.
func (s *Store) Clear(sessionID string) {
	sess, ok := s.peek(sessionID)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.items = make(map[string]int)
	sess.coupon = nil
	sess.shipping = decimal.Zero
}

// ApplyCoupon validates code against the coupon repository and attaches the
// rule to the session. At most one coupon is active per session; a newly
// applied code replaces the previous one.
func (s *Store) ApplyCoupon(ctx context.Context, sessionID, code string) error {
	rule, err := s.coupons.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, coupon.ErrInvalidCoupon) {
			return coupon.ErrInvalidCoupon
		}
		return errors.Wrap(err, "lookup coupon")
	}

	sess := s.get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.coupon = rule
	return nil
}

// ClearCoupon removes any applied coupon from the session. Idempotent.
func (s *Store) ClearCoupon(sessionID string) {
	sess, ok := s.peek(sessionID)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.coupon = nil
}

// SetShipping sets the session's shipping value, included in snapshot totals.
func (s *Store) SetShipping(sessionID string, value decimal.Decimal) error {
	if value.IsNegative() {
		return ErrInvalidShipping
	}
	sess := s.get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.shipping = value
	return nil
}
