// Package session binds a shopper's cart, wishlist, checkout and listing state to a session id.
package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MikeMC777/stylehub-storefront/internal/apperr"
	"github.com/MikeMC777/stylehub-storefront/internal/cart"
	"github.com/MikeMC777/stylehub-storefront/internal/checkout"
	"github.com/MikeMC777/stylehub-storefront/internal/kvstore"
	"github.com/MikeMC777/stylehub-storefront/internal/product"
	"github.com/MikeMC777/stylehub-storefront/internal/wishlist"
)

var ErrInvalidID = apperr.New(apperr.Validation, "invalid session id")

type Session struct {
	ID       string
	Cart     *cart.Store
	Wishlist *wishlist.Store
	Checkout *checkout.Flow
	Listings *product.Loader
}

// DefaultIdleTTL is how long an unused session stays open.
const DefaultIdleTTL = 30 * time.Minute

// Manager opens sessions lazily and closes those idle for longer than IdleTTL.
// Cart and wishlist reopen from the kvstore; checkout progress of a closed session restarts at step 1.
type Manager struct {
	kv      kvstore.Store
	repo    product.Repository
	IdleTTL time.Duration
	now     func() time.Time

	mu        sync.Mutex
	sessions  map[string]*entry
	lastSweep time.Time
}

type entry struct {
	s        *Session
	lastUsed time.Time
}

func NewManager(kv kvstore.Store, repo product.Repository) *Manager {
	return &Manager{
		kv:       kv,
		repo:     repo,
		IdleTTL:  DefaultIdleTTL,
		now:      time.Now,
		sessions: map[string]*entry{},
	}
}

// Key is the storage key of base under session id.
func Key(id, base string) string { return id + ":" + base }

// Get returns the session for id, loading its stored cart and wishlist on first use.
func (m *Manager) Get(id string) (*Session, error) {
	if id == "" || strings.ContainsAny(id, ": \t\n") {
		return nil, ErrInvalidID
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)
	if e, ok := m.sessions[id]; ok {
		e.lastUsed = now
		return e.s, nil
	}
	c, err := cart.Open(m.kv, Key(id, cart.Key))
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	w, err := wishlist.Open(m.kv, Key(id, wishlist.Key))
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	s := &Session{
		ID:       id,
		Cart:     c,
		Wishlist: w,
		Checkout: checkout.New(c),
		Listings: product.NewLoader(m.repo),
	}
	m.sessions[id] = &entry{s: s, lastUsed: now}
	return s, nil
}

// sweep drops idle sessions, at most once per half TTL. Callers hold m.mu.
func (m *Manager) sweep(now time.Time) {
	if m.IdleTTL <= 0 || now.Sub(m.lastSweep) < m.IdleTTL/2 {
		return
	}
	m.lastSweep = now
	for id, e := range m.sessions {
		if now.Sub(e.lastUsed) > m.IdleTTL {
			delete(m.sessions, id)
		}
	}
}

// Len is the number of open sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
