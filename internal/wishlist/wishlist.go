// Package wishlist holds the products a shopper saved for later.
package wishlist

import (
	"fmt"
	"log"
	"sync"

	"github.com/MikeMC777/stylehub-storefront/internal/kvstore"
	"github.com/MikeMC777/stylehub-storefront/internal/product"
)

const Key = "stylehub-wishlist"

// Store is a wishlist bound to one storage key. Each product appears at most once.
type Store struct {
	mu    sync.Mutex
	kv    kvstore.Store
	key   string
	items []product.Product
}

func Open(kv kvstore.Store, key string) (*Store, error) {
	var saved []product.Product
	ok, err := kvstore.LoadJSON(kv, key, &saved)
	if err != nil {
		return nil, fmt.Errorf("open wishlist: %w", err)
	}
	if !ok || saved == nil {
		saved = []product.Product{}
	}
	return &Store{kv: kv, key: key, items: saved}, nil
}

// Add is a no-op when p is already saved.
func (s *Store) Add(p product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index(p.ID) >= 0 {
		return nil
	}
	s.items = append(s.items, p)
	return s.save()
}

func (s *Store) Remove(productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(productID)
	if i < 0 {
		return nil
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return s.save()
}

func (s *Store) Contains(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.index(productID) >= 0
}

// Toggle removes p when saved and adds it otherwise, returning the new membership.
func (s *Store) Toggle(p product.Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(p.ID); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
		return false, s.save()
	}
	s.items = append(s.items, p)
	return true, s.save()
}

func (s *Store) Items() []product.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]product.Product{}, s.items...)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

func (s *Store) index(id int) int {
	for i, p := range s.items {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) save() error {
	if err := kvstore.SaveJSON(s.kv, s.key, s.items); err != nil {
		log.Printf("[wishlist] key=%s save failed: %v", s.key, err)
		return err
	}
	return nil
}
