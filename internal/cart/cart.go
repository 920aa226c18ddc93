// Package cart holds a shopper's cart line items, persisted to a kvstore on every change.
package cart

import (
	"fmt"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/stylehub-storefront/internal/apperr"
	"github.com/MikeMC777/stylehub-storefront/internal/kvstore"
	"github.com/MikeMC777/stylehub-storefront/internal/product"
)

// Key is the storage key of a cart without a session prefix.
const Key = "stylehub-cart"

var ErrInvalidQuantity = apperr.New(apperr.Validation, "quantity must be a positive integer")

// LineItem is one (product, size, color) entry. Price is the unit price when it was added.
type LineItem struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is Price × Quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

func (li LineItem) is(productID int, size, color string) bool {
	return li.ProductID == productID && li.Size == size && li.Color == color
}

// Store is a cart bound to one storage key. Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	kv    kvstore.Store
	key   string
	items []LineItem
}

// Open loads the cart saved under key. An absent or unreadable value yields an empty cart.
func Open(kv kvstore.Store, key string) (*Store, error) {
	var saved []LineItem
	ok, err := kvstore.LoadJSON(kv, key, &saved)
	if err != nil {
		return nil, fmt.Errorf("open cart: %w", err)
	}
	if !ok || saved == nil {
		saved = []LineItem{}
	}
	return &Store{kv: kv, key: key, items: saved}, nil
}

// Add merges quantity into the line for (p, size, color), creating it from p's current
// discount price, name, brand and first image when absent. Sizes and colors are not checked
// against the product's options.
func (s *Store) Add(p product.Product, size, color string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].is(p.ID, size, color) {
			s.items[i].Quantity += quantity
			return s.save()
		}
	}
	s.items = append(s.items, LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Brand:     p.Brand,
		Price:     p.DiscountPrice,
		Image:     p.FirstImage(),
		Size:      size,
		Color:     color,
		Quantity:  quantity,
	})
	return s.save()
}

// UpdateQuantity replaces the line's quantity; quantity <= 0 removes it.
// Unknown lines are ignored.
func (s *Store) UpdateQuantity(productID int, size, color string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(productID, size, color)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].is(productID, size, color) {
			s.items[i].Quantity = quantity
			return s.save()
		}
	}
	return nil
}

func (s *Store) Remove(productID int, size, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].is(productID, size, color) {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.save()
		}
	}
	return nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []LineItem{}
	return s.save()
}

// Total is the sum of line subtotals.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, li := range s.items {
		total = total.Add(li.Subtotal())
	}
	return total
}

// Count is the number of units across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, li := range s.items {
		n += li.Quantity
	}
	return n
}

func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]LineItem{}, s.items...)
}

func (s *Store) save() error {
	if err := kvstore.SaveJSON(s.kv, s.key, s.items); err != nil {
		log.Printf("[cart] key=%s save failed: %v", s.key, err)
		return err
	}
	return nil
}
