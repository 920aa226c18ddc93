// Package checkout runs the three-step checkout (shipping, payment, review) over a cart.
// Payment details are only checked for presence and orders are not persisted.
package checkout

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeMC777/stylehub-storefront/internal/apperr"
	"github.com/MikeMC777/stylehub-storefront/internal/cart"
	"github.com/MikeMC777/stylehub-storefront/internal/pricing"
	"github.com/MikeMC777/stylehub-storefront/internal/validate"
)

type Step int

const (
	StepShipping Step = iota + 1
	StepPayment
	StepReview
)

const DefaultCountry = "India"

var (
	ErrStepOrder = apperr.New(apperr.Validation, "previous checkout step is not complete")
	ErrEmptyCart = apperr.New(apperr.Validation, "cart is empty")
)

type Shipping struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	ZipCode   string `json:"zipCode" validate:"required"`
	Country   string `json:"country"`
}

type Payment struct {
	CardNumber string `json:"cardNumber" validate:"required"`
	ExpiryDate string `json:"expiryDate" validate:"required"`
	CVV        string `json:"cvv" validate:"required"`
	CardName   string `json:"cardName" validate:"required"`
}

// Masked hides all but the last four card digits.
func (p Payment) Masked() string {
	n := strings.ReplaceAll(p.CardNumber, " ", "")
	if len(n) > 4 {
		n = n[len(n)-4:]
	}
	return "**** **** **** " + n
}

// Summary is what the review step shows.
type Summary struct {
	Step     Step            `json:"step"`
	Shipping Shipping        `json:"shipping"`
	Card     string          `json:"card,omitempty"`
	Items    []cart.LineItem `json:"items"`
	Quote    pricing.Quote   `json:"quote"`
}

// Order confirms a placed order.
type Order struct {
	ID       string          `json:"id"`
	PlacedAt time.Time       `json:"placedAt"`
	Shipping Shipping        `json:"shipping"`
	Items    []cart.LineItem `json:"items"`
	Quote    pricing.Quote   `json:"quote"`
}

// Flow is one shopper's checkout progress. Safe for concurrent use.
type Flow struct {
	mu       sync.Mutex
	cart     *cart.Store
	step     Step
	shipping Shipping
	payment  Payment

	now   func() time.Time
	newID func() string
}

func New(c *cart.Store) *Flow {
	return &Flow{
		cart:     c,
		step:     StepShipping,
		shipping: Shipping{Country: DefaultCountry},
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// SubmitShipping validates the address and advances to payment.
func (f *Flow) SubmitShipping(s Shipping) error {
	if strings.TrimSpace(s.Country) == "" {
		s.Country = DefaultCountry
	}
	if err := validate.Struct(trimShipping(s)); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shipping = s
	f.step = StepPayment
	return nil
}

// SubmitPayment checks the card fields are present and advances to review.
func (f *Flow) SubmitPayment(p Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step < StepPayment {
		return ErrStepOrder
	}
	if err := validate.Struct(trimPayment(p)); err != nil {
		return err
	}
	f.payment = p
	f.step = StepReview
	return nil
}

// Back returns to the previous step. It stays on shipping.
func (f *Flow) Back() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step > StepShipping {
		f.step--
	}
	return f.step
}

func (f *Flow) Summary() Summary {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum := Summary{
		Step:     f.step,
		Shipping: f.shipping,
		Items:    f.cart.Items(),
		Quote:    pricing.Calculate(f.cart.Total()),
	}
	if f.step == StepReview {
		sum.Card = f.payment.Masked()
	}
	return sum
}

// PlaceOrder confirms the order from the review step and clears the cart.
func (f *Flow) PlaceOrder() (*Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepReview {
		return nil, ErrStepOrder
	}
	items := f.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	o := &Order{
		ID:       f.newID(),
		PlacedAt: f.now().UTC(),
		Shipping: f.shipping,
		Items:    items,
		Quote:    pricing.Calculate(f.cart.Total()),
	}
	if err := f.cart.Clear(); err != nil {
		return nil, err
	}
	log.Printf("[checkout] order=%s items=%d total=%s", o.ID, len(o.Items), o.Quote.Total)

	f.step = StepShipping
	f.payment = Payment{}
	return o, nil
}

// whitespace-only values count as missing
func trimShipping(s Shipping) Shipping {
	for _, f := range []*string{&s.FirstName, &s.LastName, &s.Email, &s.Phone, &s.Address, &s.City, &s.State, &s.ZipCode} {
		*f = strings.TrimSpace(*f)
	}
	return s
}

func trimPayment(p Payment) Payment {
	for _, f := range []*string{&p.CardNumber, &p.ExpiryDate, &p.CVV, &p.CardName} {
		*f = strings.TrimSpace(*f)
	}
	return p
}
