package product

import (
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/stylehub-storefront/internal/pricing"
)

// Product is the canonical catalog record used throughout the storefront.
type Product struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Brand         string          `json:"brand"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	DiscountPrice decimal.Decimal `json:"discountPrice"`
	Images        []string        `json:"images"`
	Sizes         []string        `json:"sizes"`
	Colors        []string        `json:"colors"`
	Rating        float64         `json:"rating"`
	ReviewCount   int             `json:"reviewCount"`
	InStock       bool            `json:"inStock"`
	Description   string          `json:"description,omitempty"`
}

// DiscountPercent is the rounded markdown from list price, 0 when there is none.
func (p Product) DiscountPercent() int {
	return pricing.DiscountPercent(p.Price, p.DiscountPrice)
}

// FirstImage returns the lead image, or "" for products without images.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// View is a Product as returned by the HTTP API.
// swagger:model ProductView
type View struct {
	Product
	DiscountPercent int `json:"discountPercent"`
}

func NewView(p Product) View {
	return View{Product: p, DiscountPercent: p.DiscountPercent()}
}

func NewViews(ps []Product) []View {
	out := make([]View, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewView(p))
	}
	return out
}

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: product not found
	Error string `json:"error"`
}

// ListResponse represents a product listing.
// swagger:model
type ListResponse struct {
	// search query applied
	Q string `json:"q,omitempty"`
	// category segment applied
	Category string `json:"category,omitempty"`
	// sort key applied
	Sort string `json:"sort"`
	// number of items after filtering
	Count int    `json:"count"`
	Items []View `json:"items"`
}
