package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/stylehub-storefront/internal/apperr"
	"github.com/MikeMC777/stylehub-storefront/internal/category"
	"github.com/MikeMC777/stylehub-storefront/internal/kvstore"
	"github.com/MikeMC777/stylehub-storefront/internal/product"
	"github.com/MikeMC777/stylehub-storefront/internal/review"
	"github.com/MikeMC777/stylehub-storefront/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
	log.SetOutput(io.Discard)
}

//
// ---------- TEST WIRING ----------
//

// failingRepo answers every call with an external source failure.
type failingRepo struct{ product.Repository }

func (failingRepo) All(context.Context) ([]product.Product, error) {
	return nil, apperr.New(apperr.ExternalSource, "records api: unavailable")
}

func newTestOptions(t *testing.T) *services.ServiceOptions {
	t.Helper()
	ps, err := product.NewStaticRepo(0)
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	rs, err := review.NewStaticRepo(0)
	if err != nil {
		t.Fatalf("reviews: %v", err)
	}
	cs, err := category.NewStaticRepo(0)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	return services.New(services.Sources{Products: ps, Reviews: rs, Categories: cs}, kvstore.NewMemory())
}

func do(r http.Handler, method, target, sid string, body any) *httptest.ResponseRecorder {
	var buf io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.Header.Set("X-Session-ID", sid)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("invalid json: %v body=%s", err, w.Body.String())
	}
}

type listBody struct {
	Category string         `json:"category"`
	Sort     string         `json:"sort"`
	Count    int            `json:"count"`
	Items    []product.View `json:"items"`
}

type cartBody struct {
	Items []struct {
		ProductID int    `json:"productId"`
		Price     string `json:"price"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
	Count int `json:"count"`
	Quote struct {
		Subtotal string `json:"subtotal"`
		Shipping string `json:"shipping"`
		Tax      string `json:"tax"`
		Total    string `json:"total"`
	} `json:"quote"`
}

//
// ---------- CATALOG ----------
//

func TestListProducts_FiltersAndSorts(t *testing.T) {
	r := newRouter(newTestOptions(t))

	w := do(r, http.MethodGet, "/products?categories=Men&sort=price-low&minRating=4", "s1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Session-ID") != "s1" {
		t.Fatalf("session id not echoed: %q", w.Header().Get("X-Session-ID"))
	}
	var got listBody
	decode(t, w, &got)
	if got.Count != 3 || got.Items[0].ID != 2 || got.Items[2].ID != 7 {
		t.Fatalf("unexpected listing: %+v", got)
	}
	if got.Items[0].DiscountPercent != 33 {
		t.Fatalf("discountPercent=%d, want 33", got.Items[0].DiscountPercent)
	}
}

func TestListProducts_CategorySegmentAndBadFilter(t *testing.T) {
	r := newRouter(newTestOptions(t))

	{
		w := do(r, http.MethodGet, "/products/category/beauty", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		var got listBody
		decode(t, w, &got)
		if got.Count != 2 || got.Category != "beauty" || got.Sort != "popularity" {
			t.Fatalf("unexpected listing: %+v", got)
		}
		if w.Header().Get("X-Session-ID") == "" {
			t.Fatalf("expected a minted session id")
		}
	}

	{
		w := do(r, http.MethodGet, "/products?minPrice=cheap", "", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
		}
	}
}

func TestListProducts_SourceFailureIs502(t *testing.T) {
	opts := newTestOptions(t)
	opts = services.New(services.Sources{
		Products: failingRepo{opts.Products.Repo}, Reviews: opts.Reviews, Categories: opts.Categories,
	}, kvstore.NewMemory())
	r := newRouter(opts)

	w := do(r, http.MethodGet, "/products", "", nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestSearch_RequiresQ(t *testing.T) {
	r := newRouter(newTestOptions(t))

	{
		w := do(r, http.MethodGet, "/products/search", "", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for missing q, got %d", w.Code)
		}
	}
	{
		w := do(r, http.MethodGet, "/products/search?q=jacket&sort=newest", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		var got listBody
		decode(t, w, &got)
		if got.Count != 2 || got.Items[0].ID != 15 || got.Items[1].ID != 7 {
			t.Fatalf("unexpected search result: %+v", got.Items)
		}
	}
}

func TestGetProduct_OK_NotFound_BadID(t *testing.T) {
	r := newRouter(newTestOptions(t))

	if w := do(r, http.MethodGet, "/products/1", "", nil); w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodGet, "/products/999", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodGet, "/products/abc", "", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSimilarAndCategories(t *testing.T) {
	r := newRouter(newTestOptions(t))

	w := do(r, http.MethodGet, "/products/4/similar", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var similar []product.View
	decode(t, w, &similar)
	if len(similar) != 4 || similar[0].ID != 11 {
		t.Fatalf("unexpected similar: %+v", similar)
	}

	w = do(r, http.MethodGet, "/categories", "", nil)
	var cats []category.Category
	decode(t, w, &cats)
	if len(cats) != 5 {
		t.Fatalf("categories=%d, want 5", len(cats))
	}
	if w := do(r, http.MethodGet, "/categories/9", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

//
// ---------- REVIEWS ----------
//

func TestReviews_CreateListHelpful(t *testing.T) {
	r := newRouter(newTestOptions(t))

	{
		w := do(r, http.MethodPost, "/products/3/reviews", "", map[string]any{
			"rating": 5, "comment": "Great fit", "userName": "Nia",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		var rv review.Review
		decode(t, w, &rv)
		if rv.ID != 9 || rv.ProductID != 3 || rv.HelpfulVotes != 0 {
			t.Fatalf("unexpected review: %+v", rv)
		}
	}
	{
		w := do(r, http.MethodPost, "/products/3/reviews", "", map[string]any{"rating": 9})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
		}
		var body struct {
			Fields []string `json:"fields"`
		}
		decode(t, w, &body)
		if len(body.Fields) != 3 {
			t.Fatalf("fields=%v", body.Fields)
		}
	}
	{
		w := do(r, http.MethodPost, "/products/999/reviews", "", map[string]any{
			"rating": 5, "comment": "x", "userName": "y",
		})
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	}
	{
		w := do(r, http.MethodGet, "/products/3/reviews", "", nil)
		var rs []review.Review
		decode(t, w, &rs)
		if len(rs) != 1 {
			t.Fatalf("reviews=%d, want 1", len(rs))
		}
	}
	{
		w := do(r, http.MethodPost, "/products/3/reviews", "", map[string]any{
			"rating": 4, "comment": "   ", "userName": "\t",
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("blank review: status=%d body=%s", w.Code, w.Body.String())
		}
	}
	{
		for key, want := range map[string][]int{"": {2, 1}, "oldest": {1, 2}, "helpful": {1, 2}, "lowest": {2, 1}} {
			w := do(r, http.MethodGet, "/products/1/reviews?sort="+key, "", nil)
			var rs []review.Review
			decode(t, w, &rs)
			if len(rs) != 2 || rs[0].ID != want[0] || rs[1].ID != want[1] {
				t.Fatalf("sort=%q got %+v", key, rs)
			}
		}
	}
	{
		w := do(r, http.MethodPost, "/reviews/1/helpful", "", nil)
		var rv review.Review
		decode(t, w, &rv)
		if w.Code != http.StatusOK || rv.HelpfulVotes != 13 {
			t.Fatalf("status=%d votes=%d", w.Code, rv.HelpfulVotes)
		}
		if w := do(r, http.MethodPost, "/reviews/404/helpful", "", nil); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	}
}

//
// ---------- CART, WISHLIST, CHECKOUT ----------
//

func TestCart_Flow(t *testing.T) {
	r := newRouter(newTestOptions(t))
	const sid = "cart-session"

	{
		w := do(r, http.MethodPost, "/cart/items", sid, map[string]any{"productId": 7, "size": "M", "color": "Red"})
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		_ = do(r, http.MethodPost, "/cart/items", sid, map[string]any{"productId": 7, "size": "M", "color": "Red", "quantity": 2})
	}
	{
		w := do(r, http.MethodGet, "/cart", sid, nil)
		var got cartBody
		decode(t, w, &got)
		if len(got.Items) != 1 || got.Count != 3 {
			t.Fatalf("unexpected cart: %+v", got)
		}
		// 3 x 2299 = 6897, free shipping, tax round(1241.46) = 1241
		if got.Quote.Subtotal != "6897" || got.Quote.Shipping != "0" || got.Quote.Tax != "1241" || got.Quote.Total != "8138" {
			t.Fatalf("unexpected quote: %+v", got.Quote)
		}
	}
	{
		w := do(r, http.MethodPut, "/cart/items", sid, map[string]any{"productId": 7, "size": "M", "color": "Red", "quantity": 0})
		var got cartBody
		decode(t, w, &got)
		if got.Count != 0 || got.Quote.Shipping != "99" {
			t.Fatalf("expected empty cart, got %+v", got)
		}
	}
	{
		if w := do(r, http.MethodPost, "/cart/items", sid, map[string]any{"productId": 999}); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		if w := do(r, http.MethodPost, "/cart/items", sid, map[string]any{"size": "M"}); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if w := do(r, http.MethodPost, "/cart/items", sid, map[string]any{"productId": 7, "quantity": -2}); w.Code != http.StatusBadRequest {
			t.Fatalf("negative quantity: status=%d body=%s", w.Code, w.Body.String())
		}
	}
	{
		_ = do(r, http.MethodPost, "/cart/items", sid, map[string]any{"productId": 3, "size": "S"})
		w := do(r, http.MethodDelete, "/cart/items?productId=3&size=S", sid, nil)
		var got cartBody
		decode(t, w, &got)
		if got.Count != 0 {
			t.Fatalf("expected line removed, got %+v", got)
		}
	}
	{
		other := do(r, http.MethodGet, "/cart", "someone-else", nil)
		var got cartBody
		decode(t, other, &got)
		if got.Count != 0 {
			t.Fatalf("sessions must not share carts")
		}
	}
}

func TestWishlist_AddToggleRemove(t *testing.T) {
	r := newRouter(newTestOptions(t))
	const sid = "wish"

	_ = do(r, http.MethodPost, "/wishlist/4", sid, nil)
	_ = do(r, http.MethodPost, "/wishlist/4", sid, nil)
	w := do(r, http.MethodGet, "/wishlist", sid, nil)
	var got struct {
		Count int `json:"count"`
	}
	decode(t, w, &got)
	if got.Count != 1 {
		t.Fatalf("count=%d, want 1", got.Count)
	}

	w = do(r, http.MethodPost, "/wishlist/4/toggle", sid, nil)
	var toggled struct {
		InWishlist bool `json:"inWishlist"`
	}
	decode(t, w, &toggled)
	if toggled.InWishlist {
		t.Fatalf("toggle should remove a saved product")
	}

	if w := do(r, http.MethodPost, "/wishlist/999", sid, nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w := do(r, http.MethodDelete, "/wishlist/4", sid, nil); w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestCheckout_Steps(t *testing.T) {
	r := newRouter(newTestOptions(t))
	const sid = "buyer"

	_ = do(r, http.MethodPost, "/cart/items", sid, map[string]any{"productId": 3, "size": "S", "quantity": 2})

	{
		w := do(r, http.MethodPost, "/checkout/order", sid, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("order before review must fail, got %d", w.Code)
		}
	}
	{
		w := do(r, http.MethodPost, "/checkout/shipping", sid, map[string]any{"firstName": "Asha"})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for missing fields, got %d body=%s", w.Code, w.Body.String())
		}
	}
	{
		w := do(r, http.MethodPost, "/checkout/shipping", sid, map[string]any{
			"firstName": "Asha", "lastName": "Rao", "email": "a@x.in", "phone": "1",
			"address": "1 Road", "city": "Pune", "state": "MH", "zipCode": "411001",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		w = do(r, http.MethodPost, "/checkout/payment", sid, map[string]any{
			"cardNumber": "4111111111111111", "expiryDate": "01/30", "cvv": "123", "cardName": "Asha Rao",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
	}
	{
		w := do(r, http.MethodPost, "/checkout/order", sid, nil)
		if w.Code != http.StatusCreated {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		var o struct {
			ID    string `json:"id"`
			Quote struct {
				Total string `json:"total"`
			} `json:"quote"`
		}
		decode(t, w, &o)
		// 2 x 399 = 798 + 99 shipping + 144 tax
		if o.ID == "" || o.Quote.Total != "1041" {
			t.Fatalf("unexpected order: %+v", o)
		}

		w = do(r, http.MethodGet, "/cart", sid, nil)
		var c cartBody
		decode(t, w, &c)
		if c.Count != 0 {
			t.Fatalf("cart not cleared after order")
		}
	}
}
