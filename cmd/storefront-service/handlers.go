package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/MikeMC777/stylehub-storefront/internal/apperr"
	"github.com/MikeMC777/stylehub-storefront/internal/cart"
	"github.com/MikeMC777/stylehub-storefront/internal/checkout"
	_ "github.com/MikeMC777/stylehub-storefront/internal/docs"
	"github.com/MikeMC777/stylehub-storefront/internal/httpx"
	"github.com/MikeMC777/stylehub-storefront/internal/pricing"
	"github.com/MikeMC777/stylehub-storefront/internal/product"
	"github.com/MikeMC777/stylehub-storefront/internal/review"
	"github.com/MikeMC777/stylehub-storefront/internal/services"
	"github.com/MikeMC777/stylehub-storefront/internal/validate"
)

func newRouter(opts *services.ServiceOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/categories", listCategoriesHandler(opts))
	r.GET("/categories/:id", getCategoryHandler(opts))
	r.GET("/products/search", searchHandler(opts))
	r.GET("/products/:id", getProductHandler(opts))
	r.GET("/products/:id/similar", similarHandler(opts))
	r.GET("/products/:id/reviews", listReviewsHandler(opts))
	r.POST("/products/:id/reviews", createReviewHandler(opts))
	r.POST("/reviews/:id/helpful", helpfulHandler(opts))

	s := r.Group("/", httpx.Session(opts.Sessions))
	s.GET("/products", listProductsHandler())
	s.GET("/products/category/:category", listProductsHandler())

	s.GET("/cart", getCartHandler())
	s.DELETE("/cart", clearCartHandler())
	s.POST("/cart/items", addCartItemHandler(opts))
	s.PUT("/cart/items", updateCartItemHandler())
	s.DELETE("/cart/items", removeCartItemHandler())

	s.GET("/wishlist", getWishlistHandler())
	s.POST("/wishlist/:productId", addWishlistHandler(opts))
	s.DELETE("/wishlist/:productId", removeWishlistHandler())
	s.POST("/wishlist/:productId/toggle", toggleWishlistHandler(opts))

	s.GET("/checkout", checkoutSummaryHandler())
	s.POST("/checkout/shipping", shippingHandler())
	s.POST("/checkout/payment", paymentHandler())
	s.POST("/checkout/back", checkoutBackHandler())
	s.POST("/checkout/order", placeOrderHandler())
	return r
}

func listCategoriesHandler(opts *services.ServiceOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		cs, err := opts.Categories.All(c.Request.Context())
		if err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, cs)
	}
}

func getCategoryHandler(opts *services.ServiceOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := intParam(c, "id")
		if !ok {
			return
		}
		cat, err := opts.Categories.GetByID(c.Request.Context(), id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

// listProductsHandler serves /products and /products/category/:category through the
// session's listing loader, so a superseded listing answers 409.
func listProductsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		crit, err := criteriaFromQuery(c)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		q := product.ListingQuery{
			Search:   strings.TrimSpace(c.Query("q")),
			Category: c.Param("category"),
			Criteria: crit,
			Sort:     product.ParseSortKey(c.Query("sort")),
		}
		if q.Category == "" {
			q.Category = c.Query("category")
		}
		ps, err := httpx.CurrentSession(c).Listings.Load(c.Request.Context(), q)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, product.ListResponse{
			Q: q.Search, Category: q.Category, Sort: string(q.Sort),
			Count: len(ps), Items: product.NewViews(ps),
		})
	}
}

func searchHandler(opts *services.ServiceOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := strings.TrimSpace(c.Query("q"))
		if q == "" {
			c.JSON(http.StatusBadRequest, product.HTTPError{Error: "q is required"})
			return
		}
		crit, err := criteriaFromQuery(c)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		ps, err := opts.Products.Search(c.Request.Context(), q)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		sort := product.ParseSortKey(c.Query("sort"))
		ps = product.Apply(ps, crit, sort)
		c.JSON(http.StatusOK, product.ListResponse{Q: q, Sort: string(sort), Count: len(ps), Items: product.NewViews(ps)})
	}
}

func getProductHandler(opts *services.ServiceOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := intParam(c, "id")
		if !ok {
			return
		}
		p, err := opts.Products.Get(c.Request.Context(), id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, product.NewView(*p))
	}
}

func similarHandler(opts *services.ServiceOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := intParam(c, "id")
		if !ok {
			return
		}
		ps, err := opts.Products.Similar(c.Request.Context(), id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, product.NewViews(ps))
	}
}

func listReviewsHandler(opts *services.ServiceOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := intParam(c, "id")
		if !ok {
			return
		}
		rs, err := opts.Reviews.ByProduct(c.Request.Context(), id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, review.Sort(rs, review.ParseSortKey(c.Query("sort"))))
	}
}

func createReviewHandler(opts *services.ServiceOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := intParam(c, "id")
		if !ok {
			return
		}
		var in review.NewReview
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, product.HTTPError{Error: "invalid JSON: " + err.Error()})
			return
		}
		in.ProductID = id
		if _, err := opts.Products.Get(c.Request.Context(), id); err != nil {
			httpx.Error(c, err)
			return
		}
		rv, err := opts.Reviews.Create(c.Request.Context(), in)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, rv)
	}
}

func helpfulHandler(opts *services.ServiceOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := intParam(c, "id")
		if !ok {
			return
		}
		rv, err := opts.Reviews.MarkHelpful(c.Request.Context(), id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, rv)
	}
}

type cartResponse struct {
	Items []cart.LineItem `json:"items"`
	Count int             `json:"count"`
	Quote pricing.Quote   `json:"quote"`
}

// cartItemRequest addresses a cart line. Quantity defaults to 1 on add.
type cartItemRequest struct {
	ProductID int    `json:"productId" validate:"gt=0"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

func writeCart(c *gin.Context, s *cart.Store) {
	c.JSON(http.StatusOK, cartResponse{Items: s.Items(), Count: s.Count(), Quote: pricing.Calculate(s.Total())})
}

func getCartHandler() gin.HandlerFunc {
	return func(c *gin.Context) { writeCart(c, httpx.CurrentSession(c).Cart) }
}

func clearCartHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := httpx.CurrentSession(c).Cart
		if err := s.Clear(); err != nil {
			httpx.Error(c, err)
			return
		}
		writeCart(c, s)
	}
}

func bindCartItem(c *gin.Context) (cartItemRequest, bool) {
	var in cartItemRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, product.HTTPError{Error: "invalid JSON: " + err.Error()})
		return in, false
	}
	if err := validate.Struct(in); err != nil {
		httpx.Error(c, err)
		return in, false
	}
	return in, true
}

func addCartItemHandler(opts *services.ServiceOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := bindCartItem(c)
		if !ok {
			return
		}
		if in.Quantity == 0 {
			in.Quantity = 1
		}
		p, err := opts.Products.Get(c.Request.Context(), in.ProductID)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		s := httpx.CurrentSession(c).Cart
		if err := s.Add(*p, in.Size, in.Color, in.Quantity); err != nil {
			httpx.Error(c, err)
			return
		}
		writeCart(c, s)
	}
}

func updateCartItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := bindCartItem(c)
		if !ok {
			return
		}
		s := httpx.CurrentSession(c).Cart
		if err := s.UpdateQuantity(in.ProductID, in.Size, in.Color, in.Quantity); err != nil {
			httpx.Error(c, err)
			return
		}
		writeCart(c, s)
	}
}

func removeCartItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Query("productId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, product.HTTPError{Error: "invalid productId"})
			return
		}
		s := httpx.CurrentSession(c).Cart
		if err := s.Remove(id, c.Query("size"), c.Query("color")); err != nil {
			httpx.Error(c, err)
			return
		}
		writeCart(c, s)
	}
}

func writeWishlist(c *gin.Context, items []product.Product) {
	c.JSON(http.StatusOK, gin.H{"count": len(items), "items": product.NewViews(items)})
}

func getWishlistHandler() gin.HandlerFunc {
	return func(c *gin.Context) { writeWishlist(c, httpx.CurrentSession(c).Wishlist.Items()) }
}

func addWishlistHandler(opts *services.ServiceOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := intParam(c, "productId")
		if !ok {
			return
		}
		p, err := opts.Products.Get(c.Request.Context(), id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		w := httpx.CurrentSession(c).Wishlist
		if err := w.Add(*p); err != nil {
			httpx.Error(c, err)
			return
		}
		writeWishlist(c, w.Items())
	}
}

func removeWishlistHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := intParam(c, "productId")
		if !ok {
			return
		}
		w := httpx.CurrentSession(c).Wishlist
		if err := w.Remove(id); err != nil {
			httpx.Error(c, err)
			return
		}
		writeWishlist(c, w.Items())
	}
}

func toggleWishlistHandler(opts *services.ServiceOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := intParam(c, "productId")
		if !ok {
			return
		}
		p, err := opts.Products.Get(c.Request.Context(), id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		in, err := httpx.CurrentSession(c).Wishlist.Toggle(*p)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"productId": id, "inWishlist": in})
	}
}

func checkoutSummaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) { c.JSON(http.StatusOK, httpx.CurrentSession(c).Checkout.Summary()) }
}

func shippingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkout.Shipping
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, product.HTTPError{Error: "invalid JSON: " + err.Error()})
			return
		}
		f := httpx.CurrentSession(c).Checkout
		if err := f.SubmitShipping(in); err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, f.Summary())
	}
}

func paymentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkout.Payment
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, product.HTTPError{Error: "invalid JSON: " + err.Error()})
			return
		}
		f := httpx.CurrentSession(c).Checkout
		if err := f.SubmitPayment(in); err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, f.Summary())
	}
}

func checkoutBackHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		f := httpx.CurrentSession(c).Checkout
		f.Back()
		c.JSON(http.StatusOK, f.Summary())
	}
}

func placeOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := httpx.CurrentSession(c).Checkout.PlaceOrder()
		if err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

func intParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, product.HTTPError{Error: "invalid " + name})
		return 0, false
	}
	return id, true
}

// criteriaFromQuery reads categories, brands, minPrice, maxPrice and minRating.
// A single price bound leaves the other end open.
func criteriaFromQuery(c *gin.Context) (product.Criteria, error) {
	var crit product.Criteria
	crit.Categories = splitQuery(c.Query("categories"))
	crit.Brands = splitQuery(c.Query("brands"))

	minS, maxS := c.Query("minPrice"), c.Query("maxPrice")
	if minS != "" || maxS != "" {
		r := &product.PriceRange{Min: decimal.Zero, Max: decimal.NewFromInt(1 << 53)}
		var err error
		if minS != "" {
			if r.Min, err = decimal.NewFromString(minS); err != nil {
				return crit, apperr.New(apperr.Validation, "invalid minPrice")
			}
		}
		if maxS != "" {
			if r.Max, err = decimal.NewFromString(maxS); err != nil {
				return crit, apperr.New(apperr.Validation, "invalid maxPrice")
			}
		}
		crit.PriceRange = r
	}
	if s := c.Query("minRating"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return crit, apperr.New(apperr.Validation, "invalid minRating")
		}
		crit.MinRating = &v
	}
	return crit, nil
}

func splitQuery(s string) []string {
	if s == "" {
		return nil
	}
	out := []string{}
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
