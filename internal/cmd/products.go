package cmd

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/MikeMC777/stylehub-storefront/internal/product"
	"github.com/MikeMC777/stylehub-storefront/internal/review"
	"github.com/MikeMC777/stylehub-storefront/internal/services"
	"github.com/MikeMC777/stylehub-storefront/internal/session"
)

var (
	listSearch     string
	listCategory   string
	listCategories []string
	listBrands     []string
	listMinPrice   string
	listMaxPrice   string
	listMinRating  float64
	listSort       string
	reviewSort     string
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List products with filters and sorting",
	RunE: func(cmd *cobra.Command, args []string) error {
		crit, err := listCriteria()
		if err != nil {
			return err
		}
		return withSession(cmd, func(_ *services.ServiceOptions, s *session.Session) error {
			ps, err := s.Listings.Load(cmd.Context(), product.ListingQuery{
				Search:   listSearch,
				Category: listCategory,
				Criteria: crit,
				Sort:     product.ParseSortKey(listSort),
			})
			if err != nil {
				return err
			}
			printProducts(cmd.OutOrStdout(), ps)
			return nil
		})
	},
}

var productCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "Show a product with its reviews and similar products",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		return withSession(cmd, func(opts *services.ServiceOptions, _ *session.Session) error {
			ctx, out := cmd.Context(), cmd.OutOrStdout()
			p, err := opts.Products.Get(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s by %s (%s)\n", p.Name, p.Brand, p.Category)
			fmt.Fprintf(out, "price %s  now %s  (-%d%%)  rating %.1f  in stock: %t\n",
				p.Price, p.DiscountPrice, p.DiscountPercent(), p.Rating, p.InStock)
			fmt.Fprintf(out, "sizes %v  colors %v\n", p.Sizes, p.Colors)

			rs, err := opts.Reviews.ByProduct(ctx, id)
			if err != nil {
				return err
			}
			rs = review.Sort(rs, review.ParseSortKey(reviewSort))
			fmt.Fprintf(out, "\nreviews (%d)\n", len(rs))
			for _, r := range rs {
				fmt.Fprintf(out, "  [%d] %d/5 %s: %s (%d helpful)\n", r.ID, r.Rating, r.UserName, r.Comment, r.HelpfulVotes)
			}

			similar, err := opts.Products.Similar(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "\nsimilar")
			printProducts(out, similar)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(productsCmd, productCmd)

	f := productsCmd.Flags()
	f.StringVarP(&listSearch, "query", "q", "", "search name, brand and category")
	f.StringVar(&listCategory, "category", "", "category segment")
	f.StringSliceVar(&listCategories, "categories", nil, "category filter (any of)")
	f.StringSliceVar(&listBrands, "brands", nil, "brand filter (any of)")
	f.StringVar(&listMinPrice, "min-price", "", "lowest discount price")
	f.StringVar(&listMaxPrice, "max-price", "", "highest discount price")
	f.Float64Var(&listMinRating, "min-rating", 0, "rating floor")
	f.StringVar(&listSort, "sort", "popularity", "popularity, price-low, price-high, rating or newest")

	productCmd.Flags().StringVar(&reviewSort, "reviews", "newest", "review order: newest, oldest, highest, lowest or helpful")
}

func listCriteria() (product.Criteria, error) {
	crit := product.Criteria{Categories: listCategories, Brands: listBrands}
	if listMinPrice != "" || listMaxPrice != "" {
		r := &product.PriceRange{Min: decimal.Zero, Max: decimal.NewFromInt(1 << 53)}
		var err error
		if listMinPrice != "" {
			if r.Min, err = decimal.NewFromString(listMinPrice); err != nil {
				return crit, fmt.Errorf("invalid --min-price: %w", err)
			}
		}
		if listMaxPrice != "" {
			if r.Max, err = decimal.NewFromString(listMaxPrice); err != nil {
				return crit, fmt.Errorf("invalid --max-price: %w", err)
			}
		}
		crit.PriceRange = r
	}
	if listMinRating > 0 {
		rating := listMinRating
		crit.MinRating = &rating
	}
	return crit, nil
}

func printProducts(out io.Writer, ps []product.Product) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBRAND\tCATEGORY\tPRICE\tOFF\tRATING")
	for _, p := range ps {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d%%\t%.1f\n",
			p.ID, p.Name, p.Brand, p.Category, p.DiscountPrice, p.DiscountPercent(), p.Rating)
	}
	_ = tw.Flush()
}
