package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/MikeMC777/stylehub-storefront/internal/cart"
	"github.com/MikeMC777/stylehub-storefront/internal/pricing"
	"github.com/MikeMC777/stylehub-storefront/internal/services"
	"github.com/MikeMC777/stylehub-storefront/internal/session"
)

var (
	lineSize  string
	lineColor string
	lineQty   int
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the session cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(_ *services.ServiceOptions, s *session.Session) error {
			printCart(cmd.OutOrStdout(), s.Cart)
			return nil
		})
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := productArg(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, func(opts *services.ServiceOptions, s *session.Session) error {
			p, err := opts.Products.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := s.Cart.Add(*p, lineSize, lineColor, lineQty); err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), s.Cart)
			return nil
		})
	},
}

var cartSetCmd = &cobra.Command{
	Use:   "set <product-id> <quantity>",
	Short: "Set a line quantity; 0 or less removes the line",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := productArg(args[0])
		if err != nil {
			return err
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		return withSession(cmd, func(_ *services.ServiceOptions, s *session.Session) error {
			if err := s.Cart.UpdateQuantity(id, lineSize, lineColor, qty); err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), s.Cart)
			return nil
		})
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a line from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := productArg(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, func(_ *services.ServiceOptions, s *session.Session) error {
			if err := s.Cart.Remove(id, lineSize, lineColor); err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), s.Cart)
			return nil
		})
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(_ *services.ServiceOptions, s *session.Session) error {
			if err := s.Cart.Clear(); err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), s.Cart)
			return nil
		})
	},
}

var quoteCmd = &cobra.Command{
	Use:   "quote <subtotal>",
	Short: "Show shipping, tax and total for a subtotal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sub, err := decimal.NewFromString(args[0])
		if err != nil {
			return fmt.Errorf("invalid subtotal %q", args[0])
		}
		printQuote(cmd.OutOrStdout(), pricing.Calculate(sub))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cartCmd, quoteCmd)
	cartCmd.AddCommand(cartAddCmd, cartSetCmd, cartRemoveCmd, cartClearCmd)

	for _, c := range []*cobra.Command{cartAddCmd, cartSetCmd, cartRemoveCmd} {
		c.Flags().StringVar(&lineSize, "size", "", "size of the line")
		c.Flags().StringVar(&lineColor, "color", "", "color of the line")
	}
	cartAddCmd.Flags().IntVar(&lineQty, "qty", 1, "units to add")
}

func productArg(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", s)
	}
	return id, nil
}

func printCart(out io.Writer, c *cart.Store) {
	items := c.Items()
	if len(items) == 0 {
		fmt.Fprintln(out, "cart is empty")
	}
	for _, li := range items {
		fmt.Fprintf(out, "%d  %s  %s/%s  %d x %s = %s\n",
			li.ProductID, li.Name, li.Size, li.Color, li.Quantity, li.Price, li.Subtotal())
	}
	fmt.Fprintf(out, "items: %d\n", c.Count())
	printQuote(out, pricing.Calculate(c.Total()))
}

func printQuote(out io.Writer, q pricing.Quote) {
	fmt.Fprintf(out, "subtotal %s  shipping %s  tax %s  total %s\n", q.Subtotal, q.Shipping, q.Tax, q.Total)
}
