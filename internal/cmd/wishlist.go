package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeMC777/stylehub-storefront/internal/services"
	"github.com/MikeMC777/stylehub-storefront/internal/session"
)

var wishlistCmd = &cobra.Command{
	Use:   "wishlist",
	Short: "Show the session wishlist",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(_ *services.ServiceOptions, s *session.Session) error {
			printProducts(cmd.OutOrStdout(), s.Wishlist.Items())
			return nil
		})
	},
}

var wishlistToggleCmd = &cobra.Command{
	Use:   "toggle <product-id>",
	Short: "Save or unsave a product",
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
			in, err := s.Wishlist.Toggle(*p)
			if err != nil {
				return err
			}
			if in {
				fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", p.Name)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", p.Name)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(wishlistCmd)
	wishlistCmd.AddCommand(wishlistToggleCmd)
}
