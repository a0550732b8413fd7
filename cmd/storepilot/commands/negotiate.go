package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/your-org/store-pilot/internal/domain/negotiation"
)

func newNegotiateCommand(opts *rootOptions) *cobra.Command {
	var (
		productID int
		seed      uint64
		cart      []int
	)

	cmd := &cobra.Command{
		Use:   "negotiate <request>",
		Short: "Ask the shopkeeper for a discount",
		Long: `Runs one negotiation the way the chat assistant would. Without --product
the target comes from the request text, then the cart. --seed makes the
discount draw repeatable.`,
		Example: `  storepilot negotiate --product 1 "it's my birthday!"
  storepilot negotiate --seed 7 "student discount on the leather bag?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var random negotiation.RandomSource
			if cmd.Flags().Changed("seed") {
				random = negotiation.NewSeededRandom(seed)
			}
			st, err := opts.openStore(cmd.Context(), random)
			if err != nil {
				return err
			}
			for _, id := range cart {
				if res := st.AddToCart(id); res.Err() != nil {
					return res.Err()
				}
			}

			var target *int
			if productID > 0 {
				target = &productID
			}

			result := st.NegotiateDiscount(strings.Join(args, " "), target)
			if err := result.Err(); err != nil {
				return err
			}

			return opts.render(cmd.OutOrStdout(), result, func(out io.Writer) {
				fmt.Fprintln(out, result.Message)
				if result.Product != nil && result.Product.DiscountedPrice != nil {
					fmt.Fprintf(out, "%s: %s -> %s\n", result.Product.Name,
						result.Product.OriginalPrice.StringFixed(2), result.Product.DiscountedPrice.StringFixed(2))
				}
				totals := st.Totals()
				if totals.Coupon != nil {
					fmt.Fprintf(out, "cart total %s (coupon %s)\n", totals.Total.StringFixed(2), totals.Coupon.Code)
				}
			})
		},
	}

	cmd.Flags().IntVarP(&productID, "product", "p", 0, "product ID to haggle over")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for the discount draw")
	cmd.Flags().IntSliceVar(&cart, "cart", nil, "product IDs to put in the cart first")
	return cmd
}
