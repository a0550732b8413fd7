package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/your-org/store-pilot/internal/domain/store"
)

func newSearchCommand(opts *rootOptions) *cobra.Command {
	var category, order string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore(cmd.Context(), nil)
			if err != nil {
				return err
			}

			result := st.SearchProducts(strings.Join(args, " "))
			if err := result.Err(); err != nil {
				return err
			}
			if category != "" {
				if filtered := st.FilterCategory(category); filtered.Err() != nil {
					return filtered.Err()
				}
			}
			if order != "" {
				if sorted := st.SortProducts(order); sorted.Err() != nil {
					return sorted.Err()
				}
			}

			visible := st.VisibleProducts()
			return opts.render(cmd.OutOrStdout(), visible, func(out io.Writer) {
				fmt.Fprintf(out, "%d result(s) for %q\n", len(visible), result.Query)
				printProducts(out, visible)
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "narrow results to a category")
	cmd.Flags().StringVar(&order, "sort", "", `sort by price, "asc" or "desc"`)
	return cmd
}

func newLookupCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <name>",
		Short: "Resolve a product by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore(cmd.Context(), nil)
			if err != nil {
				return err
			}

			result := st.LookupProduct(strings.Join(args, " "))
			if err := result.Err(); err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), result.Product, func(out io.Writer) {
				p := result.Product
				fmt.Fprintf(out, "%d  %s  %s\n%s\n", p.ID, p.Name, p.Price.StringFixed(2), p.Description)
			})
		},
	}
}

func newRecommendCommand(opts *rootOptions) *cobra.Command {
	var viewed, carted []int

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Suggest products based on viewed and carted ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore(cmd.Context(), nil)
			if err != nil {
				return err
			}

			for _, id := range viewed {
				if res := st.NavigateToProduct(id); res.Err() != nil {
					return res.Err()
				}
			}
			for _, id := range carted {
				if res := st.AddToCart(id); res.Err() != nil {
					return res.Err()
				}
			}
			st.NavigateTo(string(store.PageHome), nil)

			result := st.RecommendProducts()
			return opts.render(cmd.OutOrStdout(), result.Products, func(out io.Writer) {
				fmt.Fprintln(out, result.Message)
				printProducts(out, result.Products)
			})
		},
	}

	cmd.Flags().IntSliceVar(&viewed, "viewed", nil, "product IDs the shopper looked at")
	cmd.Flags().IntSliceVar(&carted, "cart", nil, "product IDs in the cart")
	return cmd
}
