// Package commands implements the storepilot command line tool, which runs
// store operations against a local catalog file.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/your-org/store-pilot/internal/domain/catalog"
	"github.com/your-org/store-pilot/internal/domain/negotiation"
	"github.com/your-org/store-pilot/internal/domain/store"
)

type rootOptions struct {
	catalogPath string
	jsonOutput  bool
	verbose     bool
	logger      *logrus.Logger
}

// NewRootCommand builds the storepilot command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{logger: logrus.New()}

	rootCmd := &cobra.Command{
		Use:   "storepilot",
		Short: "Store Pilot - query and haggle with the storefront from a terminal",
		Long: `storepilot runs the storefront's search, lookup, negotiation and
recommendation logic against a local catalog file, talks to the shopkeeper
assistant, and tails the negotiation event stream.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.logger.SetOutput(cmd.ErrOrStderr())
			opts.logger.SetLevel(logrus.WarnLevel)
			if opts.verbose {
				opts.logger.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
	}

	defaultCatalog := os.Getenv("CATALOG_PATH")
	if defaultCatalog == "" {
		defaultCatalog = "data/products.yaml"
	}
	rootCmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", defaultCatalog, "catalog file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(
		newSearchCommand(opts),
		newLookupCommand(opts),
		newNegotiateCommand(opts),
		newRecommendCommand(opts),
		newChatCommand(opts),
		newEventsCommand(opts),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// openStore loads the catalog and builds a fresh in-memory store
func (o *rootOptions) openStore(ctx context.Context, random negotiation.RandomSource) (*store.Store, error) {
	c, err := catalog.LoadFile(o.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if random == nil {
		random = negotiation.DefaultRandom()
	}
	return store.New(ctx, c, store.WithLogger(o.logger), store.WithRandom(random)), nil
}

// render prints v as indented JSON when --json is set, otherwise calls text
func (o *rootOptions) render(out io.Writer, v any, text func(io.Writer)) error {
	if o.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(out)
	return nil
}

func printProducts(out io.Writer, products []catalog.Product) {
	for _, p := range products {
		fmt.Fprintf(out, "%4d  %-28s %10s  %-12s %.1f\n", p.ID, p.Name, p.Price.StringFixed(2), p.Category, p.Rating)
	}
}
