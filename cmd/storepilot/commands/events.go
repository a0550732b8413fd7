package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/your-org/store-pilot/internal/infrastructure/messaging"
	"github.com/your-org/store-pilot/internal/infrastructure/messaging/kafka"
)

// subscriberFactory connects to the event stream; tests swap it out
var subscriberFactory = func(brokers []string, opts *rootOptions) (messaging.Subscriber, func() error) {
	broker := kafka.NewBroker(brokers, opts.logger)
	return broker, broker.Close
}

func newEventsCommand(opts *rootOptions) *cobra.Command {
	var (
		brokers []string
		topic   string
		group   string
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Tail negotiation events from Kafka",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(brokers) == 0 {
				return fmt.Errorf("at least one broker is required")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sub, closeFn := subscriberFactory(brokers, opts)
			defer closeFn()

			out := cmd.OutOrStdout()
			sub.Consume(ctx, topic, group, func(_ context.Context, payload []byte) error {
				event, err := messaging.DecodeNegotiationEvent(payload)
				if err != nil {
					return err
				}
				return opts.render(out, event, func(w io.Writer) {
					printEvent(w, event)
				})
			})
			return nil
		},
	}

	defaultBrokers := strings.Split(os.Getenv("KAFKA_BROKERS"), ",")
	if defaultBrokers[0] == "" {
		defaultBrokers = []string{"localhost:9092"}
	}
	cmd.Flags().StringSliceVar(&brokers, "brokers", defaultBrokers, "Kafka brokers")
	cmd.Flags().StringVar(&topic, "topic", "negotiations", "negotiation topic")
	cmd.Flags().StringVar(&group, "group", "storepilot-cli", "consumer group")
	return cmd
}

func printEvent(w io.Writer, event messaging.NegotiationEvent) {
	r := event.Record
	verdict := "refused"
	if r.Approved {
		verdict = fmt.Sprintf("approved %d%%", r.DiscountPercent)
	}
	if r.PriceIncreasePercent > 0 {
		verdict = fmt.Sprintf("penalty +%d%%", r.PriceIncreasePercent)
	}
	fmt.Fprintf(w, "%s  session=%s  product=%d  %s  (%s) %q\n",
		r.Timestamp.Format("15:04:05"), r.SessionID, r.ProductID, verdict, r.Reason, r.Request)
}
