package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/your-org/store-pilot/internal/config"
	"github.com/your-org/store-pilot/internal/domain/assistant"
	"github.com/your-org/store-pilot/internal/domain/command"
	"github.com/your-org/store-pilot/internal/infrastructure/llm"
)

// llmFactory builds the chat model client; tests swap it out
var llmFactory = func(cfg config.LLMConfig, logger logrus.FieldLogger) assistant.LLM {
	return llm.NewOpenAI(cfg, logger)
}

func newChatCommand(opts *rootOptions) *cobra.Command {
	var maxCalls int

	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Send one message to the shopkeeper assistant",
		Long: `Sends a message to the assistant against a fresh store and prints its
reply and the functions it ran. Needs LLM_API_KEY (read from the
environment or a .env file).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			cfg := config.FromEnv()
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("LLM_API_KEY is required")
			}
			if !cmd.Flags().Changed("max-calls") {
				maxCalls = cfg.LLM.MaxFunctionCalls
			}

			st, err := opts.openStore(cmd.Context(), nil)
			if err != nil {
				return err
			}
			svc, err := assistant.NewService(llmFactory(cfg.LLM, opts.logger), opts.logger,
				assistant.WithMaxFunctionCalls(maxCalls))
			if err != nil {
				return err
			}

			reply, err := svc.Chat(cmd.Context(), st, strings.Join(args, " "), nil)
			if err != nil {
				return err
			}

			calls, err := command.Flatten(reply.ExecutedFunction)
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), reply, func(out io.Writer) {
				fmt.Fprintln(out, reply.Message)
				for _, call := range calls {
					fmt.Fprintf(out, "  -> %s %s\n", call.Name, call.Params)
				}
				if reply.UpdatedState != nil && reply.UpdatedState.Totals.ItemCount > 0 {
					fmt.Fprintf(out, "cart: %d item(s), total %s\n",
						reply.UpdatedState.Totals.ItemCount, reply.UpdatedState.Totals.Total.StringFixed(2))
				}
			})
		},
	}

	cmd.Flags().IntVar(&maxCalls, "max-calls", assistant.DefaultMaxFunctionCalls, "functions the assistant may run")
	return cmd
}
