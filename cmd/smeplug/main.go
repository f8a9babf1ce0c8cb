// Command smeplug calls the SmePlug API from the shell. Results are printed
// as indented JSON on stdout; progress and errors go to stderr.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/aimtoget/smeplug-go/client"
)

// globals holds the persistent flags shared by every sub-command.
type globals struct {
	apiKey  string
	baseURL string
	timeout time.Duration
	debug   bool
}

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		if msg := client.Message(err); msg != "" {
			color.New(color.FgRed).Fprintf(os.Stderr, "SmePlug rejected the request: %s\n", msg)
		}
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:           "smeplug",
		Short:         "Buy airtime and data, and send bank transfers through SmePlug",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        cmd.ErrOrStderr(),
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})
			if g.debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.apiKey, "api-key", os.Getenv("SMEPLUG_API_KEY"), "SmePlug API key (env SMEPLUG_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&g.baseURL, "base-url", getEnv("SMEPLUG_BASE_URL", client.DefaultBaseURL), "API base URL")
	rootCmd.PersistentFlags().DurationVar(&g.timeout, "timeout", client.DefaultTimeout, "Per-request timeout")
	rootCmd.PersistentFlags().BoolVarP(&g.debug, "debug", "d", false, "Log HTTP traffic")

	rootCmd.AddCommand(newNetworksCmd(g))
	rootCmd.AddCommand(newDataPlansCmd(g))
	rootCmd.AddCommand(newBuyDataCmd(g))
	rootCmd.AddCommand(newBuyAirtimeCmd(g))
	rootCmd.AddCommand(newBanksCmd(g))
	rootCmd.AddCommand(newResolveAccountCmd(g))
	rootCmd.AddCommand(newTransferCmd(g))

	return rootCmd
}

func (g *globals) client() (*client.Client, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("an API key is required: pass --api-key or set SMEPLUG_API_KEY")
	}
	return client.New(g.apiKey,
		client.WithBaseURL(g.baseURL),
		client.WithHTTPTimeout(g.timeout),
		client.WithDebugLogging(g.debug),
	)
}

// run builds the client, calls fn and prints its result.
func run[T any](cmd *cobra.Command, g *globals, op string, fn func(context.Context, *client.Client) (T, error)) error {
	c, err := g.client()
	if err != nil {
		return err
	}

	start := time.Now()
	out, err := fn(cmd.Context(), c)
	elapsed := time.Since(start)
	if err != nil {
		log.Debug().Err(err).Str("op", op).Dur("elapsed", elapsed).Msg("call failed")
		return err
	}
	log.Debug().Str("op", op).Dur("elapsed", elapsed).Msg("call completed")

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func newNetworksCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List mobile networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, g, "networks", func(ctx context.Context, c *client.Client) (client.Object, error) {
				return c.GetNetworks(ctx)
			})
		},
	}
}

func newDataPlansCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "data-plans",
		Short: "List data plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, g, "data-plans", func(ctx context.Context, c *client.Client) (client.Object, error) {
				return c.GetDataPlans(ctx)
			})
		},
	}
}

func newBuyDataCmd(g *globals) *cobra.Command {
	var networkID, planID, phone, reference string
	var async bool

	cmd := &cobra.Command{
		Use:   "buy-data",
		Short: "Purchase a data plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := client.PurchaseDataRequest{
				NetworkID:         networkID,
				PlanID:            planID,
				Phone:             phone,
				CustomerReference: referenceOrNew(cmd, reference),
			}
			if cmd.Flags().Changed("async") {
				req.Async = &async
			}
			return run(cmd, g, "buy-data", func(ctx context.Context, c *client.Client) (client.Object, error) {
				return c.PurchaseDataPlan(ctx, req)
			})
		},
	}

	cmd.Flags().StringVar(&networkID, "network", "", "Network ID (required)")
	cmd.Flags().StringVar(&planID, "plan", "", "Plan ID (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "Recipient phone number (required)")
	cmd.Flags().StringVar(&reference, "reference", "", "Customer reference (generated when empty)")
	cmd.Flags().BoolVar(&async, "async", false, "Ask the provider to process the purchase asynchronously")
	_ = cmd.MarkFlagRequired("network")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

func newBuyAirtimeCmd(g *globals) *cobra.Command {
	var networkID, amount, phone, reference string

	cmd := &cobra.Command{
		Use:   "buy-airtime",
		Short: "Purchase airtime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := parseAmount(amount)
			if err != nil {
				return err
			}
			req := client.PurchaseAirtimeRequest{
				NetworkID:         networkID,
				Amount:            amt,
				Phone:             phone,
				CustomerReference: referenceOrNew(cmd, reference),
			}
			return run(cmd, g, "buy-airtime", func(ctx context.Context, c *client.Client) (client.Object, error) {
				return c.PurchaseAirtime(ctx, req)
			})
		},
	}

	cmd.Flags().StringVar(&networkID, "network", "", "Network ID (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount in naira (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "Recipient phone number (required)")
	cmd.Flags().StringVar(&reference, "reference", "", "Customer reference (generated when empty)")
	_ = cmd.MarkFlagRequired("network")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

func newBanksCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List banks that accept transfers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, g, "banks", func(ctx context.Context, c *client.Client) ([]client.Object, error) {
				return c.GetTransferBanksList(ctx)
			})
		},
	}
}

func newResolveAccountCmd(g *globals) *cobra.Command {
	var bankCode, account string

	cmd := &cobra.Command{
		Use:   "resolve-account",
		Short: "Look up the name on a bank account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, g, "resolve-account", func(ctx context.Context, c *client.Client) (string, error) {
				return c.ResolveAccountDetails(ctx, bankCode, account)
			})
		},
	}

	cmd.Flags().StringVar(&bankCode, "bank-code", "", "Bank code (required)")
	cmd.Flags().StringVar(&account, "account", "", "Account number (required)")
	_ = cmd.MarkFlagRequired("bank-code")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func newTransferCmd(g *globals) *cobra.Command {
	var bankCode, account, amount, description, reference string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Send money to a bank account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := parseAmount(amount)
			if err != nil {
				return err
			}
			req := client.BankTransferRequest{
				BankCode:          bankCode,
				AccountNumber:     account,
				Amount:            amt,
				Description:       description,
				CustomerReference: referenceOrNew(cmd, reference),
			}
			return run(cmd, g, "transfer", func(ctx context.Context, c *client.Client) (client.Object, error) {
				return c.BankTransfer(ctx, req)
			})
		},
	}

	cmd.Flags().StringVar(&bankCode, "bank-code", "", "Bank code (required)")
	cmd.Flags().StringVar(&account, "account", "", "Account number (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount in naira (required)")
	cmd.Flags().StringVar(&description, "description", "", "Narration shown to the recipient")
	cmd.Flags().StringVar(&reference, "reference", "", "Customer reference (generated when empty)")
	_ = cmd.MarkFlagRequired("bank-code")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

// referenceOrNew returns ref, or a fresh reference announced on stderr so a
// failed purchase can be retried under the same one.
func referenceOrNew(cmd *cobra.Command, ref string) string {
	if ref != "" {
		return ref
	}
	ref = client.NewCustomerReference()
	color.New(color.FgCyan).Fprintf(cmd.ErrOrStderr(), "customer reference: %s\n", ref)
	return ref
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
