package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	jwtmw "nautilus/internal/platform/jwt"
	"nautilus/pkg/stockapi"
	"nautilus/pkg/stockclient"
)

// cli carries the resolved configuration into subcommands.
type cli struct {
	cfg config
}

func (c *cli) client() *stockclient.Client {
	return stockclient.New(c.cfg.clientConfig(), nil)
}

func newRootCmd() *cobra.Command {
	var (
		c          = &cli{}
		v          = newViper()
		configPath string
	)
	root := &cobra.Command{
		Use:           "stockctl",
		Short:         "Query charts, closes and signals from the stock API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v, configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default $HOME/.stockctl.yaml)")
	pf.String("base-url", "http://localhost:8080", "stock API base URL")
	pf.String("token", "", "bearer token sent with every request")
	pf.Duration("timeout", 15*time.Second, "request timeout")
	// flags were just registered, binding cannot fail
	_ = bindFlags(v, pf)

	root.AddCommand(
		newStockCmd(c),
		newCloseCmd(c),
		newSignalsCmd(c),
		newTokenCmd(c),
	)
	return root
}

func newStockCmd(c *cli) *cobra.Command {
	var interval string
	cmd := &cobra.Command{
		Use:   "stock ID",
		Short: "Print the OHLC chart of a ticker or company name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := c.client().GetStock(cmd.Context(), args[0], interval)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), body)
		},
	}
	cmd.Flags().StringVar(&interval, "interval", "1Y", "1D, 5D, 60D, 1MO, 3MO, 6MO, YTD, 1Y, 2Y, 5Y, 10Y or MAX")
	return cmd
}

func newCloseCmd(c *cli) *cobra.Command {
	var interval string
	cmd := &cobra.Command{
		Use:   "close ID",
		Short: "Print closing prices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := c.client().GetCloseDataStock(cmd.Context(), args[0], interval)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), body)
		},
	}
	cmd.Flags().StringVar(&interval, "interval", "1Y", "1D, 5D, 60D, 1MO, 3MO, 6MO, YTD, 1Y, 2Y, 5Y, 10Y or MAX")
	return cmd
}

func newSignalsCmd(c *cli) *cobra.Command {
	var table bool
	cmd := &cobra.Command{
		Use:   "signals TICKER",
		Short: "Print 6% move signals and how the price developed afterwards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !table {
				body, err := c.client().GetSignals(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), body)
			}
			report, err := c.client().GetSignalReport(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			writeSignalsTable(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().BoolVar(&table, "table", false, "render as a table")
	return cmd
}

func newTokenCmd(c *cli) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API token signed with the server's JWT secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.cfg.JWTSecret == "" {
				return fmt.Errorf("no signing secret: set STOCKCTL_JWT_SECRET or %s", jwtmw.EnvKeyJWTSecret)
			}
			token, err := jwtmw.NewGenerator(c.cfg.JWTSecret, ttl).GenerateToken(subject)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "stockctl", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSignalsTable(w io.Writer, r *stockapi.SignalsResponse) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Date", "One Month", "Three Months", "Half Year"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, s := range r.Data {
		table.Append([]string{s.Date, movementCell(s.OneMonth), movementCell(s.ThreeMonths), movementCell(s.HalfYear)})
	}
	table.Render()
}

func movementCell(m stockapi.Movement) string {
	switch {
	case m.Rise != "":
		return "+" + m.Rise
	case m.Drop != "":
		return "-" + m.Drop
	default:
		return "n/a"
	}
}
