package main

import (
	"context"
	"fmt"
	"io"

	"github.com/Veraticus/bankwallet/internal/cli"
	"github.com/Veraticus/bankwallet/internal/currency"
	"github.com/spf13/cobra"
)

func currencyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "currency",
		Short: "Manage the base currency",
		Long:  `Show or change the fiat currency used for market data and balances.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show the base currency",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCurrencyManager(cmd.Context(), func(m *currency.Manager) error {
				runCurrencyGet(cmd.OutOrStdout(), m)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <code>",
		Short: "Change the base currency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCurrencyManager(cmd.Context(), func(m *currency.Manager) error {
				return runCurrencySet(cmd.Context(), cmd.OutOrStdout(), m, args[0])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List supported currencies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCurrencyManager(cmd.Context(), func(m *currency.Manager) error {
				runCurrencyList(cmd.OutOrStdout(), m)
				return nil
			})
		},
	})

	return cmd
}

func withCurrencyManager(ctx context.Context, fn func(*currency.Manager) error) error {
	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	manager, err := newCurrencyManager(ctx, store)
	if err != nil {
		return err
	}
	return fn(manager)
}

func runCurrencyGet(out io.Writer, m *currency.Manager) {
	c := m.BaseCurrency()
	fmt.Fprintln(out, cli.RenderBox("Base currency", fmt.Sprintf("%s (%s)", c.Code, c.Symbol)))
}

func runCurrencySet(ctx context.Context, out io.Writer, m *currency.Manager, code string) error {
	if err := m.SetBaseCurrency(ctx, code); err != nil {
		return err
	}
	fmt.Fprintln(out, cli.FormatSuccess("Base currency set to "+m.BaseCurrency().Code))
	return nil
}

func runCurrencyList(out io.Writer, m *currency.Manager) {
	base := m.BaseCurrency()
	rows := make([][]string, 0, len(m.Currencies()))
	for _, c := range m.Currencies() {
		marker := ""
		if c == base {
			marker = cli.SuccessIcon
		}
		rows = append(rows, []string{c.Code, c.Symbol, marker})
	}
	fmt.Fprintln(out, cli.RenderTable([]string{"CODE", "SYMBOL", "BASE"}, rows))
}
