package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/bankwallet/internal/balance"
	"github.com/Veraticus/bankwallet/internal/currency"
	"github.com/Veraticus/bankwallet/internal/tui"
	"github.com/Veraticus/bankwallet/internal/tui/themes"
	"github.com/spf13/cobra"
)

func balanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance <snapshot.json>",
		Short: "Show an account's balances",
		Long:  `Render the balance screen for an account snapshot: the header total and one row per coin.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open snapshot: %w", err)
			}
			defer func() { _ = f.Close() }()

			return runBalance(cmd.OutOrStdout(), f, selectedTheme())
		},
	}

	return cmd
}

func runBalance(out io.Writer, in io.Reader, theme themes.Theme) error {
	snapshot, err := balance.DecodeSnapshot(in)
	if err != nil {
		return err
	}

	code := snapshot.Currency
	if code == "" {
		code = defaultCurrencyCode
	}
	cur, err := currency.Lookup(code)
	if err != nil {
		return err
	}

	screen := balance.NewBuilder(newFormatter()).BuildScreen(snapshot.Account, snapshot.Balances, cur, snapshot.Hidden)
	fmt.Fprintln(out, tui.RenderBalance(screen, theme))
	return nil
}
