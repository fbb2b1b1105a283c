package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Veraticus/bankwallet/internal/transactions"
	"github.com/Veraticus/bankwallet/internal/tui"
	"github.com/Veraticus/bankwallet/internal/tui/themes"
	"github.com/spf13/cobra"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions <export.json>",
		Short: "Show transaction history from an export",
		Long: `Decode a JSON transaction export and render the history the way the
wallet shows it: direction, counterparty, amounts and confirmation progress.

Known counterparties are shown by name. Add more with --name address=Name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, _ := cmd.Flags().GetStringSlice("name")

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open export: %w", err)
			}
			defer func() { _ = f.Close() }()

			return runTransactions(cmd.OutOrStdout(), f, names, selectedTheme())
		},
	}

	cmd.Flags().StringSlice("name", nil, "Display name for an address (address=Name), repeatable")

	return cmd
}

func runTransactions(out io.Writer, in io.Reader, names []string, theme themes.Theme) error {
	book := transactions.DefaultAddressBook()
	for _, entry := range names {
		address, name, ok := strings.Cut(entry, "=")
		if !ok || address == "" || name == "" {
			return fmt.Errorf("invalid --name %q, expected address=Name", entry)
		}
		book.Add(address, name)
	}

	items, err := transactions.DecodeItems(in)
	if err != nil {
		return err
	}

	factory := transactions.NewFactory(newFormatter(), newTranslator(), book)
	fmt.Fprintln(out, tui.RenderTransactions(factory.ConvertAll(items), theme))
	return nil
}
