package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/bankwallet/internal/cli"
	"github.com/Veraticus/bankwallet/internal/common"
	"github.com/Veraticus/bankwallet/internal/lifecycle"
	"github.com/Veraticus/bankwallet/internal/market"
	"github.com/Veraticus/bankwallet/internal/market/favorites"
	"github.com/Veraticus/bankwallet/internal/model"
	"github.com/Veraticus/bankwallet/internal/tui"
	"github.com/spf13/cobra"
)

func favoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav", "watchlist"},
		Short:   "Manage the favorite coins watchlist",
		Long:    `List, add and remove favorite coins, or watch them live in the terminal UI.`,
	}

	cmd.AddCommand(favoritesListCmd())
	cmd.AddCommand(favoritesAddCmd())
	cmd.AddCommand(favoritesRemoveCmd())
	cmd.AddCommand(favoritesWatchCmd())

	return cmd
}

func favoritesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show market data for favorite coins",
		Long: `Fetch market data for every favorite coin and print it sorted.

Without --sort or --field the last choice made in the watch screen is used.
Sorting fields: ` + strings.Join(sortingFieldKeys(), ", ") + `.
Columns: price_diff, market_cap, volume.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sortKey, _ := cmd.Flags().GetString("sort")
			fieldKey, _ := cmd.Flags().GetString("field")

			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			repo, err := newFavoritesRepository(store)
			if err != nil {
				return err
			}
			manager, err := newCurrencyManager(ctx, store)
			if err != nil {
				return err
			}
			menu := favorites.NewMenuService(store)

			sortingField := menu.SortingField(ctx)
			if sortKey != "" {
				if sortingField, err = market.ParseSortingField(sortKey); err != nil {
					return err
				}
			}
			marketField := menu.MarketField(ctx)
			if fieldKey != "" {
				if marketField, err = market.ParseMarketField(fieldKey); err != nil {
					return err
				}
			}

			svc := favorites.NewService(repo, manager, lifecycle.NewBackgroundManager(), sortingField)
			return runFavoritesList(ctx, cmd.OutOrStdout(), svc, marketField)
		},
	}

	cmd.Flags().String("sort", "", "Sorting field")
	cmd.Flags().String("field", "", "Trailing column")

	return cmd
}

func sortingFieldKeys() []string {
	keys := make([]string, 0, len(market.SortingFields))
	for _, f := range market.SortingFields {
		keys = append(keys, f.Key())
	}
	return keys
}

// fetchOnce runs svc until its first fetch settles.
func fetchOnce(ctx context.Context, svc *favorites.Service) ([]market.MarketItem, error) {
	states, unsubscribe := svc.Subscribe()
	defer unsubscribe()

	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	defer svc.Stop()

	for {
		select {
		case state, ok := <-states:
			if !ok {
				return nil, errors.New("favorites state stream closed")
			}
			switch state.Kind {
			case model.DataSuccess:
				return state.Data, nil
			case model.DataError:
				return nil, state.Err
			case model.DataLoading:
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func runFavoritesList(ctx context.Context, out io.Writer, svc *favorites.Service, field market.MarketField) error {
	items, err := fetchOnce(ctx, svc)
	if err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}

	if len(items) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No favorite coins yet, add one with 'wallet favorites add <coin-uid>'"))
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, view := range market.NewMarketViewItems(items, field, newFormatter()) {
		rows = append(rows, []string{view.Rank, view.Code, view.Name, view.Rate, view.Value.Value})
	}
	headers := []string{"#", "CODE", "NAME", "RATE", strings.ToUpper(field.String())}
	fmt.Fprintln(out, cli.FormatTitle("Favorites sorted by "+svc.SortingField().String()))
	fmt.Fprintln(out, cli.RenderTable(headers, rows))
	return nil
}

type favoritesEditor interface {
	Add(ctx context.Context, coinUID string) error
	Remove(ctx context.Context, coinUID string) error
}

func favoritesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <coin-uid>...",
		Short: "Add coins to favorites",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withFavoritesEditor(cmd.Context(), func(editor favoritesEditor) error {
				return runFavoritesAdd(cmd.Context(), cmd.OutOrStdout(), editor, args)
			})
		},
	}
}

func favoritesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <coin-uid>...",
		Short: "Remove coins from favorites",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withFavoritesEditor(cmd.Context(), func(editor favoritesEditor) error {
				return runFavoritesRemove(cmd.Context(), cmd.OutOrStdout(), editor, args)
			})
		},
	}
}

func withFavoritesEditor(ctx context.Context, fn func(favoritesEditor) error) error {
	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	repo, err := newFavoritesRepository(store)
	if err != nil {
		return err
	}
	return fn(repo)
}

func runFavoritesAdd(ctx context.Context, out io.Writer, editor favoritesEditor, uids []string) error {
	for _, uid := range uids {
		err := editor.Add(ctx, uid)
		switch {
		case errors.Is(err, common.ErrDuplicateEntry):
			fmt.Fprintln(out, cli.FormatWarning(uid+" is already a favorite"))
		case err != nil:
			return fmt.Errorf("failed to add %s: %w", uid, err)
		default:
			fmt.Fprintln(out, cli.FormatSuccess("Added "+uid))
		}
	}
	return nil
}

func runFavoritesRemove(ctx context.Context, out io.Writer, editor favoritesEditor, uids []string) error {
	for _, uid := range uids {
		err := editor.Remove(ctx, uid)
		switch {
		case errors.Is(err, common.ErrNotFound):
			fmt.Fprintln(out, cli.FormatWarning(uid+" is not a favorite"))
		case err != nil:
			return fmt.Errorf("failed to remove %s: %w", uid, err)
		default:
			fmt.Fprintln(out, cli.FormatSuccess("Removed "+uid))
		}
	}
	return nil
}

func favoritesWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch favorites live",
		Long: `Open the favorites screen. Data refreshes when the base currency or the
favorites change and when the terminal regains focus.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			repo, err := newFavoritesRepository(store)
			if err != nil {
				return err
			}
			manager, err := newCurrencyManager(ctx, store)
			if err != nil {
				return err
			}

			bg := lifecycle.NewBackgroundManager()
			menu := favorites.NewMenuService(store)
			svc := favorites.NewService(repo, manager, bg, menu.SortingField(ctx))
			vm := favorites.NewViewModel(ctx, svc, menu, newFormatter())

			return tui.RunFavorites(ctx, tui.FavoritesConfig{
				Service:   svc,
				ViewModel: vm,
				Lifecycle: bg,
				Theme:     selectedTheme(),
			})
		},
	}
}
