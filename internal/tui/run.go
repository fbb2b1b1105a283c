package tui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Veraticus/bankwallet/internal/market/favorites"
	"github.com/Veraticus/bankwallet/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
)

// FavoritesConfig holds the dependencies of the favorites screen.
type FavoritesConfig struct {
	Service   *favorites.Service
	ViewModel *favorites.ViewModel
	Lifecycle Lifecycle
	Theme     themes.Theme
}

// RunFavorites starts the favorites service and runs the screen until the
// user quits or ctx is canceled.
func RunFavorites(ctx context.Context, cfg FavoritesConfig) error {
	if cfg.Service == nil {
		return fmt.Errorf("favorites service is required")
	}
	if cfg.ViewModel == nil {
		return fmt.Errorf("favorites view model is required")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	states, unsubscribe := cfg.Service.Subscribe()
	defer unsubscribe()

	if err := cfg.ViewModel.Start(ctx); err != nil {
		return fmt.Errorf("failed to start favorites: %w", err)
	}
	defer cfg.ViewModel.Close()

	model := NewFavoritesModel(ctx, cfg.ViewModel, states, cfg.Lifecycle, cfg.Theme)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)

	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
