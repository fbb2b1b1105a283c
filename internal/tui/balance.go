package tui

import (
	"strings"

	"github.com/Veraticus/bankwallet/internal/balance"
	"github.com/Veraticus/bankwallet/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

const accountSwitcherGlyph = "▾"

// RenderBalance renders the account header and its coin balances.
func RenderBalance(screen balance.ScreenViewItem, theme themes.Theme) string {
	name := screen.Account.Name + " " + accountSwitcherGlyph
	if screen.Account.Watch {
		name += " " + theme.Help.Render("(watch)")
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		theme.Subtitle.Render(name),
		theme.Title.Render(screen.Header.Total),
	)
	header = theme.RoundedBox.Render(header)

	if screen.IsEmpty() {
		return lipgloss.JoinVertical(lipgloss.Left, header, theme.Subtitle.Render("No coins in this wallet"))
	}

	rows := make([]string, 0, len(screen.Items))
	for _, item := range screen.Items {
		code := theme.Bold.Width(8).Render(item.Code)
		name := theme.Subtitle.Width(18).Render(item.Name)
		diff := lipgloss.NewStyle().Width(10).Align(lipgloss.Right).Render(theme.Value(item.Diff))
		coin := theme.Normal.Width(22).Align(lipgloss.Right).Render(item.CoinValue)
		fiat := lipgloss.NewStyle().Width(16).Align(lipgloss.Right).Render(theme.Value(item.FiatValue))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, code, name, diff, coin, fiat))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, strings.Join(rows, "\n"))
}
