package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/bankwallet/internal/transactions"
	"github.com/Veraticus/bankwallet/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

const dateLayout = "Jan 02, 15:04"

// RenderTransactions renders a transaction list.
func RenderTransactions(items []transactions.TransactionViewItem, theme themes.Theme) string {
	if len(items) == 0 {
		return theme.Subtitle.Render("No transactions")
	}

	rows := make([]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, renderTransaction(item, theme))
	}
	return strings.Join(rows, "\n")
}

func renderTransaction(item transactions.TransactionViewItem, theme themes.Theme) string {
	icon := lipgloss.NewStyle().
		Width(3).
		Foreground(theme.Primary).
		Render(themes.GetIcon(string(item.Icon)))

	title := theme.Bold.Render(item.Title)
	if item.Progress != nil {
		title += " " + lipgloss.NewStyle().Foreground(theme.Warning).Render(fmt.Sprintf("%d%%", *item.Progress))
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		title,
		theme.Subtitle.Render(item.Subtitle),
	)
	left = lipgloss.NewStyle().Width(40).Render(left)

	right := lipgloss.JoinVertical(lipgloss.Right,
		theme.Value(item.PrimaryValue)+flags(item, theme),
		theme.Value(item.SecondaryValue),
	)
	right = lipgloss.NewStyle().Width(28).Align(lipgloss.Right).Render(right)

	date := lipgloss.NewStyle().Width(14).Foreground(theme.Muted).Render(item.Date.Format(dateLayout))

	return lipgloss.JoinHorizontal(lipgloss.Top, icon, left, right, " ", date)
}

func flags(item transactions.TransactionViewItem, theme themes.Theme) string {
	var marks []string
	if item.SentToSelf {
		marks = append(marks, "⟲")
	}
	if item.DoubleSpend {
		marks = append(marks, lipgloss.NewStyle().Foreground(theme.Error).Render("⚠"))
	}
	if item.Locked != nil {
		if *item.Locked {
			marks = append(marks, "🔒")
		} else {
			marks = append(marks, "🔓")
		}
	}
	if len(marks) == 0 {
		return ""
	}
	return " " + strings.Join(marks, " ")
}
