package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/bankwallet/internal/market"
	"github.com/Veraticus/bankwallet/internal/market/favorites"
	"github.com/Veraticus/bankwallet/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Lifecycle receives terminal focus transitions.
type Lifecycle interface {
	EnterForeground()
	EnterBackground()
}

type stateMsg struct {
	state favorites.State
}

type statesClosedMsg struct{}

type refreshDoneMsg struct{}

// FavoritesModel is the bubbletea model of the favorites screen.
type FavoritesModel struct {
	ctx       context.Context
	vm        *favorites.ViewModel
	states    <-chan favorites.State
	lifecycle Lifecycle
	theme     themes.Theme
	keymap    KeyMap
	help      help.Model
	spinner   spinner.Model
	cursor    int
	width     int
	quitting  bool
}

// NewFavoritesModel creates the favorites screen. states is a service
// subscription; the model reads it until it is closed.
func NewFavoritesModel(ctx context.Context, vm *favorites.ViewModel, states <-chan favorites.State, lifecycle Lifecycle, theme themes.Theme) FavoritesModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return FavoritesModel{
		ctx:       ctx,
		vm:        vm,
		states:    states,
		lifecycle: lifecycle,
		theme:     theme,
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		spinner:   s,
	}
}

// Init starts the spinner and the state subscription.
func (m FavoritesModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForState(m.states))
}

func waitForState(states <-chan favorites.State) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-states
		if !ok {
			return statesClosedMsg{}
		}
		return stateMsg{state: state}
	}
}

// Update handles messages and updates the model.
func (m FavoritesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.vm.HandleState(msg.state)
		return m, waitForState(m.states)

	case statesClosedMsg:
		return m, nil

	case refreshDoneMsg:
		m.vm.EndRefreshing()
		return m, nil

	case tea.FocusMsg:
		if m.lifecycle != nil {
			m.lifecycle.EnterForeground()
		}
		return m, nil

	case tea.BlurMsg:
		if m.lifecycle != nil {
			m.lifecycle.EnterBackground()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m FavoritesModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	state := m.vm.UIState()
	if state.SortingFieldDialog.Opened {
		options := state.SortingFieldDialog.Select.Options
		switch {
		case key.Matches(msg, m.keymap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keymap.Down):
			if m.cursor < len(options)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keymap.Select):
			if m.cursor >= 0 && m.cursor < len(options) {
				m.vm.OnSelectSortingField(m.ctx, options[m.cursor])
			}
		case key.Matches(msg, m.keymap.Dismiss), key.Matches(msg, m.keymap.Quit):
			m.vm.OnSortingFieldDialogDismiss()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Refresh):
		if state.ViewState != nil && !state.ViewState.IsSuccess() {
			m.vm.OnErrorClick()
		} else {
			m.vm.Refresh()
		}
		return m, tea.Tick(favorites.MinRefreshSpinnerPeriod, func(time.Time) tea.Msg {
			return refreshDoneMsg{}
		})
	case key.Matches(msg, m.keymap.SortBy):
		m.vm.OnClickSortingField()
		m.cursor = max(m.vm.UIState().SortingFieldDialog.Select.SelectedIndex(), 0)
	case key.Matches(msg, m.keymap.MarketField):
		m.vm.OnSelectMarketField(m.ctx, state.MarketField.Next())
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// View renders the UI.
func (m FavoritesModel) View() string {
	if m.quitting {
		return ""
	}

	state := m.vm.UIState()
	var b strings.Builder

	title := m.theme.Header.Render("Watchlist")
	if state.Loading || state.IsRefreshing {
		title += " " + m.spinner.View()
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(m.theme.Subtitle.Render(fmt.Sprintf("Sort: %s  Column: %s", state.SortingField, state.MarketField)))
	b.WriteString("\n\n")

	switch {
	case state.SortingFieldDialog.Opened:
		b.WriteString(m.renderSortingDialog(state.SortingFieldDialog))
	case state.ViewState == nil:
		b.WriteString(m.theme.Subtitle.Render("Loading..."))
	case !state.ViewState.IsSuccess():
		b.WriteString(m.theme.StatusError.Render("Sync error: " + state.ViewState.Err.Error()))
		b.WriteString("\n")
		b.WriteString(m.theme.Help.Render("Press r to retry"))
	case len(state.ViewItems) == 0:
		b.WriteString(m.theme.Subtitle.Render("No favorite coins yet"))
	default:
		b.WriteString(m.renderItems(state.ViewItems))
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keymap))
	return b.String()
}

func (m FavoritesModel) renderItems(items []market.MarketViewItem) string {
	rows := make([]string, 0, len(items))
	for _, item := range items {
		rank := lipgloss.NewStyle().Width(4).Foreground(m.theme.Muted).Render(item.Rank)
		code := m.theme.Bold.Width(8).Render(item.Code)
		name := m.theme.Subtitle.Width(18).Render(item.Name)
		rate := m.theme.Normal.Width(16).Align(lipgloss.Right).Render(item.Rate)
		value := lipgloss.NewStyle().
			Width(12).
			Align(lipgloss.Right).
			Foreground(m.theme.ColorFor(item.Value.Color)).
			Render(item.Value.Value)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rank, code, name, rate, value))
	}
	return strings.Join(rows, "\n")
}

func (m FavoritesModel) renderSortingDialog(dialog favorites.SelectorDialogState) string {
	lines := []string{m.theme.Title.Render("Sort by")}
	for i, option := range dialog.Select.Options {
		label := option.String()
		if option == dialog.Select.Selected {
			label += " ✓"
		}
		if i == m.cursor {
			lines = append(lines, m.theme.Selected.Render("> "+label))
		} else {
			lines = append(lines, m.theme.Normal.Render("  "+label))
		}
	}
	return m.theme.RoundedBox.Render(strings.Join(lines, "\n"))
}
