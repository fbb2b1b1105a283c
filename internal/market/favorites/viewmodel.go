package favorites

import (
	"context"
	"log/slog"
	"time"

	"github.com/Veraticus/bankwallet/internal/format"
	"github.com/Veraticus/bankwallet/internal/market"
	"github.com/Veraticus/bankwallet/internal/model"
)

// MinRefreshSpinnerPeriod keeps the pull-to-refresh indicator visible long
// enough to be noticed.
const MinRefreshSpinnerPeriod = time.Second

// SelectorDialogState describes the sorting field picker.
type SelectorDialogState struct {
	Select market.Select[market.SortingField]
	Opened bool
}

// UIState is a snapshot of everything the favorites screen renders.
type UIState struct {
	ViewState          *model.ViewState
	ViewItems          []market.MarketViewItem
	SortingFieldDialog SelectorDialogState
	SortingField       market.SortingField
	MarketField        market.MarketField
	Loading            bool
	IsRefreshing       bool
}

// ViewModel derives the favorites screen state from the service. It is not
// safe for concurrent use; the UI loop owns it and feeds it service states
// through HandleState.
type ViewModel struct {
	service   *Service
	menu      *MenuService
	formatter *format.NumberFormatter
	logger    *slog.Logger

	items []market.MarketItem
	state UIState
}

// NewViewModel creates a view model using the persisted market field.
func NewViewModel(ctx context.Context, svc *Service, menu *MenuService, formatter *format.NumberFormatter) *ViewModel {
	vm := &ViewModel{
		service:   svc,
		menu:      menu,
		formatter: formatter,
		logger:    slog.Default().With("component", "favorites_view_model"),
	}
	vm.state.SortingField = svc.SortingField()
	vm.state.MarketField = menu.MarketField(ctx)
	vm.HandleState(svc.State())
	return vm
}

// Start starts the underlying service.
func (vm *ViewModel) Start(ctx context.Context) error {
	return vm.service.Start(ctx)
}

// Close stops the underlying service.
func (vm *ViewModel) Close() {
	vm.service.Stop()
}

// UIState returns the current screen state.
func (vm *ViewModel) UIState() UIState {
	return vm.state
}

// HandleState applies a service state.
func (vm *ViewModel) HandleState(state State) {
	vm.state.Loading = state.IsLoading()

	switch state.Kind {
	case model.DataSuccess:
		vm.items = state.Data
		vm.state.ViewState = &model.ViewState{}
		vm.syncViewItems()
	case model.DataError:
		vm.state.ViewState = &model.ViewState{Err: state.Err}
	case model.DataLoading:
	}
}

// Refresh requests a forced refetch and shows the refresh indicator. The
// caller ends the indicator with EndRefreshing after MinRefreshSpinnerPeriod.
func (vm *ViewModel) Refresh() {
	vm.state.IsRefreshing = true
	vm.service.Refresh()
}

// EndRefreshing hides the refresh indicator.
func (vm *ViewModel) EndRefreshing() {
	vm.state.IsRefreshing = false
}

// OnErrorClick retries after a failed fetch.
func (vm *ViewModel) OnErrorClick() {
	vm.Refresh()
}

// OnClickSortingField opens the sorting field picker.
func (vm *ViewModel) OnClickSortingField() {
	vm.state.SortingFieldDialog = SelectorDialogState{
		Opened: true,
		Select: market.NewSelect(vm.state.SortingField, market.SortingFields),
	}
}

// OnSelectSortingField persists field, reorders the list and closes the picker.
func (vm *ViewModel) OnSelectSortingField(ctx context.Context, field market.SortingField) {
	if err := vm.menu.SetSortingField(ctx, field); err != nil {
		vm.logger.Warn("Failed to persist sorting field", "error", err)
	}
	vm.state.SortingField = field
	vm.state.SortingFieldDialog = SelectorDialogState{}
	vm.service.SetSortingField(field)
}

// OnSelectMarketField persists field and re-renders the current items.
func (vm *ViewModel) OnSelectMarketField(ctx context.Context, field market.MarketField) {
	if err := vm.menu.SetMarketField(ctx, field); err != nil {
		vm.logger.Warn("Failed to persist market field", "error", err)
	}
	vm.state.MarketField = field
	vm.syncViewItems()
}

// OnSortingFieldDialogDismiss closes the picker without changes.
func (vm *ViewModel) OnSortingFieldDialogDismiss() {
	vm.state.SortingFieldDialog = SelectorDialogState{}
}

func (vm *ViewModel) syncViewItems() {
	vm.state.ViewItems = market.NewMarketViewItems(vm.items, vm.state.MarketField, vm.formatter)
}
