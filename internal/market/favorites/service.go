package favorites

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Veraticus/bankwallet/internal/market"
	"github.com/Veraticus/bankwallet/internal/model"
	"github.com/Veraticus/bankwallet/internal/reactive"
	"github.com/Veraticus/bankwallet/internal/service"
	"github.com/google/uuid"
)

// ErrAlreadyStarted is returned by Start on a running service.
var ErrAlreadyStarted = errors.New("favorites service already started")

// State is the favorites list as observed by the UI.
type State = model.DataState[[]market.MarketItem]

type fetchResult struct {
	err        error
	requestID  string
	items      []market.MarketItem
	generation uint64
}

// Service keeps the favorites list fresh. A single goroutine owns the fetch
// state: every trigger cancels the in-flight fetch, publishes Loading and
// starts a new fetch. Results from superseded fetches are discarded.
//
// Each Start gets its own trigger and result channels, so triggers racing
// a Stop and fetches outliving it cannot leak into the next run.
type Service struct {
	repository service.MarketFavoritesRepository
	currency   service.CurrencyManager
	background service.BackgroundManager
	logger     *slog.Logger
	state      *reactive.Cell[State]
	listener   *foregroundListener

	mu           sync.Mutex
	triggers     chan bool
	sortingField market.SortingField
	running      bool
	cancel       context.CancelFunc
	done         chan struct{}
}

// NewService creates a favorites service sorted by sortingField.
func NewService(
	repository service.MarketFavoritesRepository,
	currency service.CurrencyManager,
	background service.BackgroundManager,
	sortingField market.SortingField,
) *Service {
	s := &Service{
		repository:   repository,
		currency:     currency,
		background:   background,
		logger:       slog.Default().With("component", "favorites_service"),
		state:        reactive.NewCell(model.Loading[[]market.MarketItem]()),
		sortingField: sortingField,
	}
	s.listener = &foregroundListener{service: s}
	return s
}

// State returns the latest state.
func (s *Service) State() State {
	return s.state.Get()
}

// Subscribe returns a conflated channel of states, primed with the current one.
func (s *Service) Subscribe() (<-chan State, func()) {
	return s.state.Subscribe()
}

// Watch calls fn synchronously for every state transition. fn runs on the
// service goroutine, so it must not call Stop.
func (s *Service) Watch(fn func(State)) func() {
	return s.state.Watch(fn)
}

// SortingField returns the current sorting field.
func (s *Service) SortingField() market.SortingField {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortingField
}

// SetSortingField changes the ordering and refetches, allowing cached data.
func (s *Service) SetSortingField(field market.SortingField) {
	s.mu.Lock()
	s.sortingField = field
	s.mu.Unlock()

	s.trigger(false)
}

// Refresh refetches, bypassing cached data.
func (s *Service) Refresh() {
	s.trigger(true)
}

// Start subscribes to currency, favorites and foreground notifications and
// performs the initial forced fetch. Start is not reentrant.
func (s *Service) Start(ctx context.Context) error {
	currencyCh, unsubscribeCurrency := s.currency.BaseCurrencyUpdated()
	updatedCh, unsubscribeUpdated := s.repository.DataUpdated()

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		unsubscribeCurrency()
		unsubscribeUpdated()
		return ErrAlreadyStarted
	}

	loopCtx, cancel := context.WithCancel(ctx)
	triggers := make(chan bool, 8)
	s.running = true
	s.cancel = cancel
	s.done = make(chan struct{})
	s.triggers = triggers

	go func(done chan struct{}) {
		defer close(done)
		defer unsubscribeCurrency()
		defer unsubscribeUpdated()
		s.run(loopCtx, triggers, currencyCh, updatedCh)
	}(s.done)

	triggers <- true
	s.mu.Unlock()

	s.background.RegisterListener(s.listener)
	return nil
}

// Stop unregisters from all notifications and cancels in-flight work. A
// fetch whose provider ignores cancellation is abandoned, not awaited.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	s.background.UnregisterListener(s.listener)
	cancel()
	<-done
}

func (s *Service) trigger(force bool) {
	s.mu.Lock()
	running, done, triggers := s.running, s.done, s.triggers
	s.mu.Unlock()

	if !running {
		return
	}
	select {
	case triggers <- force:
	case <-done:
	}
}

func (s *Service) run(ctx context.Context, triggers <-chan bool, currencyCh, updatedCh <-chan struct{}) {
	results := make(chan fetchResult)

	var (
		generation  uint64
		cancelFetch context.CancelFunc
	)
	defer func() {
		if cancelFetch != nil {
			cancelFetch()
		}
	}()

	fetch := func(force bool) {
		if cancelFetch != nil {
			cancelFetch()
		}
		generation++

		var fetchCtx context.Context
		fetchCtx, cancelFetch = context.WithCancel(ctx)
		s.state.Set(model.Loading[[]market.MarketItem]())

		req := fetchRequest{
			id:           uuid.NewString(),
			generation:   generation,
			sortingField: s.SortingField(),
			currency:     s.currency.BaseCurrency(),
			force:        force,
		}
		s.logger.Debug("Fetching favorites",
			"request_id", req.id,
			"sorting_field", req.sortingField.Key(),
			"currency", req.currency.Code,
			"force", force)

		go s.fetch(fetchCtx, results, req)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case force := <-triggers:
			fetch(force)

		case _, ok := <-currencyCh:
			if !ok {
				currencyCh = nil
				continue
			}
			fetch(true)

		case _, ok := <-updatedCh:
			if !ok {
				updatedCh = nil
				continue
			}
			fetch(true)

		case res := <-results:
			if res.generation != generation {
				s.logger.Debug("Discarding superseded favorites result", "request_id", res.requestID)
				continue
			}
			cancelFetch()
			cancelFetch = nil

			if res.err != nil {
				s.logger.Warn("Failed to fetch favorites", "request_id", res.requestID, "error", res.err)
				s.state.Set(model.Failure[[]market.MarketItem](res.err))
				continue
			}
			s.state.Set(model.Success(res.items))
		}
	}
}

type fetchRequest struct {
	currency     model.Currency
	id           string
	generation   uint64
	sortingField market.SortingField
	force        bool
}

func (s *Service) fetch(ctx context.Context, results chan<- fetchResult, req fetchRequest) {
	items, err := s.repository.Get(ctx, req.sortingField, req.currency, req.force)

	select {
	case results <- fetchResult{generation: req.generation, requestID: req.id, items: items, err: err}:
	case <-ctx.Done():
	}
}

// foregroundListener keeps the BackgroundListener methods off the Service API.
type foregroundListener struct {
	service *Service
}

func (l *foregroundListener) WillEnterForeground() {
	l.service.trigger(true)
}

func (l *foregroundListener) DidEnterBackground() {}
