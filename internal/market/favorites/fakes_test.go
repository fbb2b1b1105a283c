package favorites

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/bankwallet/internal/common"
	"github.com/Veraticus/bankwallet/internal/market"
	"github.com/Veraticus/bankwallet/internal/model"
	"github.com/Veraticus/bankwallet/internal/reactive"
	"github.com/Veraticus/bankwallet/internal/service"
	"github.com/shopspring/decimal"
)

var (
	usd = model.Currency{Code: "USD", Symbol: "$", Decimals: 2}
	eur = model.Currency{Code: "EUR", Symbol: "€", Decimals: 2}
)

type repoReply struct {
	err   error
	items []market.MarketItem
}

type repoCall struct {
	ctx      context.Context
	reply    chan repoReply
	currency model.Currency
	field    market.SortingField
	force    bool
}

// fakeRepository hands every Get to the test, which answers through the
// call's reply channel. It ignores cancellation like a slow transport would.
type fakeRepository struct {
	calls   chan *repoCall
	updated *reactive.Signal
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{calls: make(chan *repoCall, 16), updated: reactive.NewSignal()}
}

func (f *fakeRepository) Get(ctx context.Context, field market.SortingField, currency model.Currency, force bool) ([]market.MarketItem, error) {
	c := &repoCall{ctx: ctx, field: field, currency: currency, force: force, reply: make(chan repoReply, 1)}
	f.calls <- c
	r := <-c.reply
	return r.items, r.err
}

func (f *fakeRepository) DataUpdated() (<-chan struct{}, func()) {
	return f.updated.Subscribe()
}

func (f *fakeRepository) nextCall(t *testing.T) *repoCall {
	t.Helper()
	select {
	case c := <-f.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("expected a repository call")
		return nil
	}
}

func (f *fakeRepository) assertNoCall(t *testing.T) {
	t.Helper()
	select {
	case c := <-f.calls:
		t.Fatalf("unexpected repository call (force=%v)", c.force)
	case <-time.After(50 * time.Millisecond):
	}
}

type fakeCurrencyManager struct {
	updated  *reactive.Signal
	currency model.Currency
	mu       sync.Mutex
}

func newFakeCurrencyManager(c model.Currency) *fakeCurrencyManager {
	return &fakeCurrencyManager{currency: c, updated: reactive.NewSignal()}
}

func (f *fakeCurrencyManager) BaseCurrency() model.Currency {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.currency
}

func (f *fakeCurrencyManager) BaseCurrencyUpdated() (<-chan struct{}, func()) {
	return f.updated.Subscribe()
}

func (f *fakeCurrencyManager) set(c model.Currency) {
	f.mu.Lock()
	f.currency = c
	f.mu.Unlock()
	f.updated.Notify()
}

type fakeBackgroundManager struct {
	listeners map[service.BackgroundListener]struct{}
	mu        sync.Mutex
}

func newFakeBackgroundManager() *fakeBackgroundManager {
	return &fakeBackgroundManager{listeners: make(map[service.BackgroundListener]struct{})}
}

func (f *fakeBackgroundManager) RegisterListener(l service.BackgroundListener) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listeners[l] = struct{}{}
}

func (f *fakeBackgroundManager) UnregisterListener(l service.BackgroundListener) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.listeners, l)
}

func (f *fakeBackgroundManager) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listeners)
}

func (f *fakeBackgroundManager) enterForeground() {
	f.mu.Lock()
	listeners := make([]service.BackgroundListener, 0, len(f.listeners))
	for l := range f.listeners {
		listeners = append(listeners, l)
	}
	f.mu.Unlock()

	for _, l := range listeners {
		l.WillEnterForeground()
	}
}

type memoryStore struct {
	prefs     map[string]string
	favorites []string
	mu        sync.Mutex
}

func newMemoryStore(favorites ...string) *memoryStore {
	return &memoryStore{prefs: make(map[string]string), favorites: favorites}
}

func (m *memoryStore) GetPreference(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.prefs[key]
	if !ok {
		return "", common.ErrNotFound
	}
	return v, nil
}

func (m *memoryStore) SetPreference(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs[key] = value
	return nil
}

func (m *memoryStore) GetFavoriteCoinUIDs(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.favorites...), nil
}

func (m *memoryStore) AddFavorite(_ context.Context, coinUID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.favorites = append(m.favorites, coinUID)
	return nil
}

func (m *memoryStore) RemoveFavorite(_ context.Context, coinUID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, uid := range m.favorites {
		if uid == coinUID {
			m.favorites = append(m.favorites[:i], m.favorites[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

func (m *memoryStore) IsFavorite(_ context.Context, coinUID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, uid := range m.favorites {
		if uid == coinUID {
			return true, nil
		}
	}
	return false, nil
}

type fakeProvider struct {
	infos map[string]market.MarketInfo
	err   error
	calls [][]string
	mu    sync.Mutex
}

func (p *fakeProvider) MarketInfos(_ context.Context, coinUIDs []string, _ string) ([]market.MarketInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, append([]string(nil), coinUIDs...))
	if p.err != nil {
		return nil, p.err
	}
	out := make([]market.MarketInfo, 0, len(coinUIDs))
	for _, uid := range coinUIDs {
		if info, ok := p.infos[uid]; ok {
			out = append(out, info)
		}
	}
	return out, nil
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func marketInfo(uid string, marketCap int64) market.MarketInfo {
	return market.MarketInfo{
		Coin:        model.Coin{UID: uid, Code: uid, Name: uid},
		Price:       decimal.NewFromInt(1),
		MarketCap:   decimal.NewFromInt(marketCap),
		TotalVolume: decimal.NewFromInt(marketCap / 10),
	}
}

func marketItems(uids ...string) []market.MarketItem {
	out := make([]market.MarketItem, 0, len(uids))
	for i, uid := range uids {
		out = append(out, market.NewMarketItem(marketInfo(uid, int64(100*(i+1))), usd))
	}
	return out
}

func itemUIDs(items []market.MarketItem) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.Coin.UID)
	}
	return out
}

// stateRecorder collects every state published after it is attached.
type stateRecorder struct {
	states []State
	mu     sync.Mutex
}

func (r *stateRecorder) record(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *stateRecorder) snapshot() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.states...)
}

func (r *stateRecorder) settled() []State {
	var out []State
	for _, s := range r.snapshot() {
		if !s.IsLoading() {
			out = append(out, s)
		}
	}
	return out
}
