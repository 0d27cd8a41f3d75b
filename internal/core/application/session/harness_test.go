package session_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"pos/internal/adapters/out/memory"
	"pos/internal/adapters/out/records"
	"pos/internal/core/application/session"
	"pos/internal/core/application/usecases/commands"
	"pos/internal/core/application/usecases/queries"
	"pos/internal/core/domain/model/catalog"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/location"
	"pos/internal/core/domain/model/order"
	"pos/internal/core/domain/services"
	"pos/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockKitchen struct{ mock.Mock }

func (m *MockKitchen) SendKitchenTicket(ctx context.Context, s order.Snapshot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MockReceipts struct{ mock.Mock }

func (m *MockReceipts) PrintReceipt(ctx context.Context, s order.Snapshot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type uowFactory struct{ f *memory.UnitOfWorkFactory }

func (u uowFactory) Create() commands.UoW { return u.f.Create() }

// orderUoWFactory hands out order units of work whose commit fails while
// *failCommits is set.
type orderUoWFactory struct {
	f           *memory.UnitOfWorkFactory
	failCommits *bool
}

func (u orderUoWFactory) Create() commands.OrderUoW {
	return &flakyOrderUoW{OrderUoW: u.f.Create(), fail: u.failCommits}
}

type flakyOrderUoW struct {
	commands.OrderUoW
	fail *bool
}

func (u *flakyOrderUoW) Commit(ctx context.Context) error {
	if *u.fail {
		_ = u.OrderUoW.Rollback(ctx)
		return errs.NewPersistenceFailureError("commit transaction", errors.New("connection reset"))
	}
	return u.OrderUoW.Commit(ctx)
}

// stepClock advances one second per reading.
type stepClock struct{ t time.Time }

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

type harness struct {
	session  *session.Session
	registry *location.Registry
	orders   *records.OrderRepository
	products *records.ProductRepository
	kitchen  *MockKitchen
	receipts *MockReceipts

	failCommits bool
}

type harnessSetup struct {
	cfg    session.Config
	policy services.StockPolicy
	orders func(session.OrderReader) session.OrderReader
}

type harnessOption func(*harnessSetup)

func withTaxRate(rate string) harnessOption {
	return func(hs *harnessSetup) {
		r, err := kernel.TaxRateFromString(rate)
		if err != nil {
			panic(err)
		}
		hs.cfg.TaxRate = r
	}
}

func withOrderReader(wrap func(session.OrderReader) session.OrderReader) harnessOption {
	return func(hs *harnessSetup) {
		hs.orders = wrap
	}
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)
	registry := location.NewRegistry()
	logger := slog.New(slog.DiscardHandler)
	clock := &stepClock{t: time.Date(2026, 3, 14, 13, 0, 0, 0, time.Local)}

	hs := harnessSetup{
		cfg:    session.Config{TaxRate: kernel.ZeroTaxRate(), MaxLocations: 14, Now: clock.Now},
		policy: services.DefaultStockPolicy(),
		orders: func(r session.OrderReader) session.OrderReader { return r },
	}
	for _, opt := range opts {
		opt(&hs)
	}

	h := &harness{
		registry: registry,
		orders:   records.NewOrderRepository(store),
		products: records.NewProductRepository(store),
		kitchen:  new(MockKitchen),
		receipts: new(MockReceipts),
	}

	s, err := session.New(session.Dependencies{
		Registry: registry,
		Orders:   hs.orders(h.orders),
		Catalog:  queries.NewCatalogLookup(h.products, records.NewCategoryRepository(store)),
		Saver:    commands.NewSaveOrderCommandHandler(orderUoWFactory{f: factory, failCommits: &h.failCommits}),
		Transitioner: commands.NewTransitionOrderCommandHandler(
			uowFactory{factory}, services.NewOrderLifecycle(hs.policy), registry, nil, logger),
		Kitchen:  h.kitchen,
		Receipts: h.receipts,
	}, hs.cfg, logger)
	require.NoError(t, err)
	h.session = s
	return h
}

func (h *harness) addProduct(t *testing.T, name, price string, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, kernel.NewUUID(), kernel.MustMoney(price), stock, "", time.Now())
	require.NoError(t, err)
	require.NoError(t, h.products.Add(t.Context(), p))
	return p
}

func (h *harness) stock(t *testing.T, id kernel.UUID) int {
	t.Helper()
	p, err := h.products.Get(t.Context(), id)
	require.NoError(t, err)
	return p.Stock()
}

func mustLocation(t *testing.T, id string) kernel.Location {
	t.Helper()
	loc, err := kernel.ParseLocationID(id)
	require.NoError(t, err)
	return loc
}

func withStrictStock() harnessOption {
	return func(hs *harnessSetup) {
		hs.policy.AllowNegative = false
	}
}

// gatedReader blocks the first GetAll until release is closed.
type gatedReader struct {
	session.OrderReader
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedReader(r session.OrderReader) *gatedReader {
	return &gatedReader{OrderReader: r, entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedReader) GetAll(ctx context.Context) ([]*order.Order, error) {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	return g.OrderReader.GetAll(ctx)
}

