package commands_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"orders/internal/adapters/out/memory"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	baseTime    = time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC)
	fixedClock  = kernel.FixedClock{At: baseTime.Add(time.Minute)}
	discardLogs = slog.New(slog.DiscardHandler)
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetAllByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if o := args.Get(0); o != nil {
		return o.([]*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if o := args.Get(0); o != nil {
		return o.([]*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockStatusNotifier struct{ mock.Mock }

func (m *MockStatusNotifier) NotifyStatusChanged(ctx context.Context, change ports.StatusChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

// recordingNotifier keeps every change it receives and returns err.
type recordingNotifier struct {
	mu      sync.Mutex
	changes []ports.StatusChange
	err     error
}

func (n *recordingNotifier) NotifyStatusChanged(_ context.Context, change ports.StatusChange) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, change)
	return n.err
}

func (n *recordingNotifier) received() []ports.StatusChange {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.StatusChange(nil), n.changes...)
}

// storeFactory runs handlers against the in-memory store.
type storeFactory struct {
	store *memory.Store
	wrap  func(ports.OrderRepository) ports.OrderRepository
}

func newStoreFactory() *storeFactory {
	return &storeFactory{store: memory.NewStore()}
}

func (f *storeFactory) Create() commands.OrderUoW {
	uow := f.store.Create()
	if f.wrap == nil {
		return uow
	}
	return wrappedUoW{UnitOfWork: uow, wrap: f.wrap}
}

func (f *storeFactory) repo() ports.OrderRepository {
	return f.store.Create().OrderRepository()
}

// seed stores an order already in status.
func (f *storeFactory) seed(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	template := newTestOrder(t)
	o, err := order.RestoreOrder(0, template.ID(), template.Items(), template.Total(), status, baseTime, baseTime)
	require.NoError(t, err)
	require.NoError(t, f.repo().Add(t.Context(), o))
	return o
}

func (f *storeFactory) statusOf(t *testing.T, id kernel.UUID) order.Status {
	t.Helper()
	o, err := f.repo().Get(t.Context(), id)
	require.NoError(t, err)
	return o.Status()
}

type wrappedUoW struct {
	ports.UnitOfWork
	wrap func(ports.OrderRepository) ports.OrderRepository
}

func (w wrappedUoW) OrderRepository() ports.OrderRepository {
	return w.wrap(w.UnitOfWork.OrderRepository())
}

// faultyRepository injects failures for selected orders and statuses.
type faultyRepository struct {
	ports.OrderRepository
	failUpdate   map[string]error
	panicOnLock  map[string]bool
	failListing  map[order.Status]error
	moveOnLockTo map[string]order.Status
}

func (r faultyRepository) Update(ctx context.Context, o *order.Order) error {
	if err, ok := r.failUpdate[o.ID().String()]; ok {
		return err
	}
	return r.OrderRepository.Update(ctx, o)
}

func (r faultyRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if r.panicOnLock[id.String()] {
		panic("corrupted row")
	}
	o, err := r.OrderRepository.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if status, ok := r.moveOnLockTo[id.String()]; ok {
		return order.RestoreOrder(o.StoreID(), o.ID(), o.Items(), o.Total(), status, o.CreatedAt(), o.UpdatedAt())
	}
	return o, nil
}

func (r faultyRepository) GetAllByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	if err, ok := r.failListing[status]; ok {
		return nil, err
	}
	return r.OrderRepository.GetAllByStatus(ctx, status)
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewItem("burger-1", "Classic Burger", 2, decimal.RequireFromString("12.99"))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), []order.Item{item}, baseTime)
	require.NoError(t, err)
	return o
}

func burgerLine() commands.OrderLine {
	return commands.OrderLine{
		ItemID:   "burger-1",
		ItemName: "Classic Burger",
		Quantity: 2,
		Price:    decimal.RequireFromString("12.99"),
	}
}
