// Package memory is a process-local order store used for local runs and
// tests. It keeps snapshots rather than aggregate pointers, so callers
// never share mutable state with the store.
//
// Units of work are serialized: Begin takes a store-wide lock released by
// Commit or Rollback, which gives GetForUpdate the same guarantee as a row
// lock. Writes inside a unit of work are staged and applied on Commit.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNoActiveTransaction mirrors gorm.ErrInvalidTransaction for this store.
var ErrNoActiveTransaction = errors.New("no active transaction")

// ErrOrderAlreadyExists is returned by Add for a duplicate order id.
var ErrOrderAlreadyExists = errors.New("order already exists")

type record struct {
	storeID   uint64
	orderID   kernel.UUID
	items     []order.Item
	total     decimal.Decimal
	status    order.Status
	createdAt time.Time
	updatedAt time.Time
}

func snapshot(o *order.Order) record {
	return record{
		storeID:   o.StoreID(),
		orderID:   o.ID(),
		items:     o.Items(),
		total:     o.Total(),
		status:    o.Status(),
		createdAt: o.CreatedAt(),
		updatedAt: o.UpdatedAt(),
	}
}

func (r record) restore() (*order.Order, error) {
	return order.RestoreOrder(r.storeID, r.orderID, r.items, r.total, r.status, r.createdAt, r.updatedAt)
}

// Store holds orders keyed by their identifier.
type Store struct {
	txMu sync.Mutex

	mu      sync.RWMutex
	nextID  uint64
	records map[uuid.UUID]record
}

func NewStore() *Store {
	return &Store{records: make(map[uuid.UUID]record)}
}

// Create returns a new unit of work over the store.
func (s *Store) Create() ports.UnitOfWork {
	return &UnitOfWork{store: s}
}

func (s *Store) allocateID() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID
}

func (s *Store) lookup(id uuid.UUID) (record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	return r, ok
}

func (s *Store) apply(records map[uuid.UUID]record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, r := range records {
		s.records[id] = r
	}
}

func (s *Store) list() []record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	return out
}

// UnitOfWork implements ports.UnitOfWork for Store.
type UnitOfWork struct {
	store  *Store
	active bool
	staged map[uuid.UUID]record
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.active {
		return nil
	}
	u.store.txMu.Lock()
	u.active = true
	u.staged = make(map[uuid.UUID]record)
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	u.store.apply(u.staged)
	u.end()
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	u.end()
	return nil
}

func (u *UnitOfWork) end() {
	u.staged = nil
	u.active = false
	u.store.txMu.Unlock()
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &repository{uow: u}
}

type repository struct {
	uow *UnitOfWork
}

func (r *repository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	defer r.autocommit()()
	if _, exists := r.find(aggregate.ID()); exists {
		return ErrOrderAlreadyExists
	}
	if err := aggregate.AssignStoreID(r.uow.store.allocateID()); err != nil {
		return err
	}
	r.save(snapshot(aggregate))
	return nil
}

func (r *repository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	defer r.autocommit()()
	current, exists := r.find(aggregate.ID())
	if !exists {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	current.status = aggregate.Status()
	current.updatedAt = aggregate.UpdatedAt()
	r.save(current)
	return nil
}

func (r *repository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	rec, exists := r.find(id)
	if !exists {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return rec.restore()
}

// GetForUpdate relies on the unit of work lock taken by Begin.
func (r *repository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r *repository) GetAllByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	return r.collect(ctx, func(rec record) bool { return rec.status == status })
}

func (r *repository) GetAll(ctx context.Context) ([]*order.Order, error) {
	return r.collect(ctx, func(record) bool { return true })
}

// autocommit serializes a write made outside of a unit of work with the
// running units of work. It returns the release function.
func (r *repository) autocommit() func() {
	if r.uow.active {
		return func() {}
	}
	r.uow.store.txMu.Lock()
	return r.uow.store.txMu.Unlock
}

func (r *repository) find(id kernel.UUID) (record, bool) {
	if r.uow.active {
		if rec, ok := r.uow.staged[id.Bytes()]; ok {
			return rec, true
		}
	}
	return r.uow.store.lookup(id.Bytes())
}

func (r *repository) save(rec record) {
	if r.uow.active {
		r.uow.staged[rec.orderID.Bytes()] = rec
		return
	}
	r.uow.store.apply(map[uuid.UUID]record{rec.orderID.Bytes(): rec})
}

func (r *repository) collect(_ context.Context, keep func(record) bool) ([]*order.Order, error) {
	merged := make(map[uuid.UUID]record)
	for _, rec := range r.uow.store.list() {
		merged[rec.orderID.Bytes()] = rec
	}
	if r.uow.active {
		for id, rec := range r.uow.staged {
			merged[id] = rec
		}
	}

	selected := make([]record, 0, len(merged))
	for _, rec := range merged {
		if keep(rec) {
			selected = append(selected, rec)
		}
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].storeID < selected[j].storeID })

	orders := make([]*order.Order, 0, len(selected))
	for _, rec := range selected {
		o, err := rec.restore()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
