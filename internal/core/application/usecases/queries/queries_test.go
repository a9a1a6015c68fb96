package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"orders/internal/adapters/out/memory"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderReader) GetAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if o := args.Get(0); o != nil {
		return o.([]*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func newOrder(t *testing.T, lines ...order.Item) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), lines, createdAt)
	require.NoError(t, err)
	return o
}

func newItem(t *testing.T, id string, quantity int, price string) order.Item {
	t.Helper()
	item, err := order.NewItem(id, "Item "+id, quantity, decimal.RequireFromString(price))
	require.NoError(t, err)
	return item
}

func TestNewGetOrderQuery(t *testing.T) {
	id := kernel.NewUUID()

	query, err := queries.NewGetOrderQuery(id)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.OrderID().IsEqual(id))

	_, err = queries.NewGetOrderQuery(kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	require.ErrorIs(t, queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	require.ErrorIs(t, queries.GetAllOrdersQuery{}.Validate(), queries.ErrGetAllOrdersQueryIsNotConstructed)
	require.NoError(t, queries.NewGetAllOrdersQuery().Validate())
}

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	reader := store.Create().OrderRepository()
	stored := newOrder(t, newItem(t, "pizza", 1, "9.50"), newItem(t, "cola", 3, "1.99"))
	require.NoError(t, reader.Add(ctx, stored))

	h := queries.NewGetOrderQueryHandler(reader)

	t.Run("found", func(t *testing.T) {
		query, _ := queries.NewGetOrderQuery(stored.ID())

		response, err := h.Handle(ctx, query)

		require.NoError(t, err)
		assert.True(t, response.ID.IsEqual(stored.ID()))
		assert.Equal(t, order.Pending, response.Status)
		assert.Equal(t, "15.47", response.Total.StringFixed(2))
		require.Len(t, response.Items, 2)
		assert.Equal(t, "pizza", response.Items[0].ItemID)
		assert.Equal(t, "Item cola", response.Items[1].ItemName)
		assert.Equal(t, 3, response.Items[1].Quantity)
		assert.Equal(t, createdAt, response.CreatedAt)
		assert.Equal(t, createdAt, response.UpdatedAt)
	})

	t.Run("not found", func(t *testing.T) {
		query, _ := queries.NewGetOrderQuery(kernel.NewUUID())

		_, err := h.Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("unconstructed", func(t *testing.T) {
		_, err := h.Handle(ctx, queries.GetOrderQuery{})

		require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
	})
}

func TestGetAllOrdersQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("keeps creation order", func(t *testing.T) {
		store := memory.NewStore()
		reader := store.Create().OrderRepository()
		first := newOrder(t, newItem(t, "a", 1, "1.00"))
		second := newOrder(t, newItem(t, "b", 2, "2.00"))
		require.NoError(t, reader.Add(ctx, first))
		require.NoError(t, reader.Add(ctx, second))

		responses, err := queries.NewGetAllOrdersQueryHandler(reader).Handle(ctx, queries.NewGetAllOrdersQuery())

		require.NoError(t, err)
		require.Len(t, responses, 2)
		assert.True(t, responses[0].ID.IsEqual(first.ID()))
		assert.True(t, responses[1].ID.IsEqual(second.ID()))
		assert.Equal(t, "4.00", responses[1].Total.StringFixed(2))
	})

	t.Run("empty store", func(t *testing.T) {
		reader := memory.NewStore().Create().OrderRepository()

		responses, err := queries.NewGetAllOrdersQueryHandler(reader).Handle(ctx, queries.NewGetAllOrdersQuery())

		require.NoError(t, err)
		assert.NotNil(t, responses)
		assert.Empty(t, responses)
	})

	t.Run("reader error", func(t *testing.T) {
		reader := new(MockOrderReader)
		reader.On("GetAll", ctx).Return(nil, errors.New("connection reset")).Once()

		_, err := queries.NewGetAllOrdersQueryHandler(reader).Handle(ctx, queries.NewGetAllOrdersQuery())

		require.EqualError(t, err, "connection reset")
		reader.AssertExpectations(t)
	})
}
