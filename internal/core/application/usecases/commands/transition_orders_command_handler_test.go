package commands_test

import (
	"errors"
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewTransitionOrdersCommand(t *testing.T) {
	tests := []struct {
		name    string
		from    order.Status
		to      order.Status
		wantErr error
	}{
		{"ready to cancelled", order.Ready, order.Cancelled, nil},
		{"pending to confirmed", order.Pending, order.Confirmed, nil},
		{"delivered is terminal", order.Delivered, order.Cancelled, errs.ErrTransitionIsInvalid},
		{"skipping a step", order.Pending, order.Ready, errs.ErrTransitionIsInvalid},
		{"same status", order.Preparing, order.Preparing, errs.ErrTransitionIsInvalid},
		{"unknown status", order.Unknown, order.Confirmed, errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := commands.NewTransitionOrdersCommand(tt.from, tt.to)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.ErrorIs(t, cmd.Validate(), commands.ErrTransitionOrdersCommandIsNotConstructed)
				return
			}
			require.NoError(t, err)
			require.NoError(t, cmd.Validate())
			assert.Equal(t, tt.from, cmd.Transition().From)
			assert.Equal(t, tt.to, cmd.Transition().To)
		})
	}
}

func TestTransitionOrdersCommandHandler_Handle_BulkCancel(t *testing.T) {
	factory := newStoreFactory()
	first := factory.seed(t, order.Ready)
	second := factory.seed(t, order.Ready)
	preparing := factory.seed(t, order.Preparing)
	notifier := &recordingNotifier{}
	cmd, err := commands.NewTransitionOrdersCommand(order.Ready, order.Cancelled)
	require.NoError(t, err)

	h := commands.NewTransitionOrdersCommandHandler(factory, notifier, fixedClock, discardLogs)
	result, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "ready_to_cancelled", result.Step)
	assert.Equal(t, 2, result.TotalFound)
	assert.Equal(t, 2, result.UpdatedCount)
	assert.Equal(t, "Successfully updated 2 orders from READY to CANCELLED", result.Message)
	assert.Equal(t, order.Cancelled, factory.statusOf(t, first.ID()))
	assert.Equal(t, order.Cancelled, factory.statusOf(t, second.ID()))
	assert.Equal(t, order.Preparing, factory.statusOf(t, preparing.ID()))
	assert.Len(t, notifier.received(), 2)
}

func TestTransitionOrdersCommandHandler_Handle_NoMatchingOrders(t *testing.T) {
	factory := newStoreFactory()
	factory.seed(t, order.Pending)
	cmd, _ := commands.NewTransitionOrdersCommand(order.OutForDelivery, order.Delivered)

	h := commands.NewTransitionOrdersCommandHandler(factory, &recordingNotifier{}, fixedClock, discardLogs)
	result, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Zero(t, result.TotalFound)
	assert.Equal(t, "No orders found with status OUT_FOR_DELIVERY", result.Message)
}

func TestTransitionOrdersCommandHandler_Handle_ListingFailure(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewTransitionOrdersCommand(order.Confirmed, order.Preparing)

	repo := new(MockOrderRepository)
	repo.On("GetAllByStatus", ctx, order.Confirmed).Return(nil, errors.New("timeout")).Once()
	uow := new(MockOrderUoW)
	uow.On("OrderRepository").Return(repo).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	notifier := new(MockStatusNotifier)

	h := commands.NewTransitionOrdersCommandHandler(factory, notifier, fixedClock, discardLogs)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "CONFIRMED -> PREPARING failed: timeout", result.Message)
	uow.AssertNotCalled(t, "Begin", mock.Anything)
	notifier.AssertNotCalled(t, "NotifyStatusChanged", mock.Anything, mock.Anything)
}

func TestTransitionOrdersCommandHandler_Handle_Unconstructed(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	h := commands.NewTransitionOrdersCommandHandler(factory, new(MockStatusNotifier), fixedClock, discardLogs)

	_, err := h.Handle(t.Context(), commands.TransitionOrdersCommand{})

	require.ErrorIs(t, err, commands.ErrTransitionOrdersCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
