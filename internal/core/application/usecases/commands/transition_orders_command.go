package commands

import (
	"errors"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/guard"
)

var ErrTransitionOrdersCommandIsNotConstructed = errors.New(
	"TransitionOrdersCommand must be created via NewTransitionOrdersCommand constructor",
)

// TransitionOrdersCommand moves every order in one status to another. The
// pair must be an edge of the state machine, checked at construction so an
// illegal request never reaches the store.
type TransitionOrdersCommand struct { //nolint:recvcheck //using for validation
	transition order.Transition

	guard guard.ConstructorGuard
}

func NewTransitionOrdersCommand(from, to order.Status) (TransitionOrdersCommand, error) {
	transition, err := order.NewTransition(from, to)
	if err != nil {
		return TransitionOrdersCommand{}, err
	}

	return TransitionOrdersCommand{
		transition: transition,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionOrdersCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrdersCommandIsNotConstructed)
}

func (c TransitionOrdersCommand) Transition() order.Transition {
	return c.transition
}
