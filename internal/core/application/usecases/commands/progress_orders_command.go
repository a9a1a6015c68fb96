package commands

import (
	"errors"

	"orders/internal/pkg/guard"
)

var ErrProgressOrdersCommandIsNotConstructed = errors.New(
	"ProgressOrdersCommand must be created via NewProgressOrdersCommand constructor",
)

// ProgressOrdersCommand triggers one automatic progression sweep: every in
// flight order advances exactly one step.
//
// Example:
//
//	cmd := NewProgressOrdersCommand()
//	report, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	log.Printf("advanced %d orders", report.TotalOrdersUpdated)
type ProgressOrdersCommand struct {
	guard guard.ConstructorGuard
}

func NewProgressOrdersCommand() ProgressOrdersCommand {
	return ProgressOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c *ProgressOrdersCommand) Validate() error {
	return c.guard.Validate(ErrProgressOrdersCommandIsNotConstructed)
}
