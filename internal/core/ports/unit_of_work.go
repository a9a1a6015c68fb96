package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Client code must manage the
// lifecycle explicitly:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//	// ... uow.OrderRepository() ...
//	return uow.Commit(ctx)
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if no transaction is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback returns an error when no transaction is active, as after
	// Commit. Deferred calls ignore it.
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to the current transaction,
	// or to the plain store when Begin has not been called.
	OrderRepository() OrderRepository
}
