// Package notify combines several status notifiers into one.
package notify

import (
	"context"
	"errors"

	"orders/internal/core/ports"
)

// Fanout delivers every change to all notifiers. One failing notifier does
// not stop the others; their errors are joined.
type Fanout struct {
	notifiers []ports.StatusNotifier
}

var _ ports.StatusNotifier = Fanout{}

func NewFanout(notifiers ...ports.StatusNotifier) Fanout {
	return Fanout{notifiers: notifiers}
}

func (f Fanout) NotifyStatusChanged(ctx context.Context, change ports.StatusChange) error {
	var errList []error
	for _, n := range f.notifiers {
		if err := n.NotifyStatusChanged(ctx, change); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}

// Nop drops every change. It stands in when no downstream is configured.
type Nop struct{}

func (Nop) NotifyStatusChanged(context.Context, ports.StatusChange) error {
	return nil
}
