package order

import (
	"fmt"
	"strings"

	"orders/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Pending ─> Confirmed ─> Preparing ─> Ready ─> OutForDelivery ─> Delivered
//	   │           │            │          │             │
//	   └───────────┴────────────┴──────────┴─────────────┴──────> Cancelled
//
// Delivered and Cancelled are terminal. The zero value Unknown is never valid
// and has no outgoing transitions.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Pending is the status of every newly created order.
	Pending
	Confirmed
	Preparing
	Ready
	OutForDelivery

	// Delivered is terminal.
	Delivered

	// Cancelled is terminal and reachable from every non-terminal status.
	Cancelled
)

var statusNames = map[Status]string{
	Unknown:        "UNKNOWN",
	Pending:        "PENDING",
	Confirmed:      "CONFIRMED",
	Preparing:      "PREPARING",
	Ready:          "READY",
	OutForDelivery: "OUT_FOR_DELIVERY",
	Delivered:      "DELIVERED",
	Cancelled:      "CANCELLED",
}

var statusDescriptions = map[Status]string{
	Pending:        "Order placed, awaiting confirmation",
	Confirmed:      "Order confirmed by restaurant",
	Preparing:      "Food is being prepared",
	Ready:          "Order ready for pickup",
	OutForDelivery: "Order is out for delivery",
	Delivered:      "Order delivered",
	Cancelled:      "Order cancelled",
}

// transitions is the complete edge set of the state machine. Statuses absent
// from the map have no outgoing edges.
var transitions = map[Status][]Status{
	Pending:        {Confirmed, Cancelled},
	Confirmed:      {Preparing, Cancelled},
	Preparing:      {Ready, Cancelled},
	Ready:          {OutForDelivery, Cancelled},
	OutForDelivery: {Delivered, Cancelled},
}

// happyPath maps each status to its successor when nothing goes wrong.
var happyPath = map[Status]Status{
	Pending:        Confirmed,
	Confirmed:      Preparing,
	Preparing:      Ready,
	Ready:          OutForDelivery,
	OutForDelivery: Delivered,
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Confirmed, Preparing, Ready, OutForDelivery, Delivered, Cancelled}
}

// ParseStatus resolves an enum name such as "OUT_FOR_DELIVERY". Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseStatus(name string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for _, s := range Statuses() {
		if statusNames[s] == normalized {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", name))
}

func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// Description is a human readable label, for display only.
func (s Status) Description() string {
	return statusDescriptions[s]
}

// CanTransitionTo reports whether candidate is a legal next status. It is a
// pure predicate: a status never transitions to itself.
func (s Status) CanTransitionTo(candidate Status) bool {
	for _, next := range transitions[s] {
		if next == candidate {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// IsInFlight reports whether the order is between confirmation and delivery.
func (s Status) IsInFlight() bool {
	switch s {
	case Confirmed, Preparing, Ready, OutForDelivery:
		return true
	default:
		return false
	}
}

// Next returns the successor on the happy path. Terminal and invalid
// statuses have none.
func (s Status) Next() (Status, error) {
	next, ok := happyPath[s]
	if !ok {
		return Unknown, errs.NewTransitionIsInvalidErrorWithCause(
			s.String(), "next",
			fmt.Errorf("%s has no next status", s),
		)
	}
	return next, nil
}

// Transition is a single edge of the state machine.
type Transition struct {
	From Status
	To   Status
}

// NewTransition validates both ends and the edge itself.
func NewTransition(from, to Status) (Transition, error) {
	if err := from.Validate(); err != nil {
		return Transition{}, err
	}
	if err := to.Validate(); err != nil {
		return Transition{}, err
	}
	if !from.CanTransitionTo(to) {
		return Transition{}, errs.NewTransitionIsInvalidError(from.String(), to.String())
	}
	return Transition{From: from, To: to}, nil
}

// Name is the lowercase report key, for example "ready_to_out_for_delivery".
func (t Transition) Name() string {
	return strings.ToLower(t.From.String()) + "_to_" + strings.ToLower(t.To.String())
}

// ProgressionSteps returns the steps of the automatic progression sweep in the
// order they are applied. Pending orders are never auto-confirmed.
func ProgressionSteps() []Transition {
	return []Transition{
		{From: Confirmed, To: Preparing},
		{From: Preparing, To: Ready},
		{From: Ready, To: OutForDelivery},
		{From: OutForDelivery, To: Delivered},
	}
}
