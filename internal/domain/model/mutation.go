package model

import "time"

// MutationKind names the remote catalog mutation a dialog dispatched.
type MutationKind string

const (
	MutationCreate MutationKind = "create"
	MutationUpdate MutationKind = "update"
)

// Outcome is the terminal state of a dispatched remote action.
type Outcome string

const (
	OutcomeFulfilled Outcome = "fulfilled"
	OutcomeRejected  Outcome = "rejected"
	OutcomeCancelled Outcome = "cancelled"
)

// MutationRecord is an audit entry for a dispatched create or update.
type MutationRecord struct {
	ID          int64
	UserEmail   string
	Kind        MutationKind
	JewelleryID string
	SKU         string
	Outcome     Outcome
	Message     string
	CreatedAt   time.Time
}
