package payments

import (
	"context"
)

// Repository persists payment rows. The Verify, Reject and SubmitAll
// guards must each be a single conditional statement so that concurrent
// callers cannot both succeed on the same row.
type Repository interface {
	Create(ctx context.Context, payment *Payment) (*Payment, error)
	ListForOwner(ctx context.Context, ownerID string) ([]*Payment, error)
	ListPending(ctx context.Context) ([]*Payment, error)

	// Verify flips the verified facet if the row exists and is neither
	// verified nor rejected. Returns shared.ErrorNotFound when the guard
	// does not match.
	Verify(ctx context.Context, id string, employeeID string) error

	// Reject flips the rejected facet if the row exists and is not
	// rejected, submitted or verified. Returns shared.ErrorNotFound when
	// the guard does not match.
	Reject(ctx context.Context, id string, employeeID string, reason string) error

	// SubmitAll atomically marks every verified-and-not-submitted row as
	// submitted and returns the rows it picked up.
	SubmitAll(ctx context.Context) ([]SubmittedPayment, error)
}
