package payments

import (
	"context"
	"fmt"

	"github.com/dspetrov/payportal/internal/logging"
	"github.com/dspetrov/payportal/internal/server/validation"
)

// SettlementReporter receives the rows a batch submit picked up. The
// report is advisory: the submit has already committed when Publish runs.
type SettlementReporter interface {
	Publish(ctx context.Context, batch []SubmittedPayment) error
}

// Service is the payment lifecycle engine. All transition guards live in
// the repository as single conditional statements; the service adds actor
// wiring, reporting and error shaping.
type Service struct {
	repo     Repository
	reporter SettlementReporter
	logger   logging.Logger
}

// NewService creates the lifecycle engine. reporter may be nil, which
// disables settlement reporting.
func NewService(repo Repository, reporter SettlementReporter, logger logging.Logger) *Service {
	return &Service{
		repo:     repo,
		reporter: reporter,
		logger:   logger.With("module", "payments"),
	}
}

// Create stores a new pending payment for the owner from validated,
// normalized input.
func (s *Service) Create(ctx context.Context, ownerID string, in validation.PaymentInput) (*Payment, error) {

	payment := &Payment{
		UserID:          ownerID,
		BeneficiaryName: in.BeneficiaryName,
		BeneficiaryIBAN: in.BeneficiaryIBAN,
		BeneficiaryBIC:  in.BeneficiaryBIC,
		Amount:          in.Amount,
		Currency:        in.Currency,
	}
	if in.Reference != "" {
		payment.Reference = &in.Reference
	}

	payment, err := s.repo.Create(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("error creating payment: %w", err)
	}

	return payment, nil
}

func (s *Service) ListForOwner(ctx context.Context, ownerID string) ([]*Payment, error) {
	return s.repo.ListForOwner(ctx, ownerID)
}

func (s *Service) ListPending(ctx context.Context) ([]*Payment, error) {
	return s.repo.ListPending(ctx)
}

// Verify marks a pending payment as verified by the acting employee.
// Returns shared.ErrorNotFound when the row is missing, already verified
// or already rejected; the caller only learns "nothing changed".
func (s *Service) Verify(ctx context.Context, id string, employeeID string) error {
	return s.repo.Verify(ctx, id, employeeID)
}

// Reject marks a pending payment as rejected with a reason. Verified rows
// cannot be rejected: verification is a commit point.
func (s *Service) Reject(ctx context.Context, id string, employeeID string, reason string) error {
	return s.repo.Reject(ctx, id, employeeID, reason)
}

// SubmitAll moves every verified-and-not-submitted payment to submitted in
// one atomic statement and returns the count. When a reporter is
// configured and the batch is non-empty, a settlement report is published
// best-effort; a failed upload is logged but does not undo or fail the
// submit.
func (s *Service) SubmitAll(ctx context.Context) (int, error) {

	batch, err := s.repo.SubmitAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("error submitting payments: %w", err)
	}

	if s.reporter != nil && len(batch) > 0 {
		if err := s.reporter.Publish(ctx, batch); err != nil {
			s.logger.Error(ctx, "settlement report upload failed", "error", err, "count", len(batch))
		}
	}

	return len(batch), nil
}
