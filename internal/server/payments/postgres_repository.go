package payments

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dspetrov/payportal/internal/shared"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

const paymentColumns = `id, user_id, beneficiary_name, beneficiary_iban, beneficiary_bic,
	amount, currency, reference, created_at,
	verified, verified_by, verified_at,
	submitted, submitted_at,
	rejected, rejected_by, rejected_at, rejection_reason`

func (r *PostgresRepository) Create(ctx context.Context, payment *Payment) (*Payment, error) {

	query :=
		`INSERT INTO payments (id, user_id, beneficiary_name, beneficiary_iban, beneficiary_bic, amount, currency, reference)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at
		 `

	payment.ID = uuid.NewString()

	var reference sql.NullString
	if payment.Reference != nil && *payment.Reference != "" {
		reference = sql.NullString{String: *payment.Reference, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		payment.ID, payment.UserID, payment.BeneficiaryName, payment.BeneficiaryIBAN,
		payment.BeneficiaryBIC, payment.Amount, payment.Currency, reference).
		Scan(&payment.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return payment, nil
}

func (r *PostgresRepository) ListForOwner(ctx context.Context, ownerID string) ([]*Payment, error) {
	query := `SELECT ` + paymentColumns + `
		 FROM payments
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// ListPending returns every actionable row: not rejected, and either not
// yet verified or verified but not yet submitted. The predicate is part of
// the employee-portal contract; verified-but-unsubmitted rows are
// deliberately included because they are still actionable for submission.
func (r *PostgresRepository) ListPending(ctx context.Context) ([]*Payment, error) {
	query := `SELECT ` + paymentColumns + `
		 FROM payments
		 WHERE rejected = false AND (verified = false OR submitted = false)
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// Verify is a single check-and-set statement: of two concurrent calls on
// the same row exactly one can match the guard.
func (r *PostgresRepository) Verify(ctx context.Context, id string, employeeID string) error {

	query :=
		`UPDATE payments
		 SET verified = true, verified_by = $1, verified_at = now()
		 WHERE id = $2 AND verified = false AND rejected = false
		 `

	res, err := r.db.ExecContext(ctx, query, employeeID, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if affected == 0 {
		return shared.ErrorNotFound
	}

	return nil
}

// Reject refuses already-verified rows: verification is a commit point and
// there is no un-verify operation.
func (r *PostgresRepository) Reject(ctx context.Context, id string, employeeID string, reason string) error {

	query :=
		`UPDATE payments
		 SET rejected = true, rejected_by = $1, rejected_at = now(), rejection_reason = $2
		 WHERE id = $3 AND rejected = false AND submitted = false AND verified = false
		 `

	res, err := r.db.ExecContext(ctx, query, employeeID, reason, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if affected == 0 {
		return shared.ErrorNotFound
	}

	return nil
}

// SubmitAll is one atomic statement over the whole matching set, not a
// read-then-loop-then-write sequence: rows becoming verified concurrently
// are either in this batch or the next, never skipped or double-counted.
func (r *PostgresRepository) SubmitAll(ctx context.Context) ([]SubmittedPayment, error) {

	query :=
		`UPDATE payments
		 SET submitted = true, submitted_at = now()
		 WHERE verified = true AND submitted = false
		 RETURNING id, beneficiary_iban, amount, currency
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	submitted := []SubmittedPayment{}
	for rows.Next() {
		var p SubmittedPayment
		if err := rows.Scan(&p.ID, &p.BeneficiaryIBAN, &p.Amount, &p.Currency); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		submitted = append(submitted, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return submitted, nil
}

func scanPayments(rows *sql.Rows) ([]*Payment, error) {
	payments := []*Payment{}

	for rows.Next() {
		p := &Payment{}

		var reference, verifiedBy, rejectedBy, rejectionReason sql.NullString
		var verifiedAt, submittedAt, rejectedAt sql.NullTime

		err := rows.Scan(
			&p.ID, &p.UserID, &p.BeneficiaryName, &p.BeneficiaryIBAN, &p.BeneficiaryBIC,
			&p.Amount, &p.Currency, &reference, &p.CreatedAt,
			&p.Verified, &verifiedBy, &verifiedAt,
			&p.Submitted, &submittedAt,
			&p.Rejected, &rejectedBy, &rejectedAt, &rejectionReason,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}

		p.Reference = nullableString(reference)
		p.VerifiedBy = nullableString(verifiedBy)
		p.VerifiedAt = nullableTime(verifiedAt)
		p.SubmittedAt = nullableTime(submittedAt)
		p.RejectedBy = nullableString(rejectedBy)
		p.RejectedAt = nullableTime(rejectedAt)
		p.RejectionReason = nullableString(rejectionReason)

		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return payments, nil
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullableTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}
