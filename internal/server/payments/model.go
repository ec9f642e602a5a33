package payments

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a cross-border transfer request with its lifecycle facets.
// The facets are monotonic: once verified, rejected or submitted flips to
// true it is never cleared. JSON tags mirror the column names so list
// responses expose rows the way the portal front-ends expect them.
type Payment struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	BeneficiaryName string          `json:"beneficiary_name"`
	BeneficiaryIBAN string          `json:"beneficiary_iban"`
	BeneficiaryBIC  string          `json:"beneficiary_bic"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Reference       *string         `json:"reference"`
	CreatedAt       time.Time       `json:"created_at"`

	Verified   bool       `json:"verified"`
	VerifiedBy *string    `json:"verified_by"`
	VerifiedAt *time.Time `json:"verified_at"`

	Submitted   bool       `json:"submitted"`
	SubmittedAt *time.Time `json:"submitted_at"`

	Rejected        bool       `json:"rejected"`
	RejectedBy      *string    `json:"rejected_by"`
	RejectedAt      *time.Time `json:"rejected_at"`
	RejectionReason *string    `json:"rejection_reason"`
}

// SubmittedPayment is the slice of a payment row carried into the
// settlement report when a batch submit picks it up.
type SubmittedPayment struct {
	ID              string          `json:"id"`
	BeneficiaryIBAN string          `json:"beneficiary_iban"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
}
