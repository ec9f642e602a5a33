// Package validation implements the input schemas for registration, login
// and payment creation. Each schema returns the normalized input together
// with every field violation found, so the portal can render all errors at
// once instead of failing on the first field. Nothing here touches
// persisted state.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations is a non-empty list of field-level failures.
type Violations []Violation

func (v Violations) Error() string {
	parts := make([]string, 0, len(v))
	for _, item := range v {
		parts = append(parts, item.Field+": "+item.Message)
	}
	return strings.Join(parts, "; ")
}

var (
	emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	nameRegexp  = regexp.MustCompile(`^[A-Za-z \-'.]{2,120}$`)
	ibanRegexp  = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]{11,30}$`)
	bicRegexp   = regexp.MustCompile(`^[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}([A-Z0-9]{3})?$`)

	whitespaceRegexp = regexp.MustCompile(`\s+`)
)

var allowedCurrencies = map[string]struct{}{
	"USD": {}, "EUR": {}, "GBP": {}, "ZAR": {}, "AUD": {}, "CAD": {}, "JPY": {},
}

var maxAmount = decimal.NewFromInt(1_000_000)

const (
	passwordMinLen = 12
	passwordMaxLen = 128

	referenceMaxLen = 140
)

type RegistrationInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PaymentInput struct {
	BeneficiaryName string          `json:"beneficiary_name"`
	BeneficiaryIBAN string          `json:"beneficiary_iban"`
	BeneficiaryBIC  string          `json:"beneficiary_bic"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Reference       string          `json:"reference"`
}

// Registration validates the registration schema: a syntactically valid
// email and a 12–128 character password containing lower, upper, digit and
// symbol.
func Registration(in RegistrationInput) (RegistrationInput, Violations) {
	var violations Violations

	in.Email = strings.TrimSpace(in.Email)
	if !emailRegexp.MatchString(in.Email) {
		violations = append(violations, Violation{Field: "email", Message: "must be a valid email address"})
	}

	if len(in.Password) < passwordMinLen || len(in.Password) > passwordMaxLen {
		violations = append(violations, Violation{Field: "password", Message: "must be 12-128 characters long"})
	} else if !hasRequiredClasses(in.Password) {
		violations = append(violations, Violation{Field: "password", Message: "must include upper, lower, number, and symbol"})
	}

	return in, violations
}

// Login validates the login schema. Password content is not inspected
// beyond presence; credentials are checked against the store, not the
// registration policy, so old passwords keep working if the policy changes.
func Login(in LoginInput) (LoginInput, Violations) {
	var violations Violations

	in.Email = strings.TrimSpace(in.Email)
	if !emailRegexp.MatchString(in.Email) {
		violations = append(violations, Violation{Field: "email", Message: "must be a valid email address"})
	}

	if in.Password == "" {
		violations = append(violations, Violation{Field: "password", Message: "is required"})
	}

	return in, violations
}

// PaymentCreation validates and normalizes the payment-creation schema.
// IBAN and BIC are uppercased with whitespace stripped before matching;
// the currency code is uppercased before the whitelist check.
func PaymentCreation(in PaymentInput) (PaymentInput, Violations) {
	var violations Violations

	in.BeneficiaryName = strings.TrimSpace(in.BeneficiaryName)
	if !nameRegexp.MatchString(in.BeneficiaryName) {
		violations = append(violations, Violation{Field: "beneficiary_name", Message: "must be 2-120 letters, spaces, hyphens, apostrophes or periods"})
	}

	in.BeneficiaryIBAN = normalizeCode(in.BeneficiaryIBAN)
	if !ibanRegexp.MatchString(in.BeneficiaryIBAN) {
		violations = append(violations, Violation{Field: "beneficiary_iban", Message: "must be a valid IBAN"})
	}

	in.BeneficiaryBIC = normalizeCode(in.BeneficiaryBIC)
	if !bicRegexp.MatchString(in.BeneficiaryBIC) {
		violations = append(violations, Violation{Field: "beneficiary_bic", Message: "must be a valid BIC/SWIFT code"})
	}

	switch {
	case !in.Amount.IsPositive():
		violations = append(violations, Violation{Field: "amount", Message: "must be positive"})
	case in.Amount.GreaterThan(maxAmount):
		violations = append(violations, Violation{Field: "amount", Message: "must not exceed 1000000"})
	case !in.Amount.Equal(in.Amount.Round(2)):
		violations = append(violations, Violation{Field: "amount", Message: "must have at most 2 decimal places"})
	}

	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if _, ok := allowedCurrencies[in.Currency]; !ok {
		violations = append(violations, Violation{Field: "currency", Message: "must be one of USD, EUR, GBP, ZAR, AUD, CAD, JPY"})
	}

	if len(in.Reference) > referenceMaxLen {
		violations = append(violations, Violation{Field: "reference", Message: "must be at most 140 characters"})
	}

	return in, violations
}

func normalizeCode(s string) string {
	return strings.ToUpper(whitespaceRegexp.ReplaceAllString(s, ""))
}

func hasRequiredClasses(password string) bool {
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsSpace(r) && r != '_':
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}
