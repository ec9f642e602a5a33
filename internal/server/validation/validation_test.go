package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayment() PaymentInput {
	return PaymentInput{
		BeneficiaryName: "Jane O'Connor-Smith",
		BeneficiaryIBAN: "GB29NWBK60161331926819",
		BeneficiaryBIC:  "NWBKGB2L",
		Amount:          decimal.RequireFromString("150.25"),
		Currency:        "GBP",
		Reference:       "Invoice 42",
	}
}

func fieldNames(v Violations) []string {
	names := make([]string, 0, len(v))
	for _, item := range v {
		names = append(names, item.Field)
	}
	return names
}

func TestRegistration(t *testing.T) {
	tests := []struct {
		name       string
		input      RegistrationInput
		wantFields []string
	}{
		{"valid", RegistrationInput{Email: "alice@example.com", Password: "GoodPass123!"}, nil},
		{"short password", RegistrationInput{Email: "alice@example.com", Password: "short1!"}, []string{"password"}},
		{"missing classes", RegistrationInput{Email: "alice@example.com", Password: "alllowercase1234"}, []string{"password"}},
		{"underscore is not a symbol", RegistrationInput{Email: "alice@example.com", Password: "GoodPass1234_"}, []string{"password"}},
		{"bad email", RegistrationInput{Email: "not-an-email", Password: "GoodPass123!"}, []string{"email"}},
		{"email without tld", RegistrationInput{Email: "alice@localhost", Password: "GoodPass123!"}, []string{"email"}},
		{"everything wrong", RegistrationInput{Email: "nope", Password: "x"}, []string{"email", "password"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, violations := Registration(tc.input)
			assert.ElementsMatch(t, tc.wantFields, fieldNames(violations))
		})
	}
}

func TestLogin(t *testing.T) {
	_, violations := Login(LoginInput{Email: "alice@example.com", Password: "whatever"})
	assert.Empty(t, violations)

	_, violations = Login(LoginInput{Email: "bad", Password: ""})
	assert.ElementsMatch(t, []string{"email", "password"}, fieldNames(violations))
}

func TestPaymentCreation_Valid(t *testing.T) {
	normalized, violations := PaymentCreation(validPayment())
	require.Empty(t, violations)
	assert.Equal(t, "GB29NWBK60161331926819", normalized.BeneficiaryIBAN)
	assert.Equal(t, "NWBKGB2L", normalized.BeneficiaryBIC)
	assert.Equal(t, "GBP", normalized.Currency)
}

func TestPaymentCreation_NormalizesIBAN(t *testing.T) {
	in := validPayment()
	in.BeneficiaryIBAN = "gb29 NWBK 6016 1331 9268 19"
	in.BeneficiaryBIC = "nwbk gb2l"

	normalized, violations := PaymentCreation(in)
	require.Empty(t, violations)
	assert.Equal(t, "GB29NWBK60161331926819", normalized.BeneficiaryIBAN)
	assert.Equal(t, "NWBKGB2L", normalized.BeneficiaryBIC)
}

func TestPaymentCreation_Violations(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*PaymentInput)
		wantFields []string
	}{
		{"bad iban", func(p *PaymentInput) { p.BeneficiaryIBAN = "1234" }, []string{"beneficiary_iban"}},
		{"bad bic", func(p *PaymentInput) { p.BeneficiaryBIC = "TOOLONGBIC12345" }, []string{"beneficiary_bic"}},
		{"name too short", func(p *PaymentInput) { p.BeneficiaryName = "J" }, []string{"beneficiary_name"}},
		{"name bad charset", func(p *PaymentInput) { p.BeneficiaryName = "ACME Corp #1" }, []string{"beneficiary_name"}},
		{"zero amount", func(p *PaymentInput) { p.Amount = decimal.Zero }, []string{"amount"}},
		{"negative amount", func(p *PaymentInput) { p.Amount = decimal.RequireFromString("-5") }, []string{"amount"}},
		{"amount too large", func(p *PaymentInput) { p.Amount = decimal.RequireFromString("1000000.01") }, []string{"amount"}},
		{"too many decimals", func(p *PaymentInput) { p.Amount = decimal.RequireFromString("10.555") }, []string{"amount"}},
		{"unlisted currency", func(p *PaymentInput) { p.Currency = "CHF" }, []string{"currency"}},
		{"reference too long", func(p *PaymentInput) { p.Reference = string(make([]byte, 141)) }, []string{"reference"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validPayment()
			tc.mutate(&in)
			_, violations := PaymentCreation(in)
			assert.ElementsMatch(t, tc.wantFields, fieldNames(violations))
		})
	}
}

func TestPaymentCreation_ReportsAllViolations(t *testing.T) {
	in := PaymentInput{
		BeneficiaryName: "?",
		BeneficiaryIBAN: "nope",
		BeneficiaryBIC:  "x",
		Amount:          decimal.Zero,
		Currency:        "XXX",
		Reference:       string(make([]byte, 200)),
	}

	_, violations := PaymentCreation(in)
	assert.Len(t, violations, 6)
}

func TestPaymentCreation_TrailingZerosAccepted(t *testing.T) {
	in := validPayment()
	in.Amount = decimal.RequireFromString("10.5000")

	_, violations := PaymentCreation(in)
	assert.Empty(t, violations)
}

func TestMaxBoundaryAmount(t *testing.T) {
	in := validPayment()
	in.Amount = decimal.NewFromInt(1_000_000)

	_, violations := PaymentCreation(in)
	assert.Empty(t, violations)
}
