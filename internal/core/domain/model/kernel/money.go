package kernel

import (
	"errors"
	"fmt"
	"regexp"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed is returned when a zero-value Money is used.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or MoneyFromString constructors")

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

// Amounts are whole cents below MaxAmount, the range every order store can
// hold without rounding.
const AmountScale = 2

// MaxAmount is the exclusive upper bound of an amount.
var MaxAmount = decimal.New(1, 12)

// Money is a non-negative decimal amount in an ISO-4217 currency with at
// most two fraction digits. Amounts keep their exact decimal value; no float
// rounding is involved.
type Money struct { //nolint:recvcheck //using for validation
	amount   decimal.Decimal
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney validates amount and currency and returns the value object.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	m := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(m.setAmount(amount), m.setCurrency(currency)); err != nil {
		return Money{}, err
	}

	return m, nil
}

// MoneyFromString parses a decimal string such as "130.00".
func MoneyFromString(amount string, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d, currency)
}

// Validate reports whether the Money was built by a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the exact decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the three-letter currency code.
func (m Money) Currency() string {
	return m.currency
}

// AmountString renders the amount with two fraction digits, e.g. "130.00".
// It is exact since amounts never carry more digits.
func (m Money) AmountString() string {
	return m.amount.StringFixed(AmountScale)
}

// String implements fmt.Stringer.
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.AmountString(), m.currency)
}

// IsEqual compares amount (numerically) and currency.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m *Money) setAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, MaxAmount.String())
	}
	if amount.GreaterThanOrEqual(MaxAmount) {
		return errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, MaxAmount.String())
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s has more than %d fraction digits", amount.String(), AmountScale))
	}

	m.amount = amount
	return nil
}

func (m *Money) setCurrency(currency string) error {
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	if !currencyCode.MatchString(currency) {
		return errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not an ISO-4217 code", currency))
	}

	m.currency = currency
	return nil
}
