package kernel

import (
	"fmt"

	"pos/internal/pkg/errs"
	"pos/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed is returned by Validate on a zero Money.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or MoneyFromString")

// Money is a non-negative amount in the restaurant's single currency, rounded
// to cents on every arithmetic result.
type Money struct {
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}
	return Money{amount: amount.Round(2), guard: guard.NewConstructorGuard()}, nil
}

func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(amount)
}

// MustMoney is MoneyFromString for literals known to be valid.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount).Round(2), guard: guard.NewConstructorGuard()}
}

// Mul multiplies by a non-negative quantity; negative quantities yield zero.
func (m Money) Mul(qty int) Money {
	if qty <= 0 {
		return ZeroMoney()
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(qty))).Round(2), guard: guard.NewConstructorGuard()}
}

// MulRate applies a rate such as a tax rate.
func (m Money) MulRate(rate TaxRate) Money {
	return Money{amount: m.amount.Mul(rate.value).Round(2), guard: guard.NewConstructorGuard()}
}

// DivInt divides by n, returning zero for n <= 0. Used for averages.
func (m Money) DivInt(n int) Money {
	if n <= 0 {
		return ZeroMoney()
	}
	return Money{amount: m.amount.Div(decimal.NewFromInt(int64(n))).Round(2), guard: guard.NewConstructorGuard()}
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders with two decimals, e.g. "12.50".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// Format renders with a currency symbol, e.g. "$12.50".
func (m Money) Format() string {
	return fmt.Sprintf("$%s", m.String())
}

// TaxRate is a fraction in [0, 1], e.g. 0.16 for 16%.
type TaxRate struct {
	value decimal.Decimal
}

func NewTaxRate(value decimal.Decimal) (TaxRate, error) {
	if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(1)) {
		return TaxRate{}, errs.NewValueIsOutOfRangeError("tax rate", value.String(), 0, 1)
	}
	return TaxRate{value: value}, nil
}

func TaxRateFromString(s string) (TaxRate, error) {
	if s == "" {
		return ZeroTaxRate(), nil
	}
	value, err := decimal.NewFromString(s)
	if err != nil {
		return TaxRate{}, errs.NewValueIsInvalidErrorWithCause("tax rate", err)
	}
	return NewTaxRate(value)
}

func ZeroTaxRate() TaxRate {
	return TaxRate{value: decimal.Zero}
}

func (r TaxRate) Value() decimal.Decimal {
	return r.value
}

// Percent renders the rate as a percentage, e.g. "16%".
func (r TaxRate) Percent() string {
	return r.value.Mul(decimal.NewFromInt(100)).String() + "%"
}

func (r TaxRate) String() string {
	return r.value.String()
}
