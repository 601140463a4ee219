package invest

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a non-negative monetary value in a single currency.
//
// The sign of an operation is expressed by which operation is used, never by
// a signed amount: subtracting more than is held is an error, not a negative
// result. Signed derived values (net transaction totals, profit and loss) are
// represented by [Amount] instead.
type Money struct {
	value decimal.Decimal // major unit value, never negative
	cur   string          // ISO 4217, upper case
}

// NewMoney creates a Money value, validating that the amount is not negative
// and the currency is a known 3-letter ISO code.
func NewMoney[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) (Money, error) {
	v := newDecimal(value)
	if v.IsNegative() {
		return Money{}, fmt.Errorf("%w: money amount cannot be negative, got %s", ErrNotAllowed, v)
	}
	cur, err := NormalizeCurrency(currency)
	if err != nil {
		return Money{}, err
	}
	return Money{value: v, cur: cur}, nil
}

// M is the trusted-literal factory for Money, used for constants in tests and
// command-line parsing after validation. It panics on invalid input; use
// NewMoney when the input comes from a caller.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	m, err := NewMoney(value, currency)
	if err != nil {
		panic(err.Error())
	}
	return m
}

// NormalizeCurrency upper-cases a currency code and checks it against the
// ISO 4217 table.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", fmt.Errorf("%w: currency code must be 3 letters, got %q", ErrNotAllowed, code)
	}
	if money.GetCurrency(code) == nil {
		return "", fmt.Errorf("%w: unknown currency code %q", ErrNotAllowed, code)
	}
	return code, nil
}

// currency returns the full currency metadata, never nil.
func (m Money) currency() money.Currency {
	return *money.New(0, m.cur).Currency()
}

// Currency returns the 3-letter currency code.
func (m Money) Currency() string { return m.cur }

// String formats the value with its currency symbol and fraction digits.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }

// sameCurrency guards every binary operation: both operands must share a
// currency, a mismatch is never silently coerced.
func (m Money) sameCurrency(n Money) error {
	if m.cur != n.cur {
		return fmt.Errorf("%w: %s != %s", ErrCurrencyMismatch, m.cur, n.cur)
	}
	return nil
}

// Add returns m+n, failing on a currency mismatch.
func (m Money) Add(n Money) (Money, error) {
	if err := m.sameCurrency(n); err != nil {
		return Money{}, err
	}
	return Money{value: m.value.Add(n.value), cur: m.cur}, nil
}

// Sub returns m-n, failing on a currency mismatch or when the result would be
// negative.
func (m Money) Sub(n Money) (Money, error) {
	if err := m.sameCurrency(n); err != nil {
		return Money{}, err
	}
	v := m.value.Sub(n.value)
	if v.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s - %s would be negative", ErrNotAllowed, m, n)
	}
	return Money{value: v, cur: m.cur}, nil
}

// Mul scales the value by a quantity. Quantity is non-negative by
// construction, so the result always upholds the Money invariant.
func (m Money) Mul(q Quantity) Money {
	return Money{value: m.value.Mul(q.value), cur: m.cur}
}

// Div divides the value by a quantity, failing when the divisor is zero.
func (m Money) Div(q Quantity) (Money, error) {
	if q.IsZero() {
		return Money{}, fmt.Errorf("%w: division by zero quantity", ErrNotAllowed)
	}
	return Money{value: m.value.Div(q.value), cur: m.cur}, nil
}

// MulFactor scales the value by a non-negative decimal factor.
func (m Money) MulFactor(f decimal.Decimal) (Money, error) {
	if f.IsNegative() {
		return Money{}, fmt.Errorf("%w: factor cannot be negative, got %s", ErrNotAllowed, f)
	}
	return Money{value: m.value.Mul(f), cur: m.cur}, nil
}

// Diff returns the signed difference m-n as an Amount.
func (m Money) Diff(n Money) (Amount, error) {
	if err := m.sameCurrency(n); err != nil {
		return Amount{}, err
	}
	return Amount{value: m.value.Sub(n.value), cur: m.cur}, nil
}

// Decimal returns the underlying exact decimal value.
func (m Money) Decimal() decimal.Decimal { return m.value }

// MarshalJSON writes the amount with all its digits so that replaying a
// decoded ledger yields byte-identical results.
func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	w.Append("amount", m.value)
	return w.MarshalJSON()
}
