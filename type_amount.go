package invest

import "github.com/shopspring/decimal"

// Amount is a signed monetary value derived from non-negative Money operands:
// the net total of a transaction, or a profit/loss figure. It is never
// persisted as a source of truth and never accepted as an input; callers
// always recompute it from the Money values it was derived from.
type Amount struct {
	value decimal.Decimal
	cur   string
}

// asAmount widens a non-negative Money into a positive Amount.
func asAmount(m Money) Amount { return Amount{value: m.value, cur: m.cur} }

// Currency returns the 3-letter currency code.
func (a Amount) Currency() string { return a.cur }

func (a Amount) IsZero() bool     { return a.value.IsZero() }
func (a Amount) IsPositive() bool { return a.value.IsPositive() }
func (a Amount) IsNegative() bool { return a.value.IsNegative() }

func (a Amount) Equal(b Amount) bool { return a.value.Equal(b.value) && a.cur == b.cur }

// Abs returns the magnitude of the amount as Money.
func (a Amount) Abs() Money { return Money{value: a.value.Abs(), cur: a.cur} }

// Neg returns the amount with its sign flipped.
func (a Amount) Neg() Amount { return Amount{value: a.value.Neg(), cur: a.cur} }

// Add returns a+b, failing on a currency mismatch.
func (a Amount) Add(b Amount) (Amount, error) {
	if a.cur != b.cur {
		return Amount{}, ErrCurrencyMismatch
	}
	return Amount{value: a.value.Add(b.value), cur: a.cur}, nil
}

// PercentOf expresses the amount as a percentage of a base Money value.
// A zero base yields 0% rather than a division by zero.
func (a Amount) PercentOf(base Money) Percent {
	if base.IsZero() {
		return 0
	}
	ratio := a.value.Div(base.value)
	return Percent(ratio.InexactFloat64() * 100)
}

// Decimal returns the underlying exact decimal value.
func (a Amount) Decimal() decimal.Decimal { return a.value }

// String formats the amount like Money, with a leading minus for losses.
func (a Amount) String() string {
	if a.value.IsNegative() {
		return "-" + a.Abs().String()
	}
	return a.Abs().String()
}

// SignedString formats the amount with an explicit sign; zero is "-".
func (a Amount) SignedString() string {
	if a.value.IsZero() {
		return "-"
	}
	if a.value.IsPositive() {
		return "+" + a.String()
	}
	return a.String()
}
