package invest

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Quantity represents a non-negative number of units of an asset.
// Zero is a valid, meaningful value (a dividend moves no units).
type Quantity struct {
	value decimal.Decimal
}

// NewQuantity creates a Quantity, rejecting negative values.
func NewQuantity[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) (Quantity, error) {
	v := newDecimal(value)
	if v.IsNegative() {
		return Quantity{}, fmt.Errorf("%w: quantity cannot be negative, got %s", ErrNotAllowed, v)
	}
	return Quantity{value: v}, nil
}

// Q is the trusted-literal factory for Quantity. It panics on negative input;
// use NewQuantity when the input comes from a caller.
func Q[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Quantity {
	q, err := NewQuantity(value)
	if err != nil {
		panic(err.Error())
	}
	return q
}

func (q Quantity) Equal(p Quantity) bool              { return q.value.Equal(p.value) }
func (q Quantity) LessThan(p Quantity) bool           { return q.value.LessThan(p.value) }
func (q Quantity) LessThanOrEqual(p Quantity) bool    { return q.value.LessThanOrEqual(p.value) }
func (q Quantity) GreaterThan(p Quantity) bool        { return q.value.GreaterThan(p.value) }
func (q Quantity) GreaterThanOrEqual(p Quantity) bool { return q.value.GreaterThanOrEqual(p.value) }
func (q Quantity) IsZero() bool                       { return q.value.IsZero() }
func (q Quantity) IsPositive() bool                   { return q.value.IsPositive() }
func (q Quantity) String() string                     { return q.value.String() }

// Add returns q+p.
func (q Quantity) Add(p Quantity) Quantity { return Quantity{value: q.value.Add(p.value)} }

// Mul returns q*p.
func (q Quantity) Mul(p Quantity) Quantity { return Quantity{value: q.value.Mul(p.value)} }

// Sub returns q-p, failing when the result would be negative.
func (q Quantity) Sub(p Quantity) (Quantity, error) {
	v := q.value.Sub(p.value)
	if v.IsNegative() {
		return Quantity{}, fmt.Errorf("%w: %s - %s would be negative", ErrNotAllowed, q, p)
	}
	return Quantity{value: v}, nil
}

// Div returns q/p, failing when the divisor is zero.
func (q Quantity) Div(p Quantity) (Quantity, error) {
	if p.IsZero() {
		return Quantity{}, fmt.Errorf("%w: division by zero quantity", ErrNotAllowed)
	}
	return Quantity{value: q.value.Div(p.value)}, nil
}

// Decimal returns the underlying exact decimal value.
func (q Quantity) Decimal() decimal.Decimal { return q.value }

// MarshalJSON implements the json.Marshaler interface for Quantity.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return q.value.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Quantity.
func (q *Quantity) UnmarshalJSON(decimalBytes []byte) error {
	if err := q.value.UnmarshalJSON(decimalBytes); err != nil {
		return err
	}
	if q.value.IsNegative() {
		return fmt.Errorf("%w: quantity cannot be negative, got %s", ErrNotAllowed, q.value)
	}
	return nil
}
