package invest

import (
	"fmt"
)

// Position is the aggregated current holding of one asset within one
// portfolio: quantity held, weighted-average acquisition price and last known
// market price. It is the result of replaying the pair's ledger; it is never
// the source of truth itself.
//
// Invariants, maintained by every method:
//   - quantity is never negative
//   - averagePrice is positive whenever quantity is positive
//   - currentPrice is always positive
//   - averagePrice and currentPrice share one currency
type Position struct {
	portfolio    string
	asset        string
	quantity     Quantity
	averagePrice Money
	currentPrice Money
	createdAt    Date
	updatedAt    Date
}

// NewPosition opens a position with its first acquisition. Positions are only
// ever created by a first Buy, so the opening quantity and price must both be
// positive.
func NewPosition(portfolio, asset string, quantity Quantity, price Money, on Date) (*Position, error) {
	if portfolio == "" || asset == "" {
		return nil, fmt.Errorf("%w: position requires portfolio and asset ids", ErrNotAllowed)
	}
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("%w: opening quantity must be positive, got %s", ErrNotAllowed, quantity)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: opening price must be positive, got %s", ErrNotAllowed, price)
	}
	return &Position{
		portfolio:    portfolio,
		asset:        asset,
		quantity:     quantity,
		averagePrice: price,
		currentPrice: price,
		createdAt:    on,
		updatedAt:    on,
	}, nil
}

func (p *Position) PortfolioID() string  { return p.portfolio }
func (p *Position) AssetID() string      { return p.asset }
func (p *Position) Quantity() Quantity   { return p.quantity }
func (p *Position) AveragePrice() Money  { return p.averagePrice }
func (p *Position) CurrentPrice() Money  { return p.currentPrice }
func (p *Position) CreatedAt() Date      { return p.createdAt }
func (p *Position) UpdatedAt() Date      { return p.updatedAt }
func (p *Position) Currency() string     { return p.averagePrice.Currency() }

// IsClosed reports whether the held quantity has returned to zero.
func (p *Position) IsClosed() bool { return p.quantity.IsZero() }

// AddQuantity records an acquisition, recomputing the weighted-average price:
//
//	newAverage = (average*quantity + price*q) / (quantity + q)
func (p *Position) AddQuantity(q Quantity, price Money, on Date) error {
	if !q.IsPositive() {
		return fmt.Errorf("%w: acquired quantity must be positive, got %s", ErrNotAllowed, q)
	}
	if !price.IsPositive() {
		return fmt.Errorf("%w: acquisition price must be positive, got %s", ErrNotAllowed, price)
	}
	invested, err := p.averagePrice.Mul(p.quantity).Add(price.Mul(q))
	if err != nil {
		return err
	}
	total := p.quantity.Add(q)
	average, err := invested.Div(total)
	if err != nil {
		return err
	}
	p.quantity = total
	p.averagePrice = average
	p.currentPrice = price
	p.updatedAt = on
	return nil
}

// ReduceQuantity records a disposal. The weighted-average price is unchanged:
// this is average-cost accounting, no lot is selected.
func (p *Position) ReduceQuantity(q Quantity, on Date) error {
	if !q.IsPositive() {
		return fmt.Errorf("%w: disposed quantity must be positive, got %s", ErrNotAllowed, q)
	}
	if q.GreaterThan(p.quantity) {
		return fmt.Errorf("%w: cannot dispose %s, only %s held", ErrInsufficientQuantity, q, p.quantity)
	}
	remaining, err := p.quantity.Sub(q)
	if err != nil {
		return err
	}
	p.quantity = remaining
	p.updatedAt = on
	return nil
}

// UpdateCurrentPrice refreshes the last known market price. No other field changes.
func (p *Position) UpdateCurrentPrice(price Money, on Date) error {
	if !price.IsPositive() {
		return fmt.Errorf("%w: current price must be positive, got %s", ErrNotAllowed, price)
	}
	if err := p.averagePrice.sameCurrency(price); err != nil {
		return err
	}
	p.currentPrice = price
	p.updatedAt = on
	return nil
}

// TotalInvested returns averagePrice*quantity, the cost basis of the holding.
func (p *Position) TotalInvested() Money { return p.averagePrice.Mul(p.quantity) }

// CurrentValue returns currentPrice*quantity, the market value of the holding.
func (p *Position) CurrentValue() Money { return p.currentPrice.Mul(p.quantity) }

// ProfitLoss returns the signed difference between current value and cost basis.
func (p *Position) ProfitLoss() Amount {
	// both sides share a currency by invariant
	pl, _ := p.CurrentValue().Diff(p.TotalInvested())
	return pl
}

// ProfitLossPercent returns the profit or loss relative to the cost basis,
// 0% when nothing is invested.
func (p *Position) ProfitLossPercent() Percent {
	return p.ProfitLoss().PercentOf(p.TotalInvested())
}

// clone returns an independent copy, used by impact previews so the stored
// aggregate is never half-written.
func (p *Position) clone() *Position {
	c := *p
	return &c
}

func (p *Position) String() string {
	return fmt.Sprintf("%s/%s: %s @ %s (now %s)", p.portfolio, p.asset, p.quantity, p.averagePrice, p.currentPrice)
}
