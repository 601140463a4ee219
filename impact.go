package invest

import "fmt"

// PositionDelta describes the state a position would reach if one more
// transaction were applied, without touching the stored aggregate. Callers
// use it for previews and single-step updates; the full replay remains the
// source of truth and the two are kept provably consistent.
type PositionDelta struct {
	NewQuantity      Quantity
	NewAveragePrice  Money
	NewCurrentPrice  Money
	NewTotalInvested Money
	NewCurrentValue  Money
	NewProfitLoss    Amount
	Closes           bool // the transaction brings the quantity back to zero
}

func deltaOf(p *Position) PositionDelta {
	return PositionDelta{
		NewQuantity:      p.Quantity(),
		NewAveragePrice:  p.AveragePrice(),
		NewCurrentPrice:  p.CurrentPrice(),
		NewTotalInvested: p.TotalInvested(),
		NewCurrentValue:  p.CurrentValue(),
		NewProfitLoss:    p.ProfitLoss(),
		Closes:           p.IsClosed(),
	}
}

// BuyImpact computes the effect of one buy against the current position.
// A nil position is valid: the buy would open one.
func BuyImpact(position *Position, tx Buy) (PositionDelta, error) {
	if position == nil || position.IsClosed() {
		opened, err := NewPosition(tx.PortfolioID(), tx.AssetID(), tx.Quantity, tx.Price, tx.When())
		if err != nil {
			return PositionDelta{}, err
		}
		return deltaOf(opened), nil
	}
	if err := sameScope(position, tx); err != nil {
		return PositionDelta{}, err
	}
	next := position.clone()
	if err := next.AddQuantity(tx.Quantity, tx.Price, tx.When()); err != nil {
		return PositionDelta{}, err
	}
	return deltaOf(next), nil
}

// SellImpact computes the effect of one sell against the current position.
// It fails when there is no position or the held quantity is insufficient.
func SellImpact(position *Position, tx Sell) (PositionDelta, error) {
	if position == nil || position.IsClosed() {
		return PositionDelta{}, fmt.Errorf("%w: nothing held to sell for %s/%s",
			ErrInsufficientQuantity, tx.PortfolioID(), tx.AssetID())
	}
	if err := sameScope(position, tx); err != nil {
		return PositionDelta{}, err
	}
	next := position.clone()
	if err := next.UpdateCurrentPrice(tx.Price, tx.When()); err != nil {
		return PositionDelta{}, err
	}
	if err := next.ReduceQuantity(tx.Quantity, tx.When()); err != nil {
		return PositionDelta{}, err
	}
	return deltaOf(next), nil
}

// DividendImpact computes the effect of one dividend: no quantity or average
// change, only a price refresh when the dividend carries one.
func DividendImpact(position *Position, tx Dividend) (PositionDelta, error) {
	if position == nil {
		return PositionDelta{}, fmt.Errorf("%w: no position for %s/%s",
			ErrNotFound, tx.PortfolioID(), tx.AssetID())
	}
	if err := sameScope(position, tx); err != nil {
		return PositionDelta{}, err
	}
	next := position.clone()
	if tx.HasPrice() && !next.IsClosed() {
		if err := next.UpdateCurrentPrice(tx.Price, tx.When()); err != nil {
			return PositionDelta{}, err
		}
	}
	return deltaOf(next), nil
}

func sameScope(position *Position, tx Transaction) error {
	if position.PortfolioID() != tx.PortfolioID() || position.AssetID() != tx.AssetID() {
		return fmt.Errorf("%w: transaction %s/%s does not belong to position %s/%s",
			ErrNotAllowed, tx.PortfolioID(), tx.AssetID(), position.PortfolioID(), position.AssetID())
	}
	return nil
}
