package invest

import (
	"fmt"
	"iter"
	"sort"
)

// Ledger represents an append-only list of transactions.
//
// In a Ledger transactions are always in chronological order, ties between
// same-day transactions broken by the insertion sequence the ledger assigns
// on Append.
type Ledger struct {
	transactions []Transaction
	nextSeq      int64
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Append appends transactions to this ledger, assigning each one its
// insertion sequence, and maintains the chronological order of transactions.
func (l *Ledger) Append(txs ...Transaction) {
	for _, tx := range txs {
		l.nextSeq++
		l.transactions = append(l.transactions, tx.withSeq(l.nextSeq))
	}
	l.stableSort()
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// stableSort sorts the ledger by transaction date, ties broken by insertion
// sequence. The sort is stable, so equal entries keep their relative order.
func (l *Ledger) stableSort() {
	sortTransactions(l.transactions)
}

func sortTransactions(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].When() != txs[j].When() {
			return txs[i].When().Before(txs[j].When())
		}
		return txs[i].Seq() < txs[j].Seq()
	})
}

// Transactions returns an iterator that yields each transaction, in order,
// that matches any of the given filters. With no filter every transaction
// is yielded.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			accept := len(filters) == 0
			for _, filter := range filters {
				if filter(tx) {
					accept = true
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// ByScope returns a predicate that filters transactions by (portfolio, asset) pair.
func ByScope(portfolio, asset string) func(Transaction) bool {
	return func(tx Transaction) bool {
		return tx.PortfolioID() == portfolio && tx.AssetID() == asset
	}
}

// ByType returns a predicate that filters transactions by command type.
func ByType(what CommandType) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.What() == what }
}

// Scopes iterates over the unique (portfolio, asset) pairs present in the
// ledger, in first-appearance order.
func (l *Ledger) Scopes() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		visited := make(map[[2]string]struct{})
		for _, tx := range l.transactions {
			key := [2]string{tx.PortfolioID(), tx.AssetID()}
			if _, ok := visited[key]; ok {
				continue
			}
			visited[key] = struct{}{}
			if !yield(key[0], key[1]) {
				return
			}
		}
	}
}

// OldestTransactionDate returns the date of the earliest transaction in the
// ledger, or the zero Date when the ledger is empty.
func (l *Ledger) OldestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].When()
}

// NewestTransactionDate returns the date of the latest transaction in the
// ledger, or the zero Date when the ledger is empty.
func (l *Ledger) NewestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[len(l.transactions)-1].When()
}

// Position replays the ledger for one (portfolio, asset) pair and returns the
// canonical current position, nil when the pair holds nothing (no buy yet, or
// the holding was fully sold).
func (l *Ledger) Position(portfolio, asset string) (*Position, error) {
	txs := make([]Transaction, 0)
	for _, tx := range l.Transactions(ByScope(portfolio, asset)) {
		txs = append(txs, tx)
	}
	return Replay(txs)
}

// PositionAt is like Position but replays only the history up to and
// including the given date.
func (l *Ledger) PositionAt(portfolio, asset string, on Date) (*Position, error) {
	txs := make([]Transaction, 0)
	for _, tx := range l.Transactions(ByScope(portfolio, asset)) {
		if tx.When().After(on) {
			// the ledger is sorted by date, it is safe to stop
			break
		}
		txs = append(txs, tx)
	}
	return Replay(txs)
}

// Replay folds an ordered transaction history for one (portfolio, asset)
// pair into its canonical position. It is the single source of truth for
// "what is currently held".
//
// The input may arrive in any order: Replay sorts a copy by date, ties broken
// by insertion sequence, before folding. Replaying the same input any number
// of times yields identical output, down to the exact decimal digits.
//
// The result is nil (with a nil error) when the history contains no buy yet,
// or when the final quantity is exactly zero: the position is closed.
func Replay(transactions []Transaction) (*Position, error) {
	if len(transactions) == 0 {
		return nil, nil
	}

	portfolio, asset := transactions[0].PortfolioID(), transactions[0].AssetID()

	txs := make([]Transaction, len(transactions))
	copy(txs, transactions)
	sortTransactions(txs)

	var position *Position
	for _, tx := range txs {
		if tx.PortfolioID() != portfolio || tx.AssetID() != asset {
			return nil, fmt.Errorf("%w: replay input mixes %s/%s with %s/%s",
				ErrNotAllowed, portfolio, asset, tx.PortfolioID(), tx.AssetID())
		}
		switch v := tx.(type) {
		case Buy:
			if position != nil && position.IsClosed() {
				// a fully sold position was removed; the next buy opens a fresh one
				position = nil
			}
			if position == nil {
				p, err := NewPosition(v.PortfolioID(), v.AssetID(), v.Quantity, v.Price, v.When())
				if err != nil {
					return nil, err
				}
				position = p
				continue
			}
			if err := position.AddQuantity(v.Quantity, v.Price, v.When()); err != nil {
				return nil, err
			}
		case Sell:
			if position == nil {
				return nil, fmt.Errorf("%w: sell on %s before any buy of %s/%s",
					ErrInsufficientQuantity, v.When(), portfolio, asset)
			}
			if v.Quantity.GreaterThan(position.Quantity()) {
				return nil, fmt.Errorf("%w: sell of %s on %s exceeds held %s",
					ErrInsufficientQuantity, v.Quantity, v.When(), position.Quantity())
			}
			if err := position.UpdateCurrentPrice(v.Price, v.When()); err != nil {
				return nil, err
			}
			if err := position.ReduceQuantity(v.Quantity, v.When()); err != nil {
				return nil, err
			}
		case Dividend:
			// no quantity or average change; a carried price refreshes the
			// market price of an open position
			if position != nil && v.HasPrice() {
				if err := position.UpdateCurrentPrice(v.Price, v.When()); err != nil {
					return nil, err
				}
			}
		default:
			return nil, fmt.Errorf("%w: unhandled transaction type %T", ErrNotAllowed, tx)
		}
	}

	if position == nil || position.IsClosed() {
		return nil, nil
	}
	return position, nil
}
