package invest

import (
	"errors"
	"math/rand"
	"testing"
)

func TestBuyImpact_OpensPosition(t *testing.T) {
	buy := mustBuy(t, "2025-01-10", "pf-1", "AAPL", 10, 150)

	delta, err := BuyImpact(nil, buy)
	if err != nil {
		t.Fatalf("BuyImpact(nil): %v", err)
	}
	if !delta.NewQuantity.Equal(Q(10)) {
		t.Errorf("quantity = %s, want 10", delta.NewQuantity)
	}
	if !delta.NewAveragePrice.Equal(M(150, "USD")) {
		t.Errorf("average = %s, want 150 USD", delta.NewAveragePrice)
	}
	if delta.Closes {
		t.Error("an opening buy reported Closes")
	}
}

func TestSellImpact(t *testing.T) {
	position, err := NewPosition("pf-1", "AAPL", Q(10), M(100, "USD"), MustParse("2025-01-10"))
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}

	sell := mustSell(t, "2025-02-01", "pf-1", "AAPL", 10, 110)
	delta, err := SellImpact(position, sell)
	if err != nil {
		t.Fatalf("SellImpact: %v", err)
	}
	if !delta.Closes {
		t.Error("sell-all did not report Closes")
	}
	if !delta.NewQuantity.IsZero() {
		t.Errorf("quantity = %s, want 0", delta.NewQuantity)
	}
	// the preview never touches the aggregate itself
	if !position.Quantity().Equal(Q(10)) {
		t.Errorf("preview mutated the position: quantity = %s, want 10", position.Quantity())
	}

	if _, err := SellImpact(nil, sell); !errors.Is(err, ErrInsufficientQuantity) {
		t.Errorf("sell with nothing held: got %v, want ErrInsufficientQuantity", err)
	}

	overdraw := mustSell(t, "2025-02-01", "pf-1", "AAPL", 11, 110)
	if _, err := SellImpact(position, overdraw); !errors.Is(err, ErrInsufficientQuantity) {
		t.Errorf("overdraw preview: got %v, want ErrInsufficientQuantity", err)
	}
}

func TestDividendImpact(t *testing.T) {
	position, err := NewPosition("pf-1", "AAPL", Q(10), M(100, "USD"), MustParse("2025-01-10"))
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}

	div := mustDividend(t, "2025-02-01", "pf-1", "AAPL", 5, M(120, "USD"))
	delta, err := DividendImpact(position, div)
	if err != nil {
		t.Fatalf("DividendImpact: %v", err)
	}
	if !delta.NewCurrentPrice.Equal(M(120, "USD")) {
		t.Errorf("current price = %s, want the carried 120 USD", delta.NewCurrentPrice)
	}
	if !delta.NewQuantity.Equal(Q(10)) || !delta.NewAveragePrice.Equal(M(100, "USD")) {
		t.Error("a dividend changed quantity or average")
	}

	if _, err := DividendImpact(nil, div); !errors.Is(err, ErrNotFound) {
		t.Errorf("dividend with no position: got %v, want ErrNotFound", err)
	}
}

func TestImpact_ScopeMismatch(t *testing.T) {
	position, err := NewPosition("pf-1", "AAPL", Q(10), M(100, "USD"), MustParse("2025-01-10"))
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}
	buy := mustBuy(t, "2025-02-01", "pf-1", "GOOG", 1, 100)
	if _, err := BuyImpact(position, buy); !errors.Is(err, ErrNotAllowed) {
		t.Errorf("cross-asset impact: got %v, want ErrNotAllowed", err)
	}
}

// TestImpact_MatchesReplay checks the consistency contract: previewing one
// more transaction against the replayed position reports exactly the state a
// full replay including that transaction reaches.
func TestImpact_MatchesReplay(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		history, next := randomHistory(t, rng)

		position, err := Replay(history)
		if err != nil {
			t.Fatalf("round %d: Replay(history): %v", round, err)
		}

		var delta PositionDelta
		switch v := next.(type) {
		case Buy:
			delta, err = BuyImpact(position, v)
		case Sell:
			delta, err = SellImpact(position, v)
		case Dividend:
			delta, err = DividendImpact(position, v)
		}

		full, fullErr := Replay(append(history, next))

		if err != nil {
			// the preview rejected the transaction: the full replay must too
			if fullErr == nil {
				t.Errorf("round %d: preview rejected (%v) but replay accepted", round, err)
			}
			continue
		}
		if fullErr != nil {
			t.Errorf("round %d: preview accepted but replay rejected (%v)", round, fullErr)
			continue
		}

		if full == nil {
			if !delta.Closes {
				t.Errorf("round %d: replay closed the pair, preview did not", round)
			}
			continue
		}
		if !delta.NewQuantity.Equal(full.Quantity()) ||
			!delta.NewAveragePrice.Equal(full.AveragePrice()) ||
			!delta.NewCurrentPrice.Equal(full.CurrentPrice()) {
			t.Errorf("round %d: preview %+v diverges from replay %s", round, delta, full)
		}
	}
}

// randomHistory builds a valid random buy/sell/dividend history for one pair
// plus one more candidate transaction, possibly invalid (an overdrawing sell).
func randomHistory(t *testing.T, rng *rand.Rand) (history []Transaction, next Transaction) {
	t.Helper()

	held := 0.0
	day := MustParse("2025-01-02")
	seq := int64(0)

	add := func(tx Transaction) Transaction {
		seq++
		return tx.withSeq(seq)
	}

	n := 1 + rng.Intn(8)
	for i := 0; i < n; i++ {
		day = day.Add(1 + rng.Intn(10))
		price := float64(1+rng.Intn(200)) + rng.Float64()

		switch {
		case held == 0 || rng.Intn(3) == 0:
			q := float64(1 + rng.Intn(20))
			history = append(history, add(mustBuy(t, day.String(), "pf-1", "AAPL", q, price)))
			held += q
		case rng.Intn(2) == 0:
			q := float64(1 + rng.Intn(int(held)))
			history = append(history, add(mustSell(t, day.String(), "pf-1", "AAPL", q, price)))
			held -= q
		default:
			history = append(history, add(mustDividend(t, day.String(), "pf-1", "AAPL", price, Money{})))
		}
	}

	// keep the pair open so every preview has a position to stand on
	if held == 0 {
		day = day.Add(1)
		history = append(history, add(mustBuy(t, day.String(), "pf-1", "AAPL", 5, 100)))
		held = 5
	}

	day = day.Add(1 + rng.Intn(10))
	price := float64(1+rng.Intn(200)) + rng.Float64()
	switch rng.Intn(3) {
	case 0:
		next = add(mustBuy(t, day.String(), "pf-1", "AAPL", float64(1+rng.Intn(20)), price))
	case 1:
		// may exceed the held quantity: both sides must then reject it
		next = add(mustSell(t, day.String(), "pf-1", "AAPL", float64(1+rng.Intn(25)), price))
	default:
		next = add(mustDividend(t, day.String(), "pf-1", "AAPL", price, M(price, "USD")))
	}

	if testing.Verbose() {
		t.Logf("history of %d transactions, next %s", len(history), next.What())
	}
	return history, next
}
