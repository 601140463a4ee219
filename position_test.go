package invest

import (
	"errors"
	"testing"
)

func TestPosition_WeightedAverage(t *testing.T) {
	p, err := NewPosition("pf-1", "AAPL", Q(10), M(10, "USD"), MustParse("2025-01-10"))
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}

	if err := p.AddQuantity(Q(10), M(20, "USD"), MustParse("2025-02-10")); err != nil {
		t.Fatalf("AddQuantity: %v", err)
	}

	// (10*10 + 10*20) / 20 = 15
	if !p.AveragePrice().Equal(M(15, "USD")) {
		t.Errorf("average after second buy = %s, want 15 USD", p.AveragePrice())
	}
	if !p.Quantity().Equal(Q(20)) {
		t.Errorf("quantity = %s, want 20", p.Quantity())
	}
	// a buy is also the latest market observation
	if !p.CurrentPrice().Equal(M(20, "USD")) {
		t.Errorf("current price = %s, want 20 USD", p.CurrentPrice())
	}
	if !p.TotalInvested().Equal(M(300, "USD")) {
		t.Errorf("total invested = %s, want 300 USD", p.TotalInvested())
	}
}

func TestPosition_WeightedAverageLaw(t *testing.T) {
	tests := []struct {
		name           string
		q1, p1, q2, p2 float64
		wantAverage    float64
		wantQuantity   float64
	}{
		{"same price stays put", 10, 100, 20, 100, 100, 30},
		{"symmetric spread meets in the middle", 10, 50, 10, 150, 100, 20},
		{"weighted toward the larger lot", 30, 10, 10, 50, 20, 40},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewPosition("pf-1", "AAPL", Q(tc.q1), M(tc.p1, "USD"), MustParse("2025-01-10"))
			if err != nil {
				t.Fatalf("NewPosition: %v", err)
			}
			if err := p.AddQuantity(Q(tc.q2), M(tc.p2, "USD"), MustParse("2025-02-10")); err != nil {
				t.Fatalf("AddQuantity: %v", err)
			}
			if !p.AveragePrice().Equal(M(tc.wantAverage, "USD")) {
				t.Errorf("average = %s, want %v USD", p.AveragePrice(), tc.wantAverage)
			}
			if !p.Quantity().Equal(Q(tc.wantQuantity)) {
				t.Errorf("quantity = %s, want %v", p.Quantity(), tc.wantQuantity)
			}
		})
	}
}

func TestPosition_ReduceKeepsAverage(t *testing.T) {
	p, err := NewPosition("pf-1", "AAPL", Q(100), M(25.50, "USD"), MustParse("2025-01-10"))
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}

	if err := p.UpdateCurrentPrice(M(30, "USD"), MustParse("2025-03-01")); err != nil {
		t.Fatalf("UpdateCurrentPrice: %v", err)
	}
	if err := p.ReduceQuantity(Q(40), MustParse("2025-03-01")); err != nil {
		t.Fatalf("ReduceQuantity: %v", err)
	}

	// average-cost accounting: the disposal picks no lot
	if !p.AveragePrice().Equal(M(25.50, "USD")) {
		t.Errorf("average after sell = %s, want unchanged 25.50 USD", p.AveragePrice())
	}
	if !p.Quantity().Equal(Q(60)) {
		t.Errorf("quantity after sell = %s, want 60", p.Quantity())
	}
}

func TestPosition_Overdraw(t *testing.T) {
	p, err := NewPosition("pf-1", "AAPL", Q(10), M(10, "USD"), MustParse("2025-01-10"))
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}

	err = p.ReduceQuantity(Q(11), MustParse("2025-02-01"))
	if !errors.Is(err, ErrInsufficientQuantity) {
		t.Fatalf("overdraw: got %v, want ErrInsufficientQuantity", err)
	}
	// a rejected disposal leaves the position untouched
	if !p.Quantity().Equal(Q(10)) {
		t.Errorf("quantity after rejected sell = %s, want 10", p.Quantity())
	}
}

func TestPosition_ProfitLoss(t *testing.T) {
	p, err := NewPosition("pf-1", "AAPL", Q(10), M(100, "USD"), MustParse("2025-01-10"))
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}

	if err := p.UpdateCurrentPrice(M(110, "USD"), MustParse("2025-02-01")); err != nil {
		t.Fatalf("UpdateCurrentPrice: %v", err)
	}
	if pl := p.ProfitLoss(); !pl.Equal(asAmount(M(100, "USD"))) {
		t.Errorf("profit = %s, want +100 USD", pl)
	}
	if pct := p.ProfitLossPercent(); !pct.Equal(10) {
		t.Errorf("profit percent = %s, want 10%%", pct)
	}

	if err := p.UpdateCurrentPrice(M(90, "USD"), MustParse("2025-03-01")); err != nil {
		t.Fatalf("UpdateCurrentPrice: %v", err)
	}
	if pl := p.ProfitLoss(); !pl.Equal(asAmount(M(100, "USD")).Neg()) {
		t.Errorf("loss = %s, want -100 USD", pl)
	}
	if pct := p.ProfitLossPercent(); !pct.Equal(-10) {
		t.Errorf("loss percent = %s, want -10%%", pct)
	}
}

func TestPosition_CurrencyGuard(t *testing.T) {
	p, err := NewPosition("pf-1", "AAPL", Q(10), M(100, "USD"), MustParse("2025-01-10"))
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}
	if err := p.UpdateCurrentPrice(M(90, "EUR"), MustParse("2025-02-01")); !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("price in another currency: got %v, want ErrCurrencyMismatch", err)
	}
}

func TestPosition_Close(t *testing.T) {
	p, err := NewPosition("pf-1", "AAPL", Q(10), M(100, "USD"), MustParse("2025-01-10"))
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}
	if p.IsClosed() {
		t.Fatal("freshly opened position reported closed")
	}
	if err := p.ReduceQuantity(Q(10), MustParse("2025-02-01")); err != nil {
		t.Fatalf("ReduceQuantity: %v", err)
	}
	if !p.IsClosed() {
		t.Error("fully sold position not reported closed")
	}
}
