package invest

import (
	"errors"
	"testing"
)

func TestNewBuy(t *testing.T) {
	day := MustParse("2025-03-10")

	tests := []struct {
		name      string
		portfolio string
		asset     string
		quantity  Quantity
		price     Money
		fees      Money
		err       bool
	}{
		{"valid", "pf-1", "AAPL", Q(10), M(150, "USD"), M(5, "USD"), false},
		{"no fees", "pf-1", "AAPL", Q(10), M(150, "USD"), Money{}, false},
		{"missing portfolio", "", "AAPL", Q(10), M(150, "USD"), Money{}, true},
		{"missing asset", "pf-1", "", Q(10), M(150, "USD"), Money{}, true},
		{"zero quantity", "pf-1", "AAPL", Q(0), M(150, "USD"), Money{}, true},
		{"zero price", "pf-1", "AAPL", Q(10), M(0, "USD"), Money{}, true},
		{"fees exceed gross", "pf-1", "AAPL", Q(1), M(10, "USD"), M(11, "USD"), true},
		{"fees in another currency", "pf-1", "AAPL", Q(10), M(150, "USD"), M(5, "EUR"), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBuy(day, "", tc.portfolio, tc.asset, tc.quantity, tc.price, tc.fees)
			if (err != nil) != tc.err {
				t.Errorf("NewBuy() error = %v, want error %v", err, tc.err)
			}
		})
	}
}

func TestTransaction_Total(t *testing.T) {
	day := MustParse("2025-03-10")

	buy, err := NewBuy(day, "", "pf-1", "AAPL", Q(10), M(150, "USD"), M(5, "USD"))
	if err != nil {
		t.Fatalf("NewBuy: %v", err)
	}
	// 10*150 - 5
	if want := asAmount(M(1495, "USD")); !buy.Total().Equal(want) {
		t.Errorf("buy total = %s, want %s", buy.Total(), want)
	}

	sell, err := NewSell(day, "", "pf-1", "AAPL", Q(10), M(150, "USD"), M(5, "USD"))
	if err != nil {
		t.Fatalf("NewSell: %v", err)
	}
	// a sell's net total flows out of the position
	if want := asAmount(M(1495, "USD")).Neg(); !sell.Total().Equal(want) {
		t.Errorf("sell total = %s, want %s", sell.Total(), want)
	}

	div, err := NewDividend(day, "", "pf-1", "AAPL", M(20, "USD"), M(2, "USD"), Money{})
	if err != nil {
		t.Fatalf("NewDividend: %v", err)
	}
	if want := asAmount(M(18, "USD")); !div.Total().Equal(want) {
		t.Errorf("dividend total = %s, want %s", div.Total(), want)
	}
}

func TestNewDividend(t *testing.T) {
	day := MustParse("2025-03-10")

	tests := []struct {
		name   string
		income Money
		fees   Money
		price  Money
		err    bool
	}{
		{"plain income", M(20, "USD"), Money{}, Money{}, false},
		{"with price", M(20, "USD"), Money{}, M(151, "USD"), false},
		{"zero income", M(0, "USD"), Money{}, Money{}, true},
		{"fees exceed income", M(20, "USD"), M(21, "USD"), Money{}, true},
		{"zero carried price", M(20, "USD"), Money{}, M(0, "USD"), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewDividend(day, "", "pf-1", "AAPL", tc.income, tc.fees, tc.price)
			if (err != nil) != tc.err {
				t.Fatalf("NewDividend() error = %v, want error %v", err, tc.err)
			}
			if err == nil {
				wantPrice := tc.price.Currency() != ""
				if got.HasPrice() != wantPrice {
					t.Errorf("HasPrice() = %v, want %v", got.HasPrice(), wantPrice)
				}
				if !got.Quantity().IsZero() {
					t.Errorf("a dividend moves no units, got quantity %s", got.Quantity())
				}
			}
		})
	}
}

func TestTransaction_EqualIgnoresSequence(t *testing.T) {
	day := MustParse("2025-03-10")
	a, _ := NewBuy(day, "memo", "pf-1", "AAPL", Q(10), M(150, "USD"), Money{})
	b := a.withSeq(42)

	if !a.Equal(b) {
		t.Errorf("the insertion sequence must not affect transaction identity")
	}

	other, _ := NewBuy(day, "memo", "pf-1", "GOOG", Q(10), M(150, "USD"), Money{})
	if a.Equal(other) {
		t.Errorf("transactions on different assets compared equal")
	}
}

func TestNewBuy_ZeroCarriedPriceInvalid(t *testing.T) {
	// a zero-valued M(0, ...) price is still a currency-carrying zero: rejected
	_, err := NewBuy(MustParse("2025-03-10"), "", "pf-1", "AAPL", Q(1), M(0, "USD"), Money{})
	if !errors.Is(err, ErrNotAllowed) {
		t.Errorf("got %v, want ErrNotAllowed", err)
	}
}
