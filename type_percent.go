package invest

import "fmt"

// Percent is a display and derived-only type; it is never persisted as a
// source of truth, always recomputed from the values it summarizes.
type Percent float64

// ClampPercent keeps a percentage within [0, 100]. Goal progress uses it so
// over-funded goals report 100%, not 120%.
func ClampPercent(p Percent) Percent {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}
