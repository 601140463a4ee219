package invest

import "fmt"

// Investor is the owner of portfolios and goals. The core only needs it for
// ownership checks; everything else about investors lives outside this module.
type Investor struct {
	ID        string
	Name      string
	Email     string
	CreatedAt Date
}

// NewInvestor creates an investor record.
func NewInvestor(id, name, email string, on Date) (*Investor, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: investor id is missing", ErrNotAllowed)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: investor name is missing", ErrNotAllowed)
	}
	return &Investor{ID: id, Name: name, Email: email, CreatedAt: on}, nil
}
