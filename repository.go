package invest

// Repository contracts consumed by the services. Implementations return
// ErrNotFound directly instead of leaking storage-specific error codes into
// the domain; the core never sees what technology backs them.

// TransactionRepository stores the append-only ledger events.
type TransactionRepository interface {
	// Save persists a transaction, assigning its insertion sequence, and
	// returns the stored copy.
	Save(tx Transaction) (Transaction, error)
	// FindAllByPortfolioAndAsset returns every transaction of one pair, in
	// insertion order.
	FindAllByPortfolioAndAsset(portfolioID, assetID string) ([]Transaction, error)
}

// InvestmentRepository stores the materialized positions derived by replay.
type InvestmentRepository interface {
	FindByPortfolioAndAsset(portfolioID, assetID string) (*Position, error)
	List() ([]*Position, error)
	Create(p *Position) error
	Update(p *Position) error
	Delete(portfolioID, assetID string) error
}

// GoalRepository stores savings goals.
type GoalRepository interface {
	FindByID(id string) (*Goal, error)
	FindAllByInvestor(investorID string) ([]*Goal, error)
	Create(g *Goal) error
	Update(g *Goal) error
}

// InvestorRepository resolves investors, used for ownership checks only.
type InvestorRepository interface {
	FindByID(id string) (*Investor, error)
	Create(i *Investor) error
}
