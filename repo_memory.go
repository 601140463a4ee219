package invest

import (
	"fmt"
	"sync"
)

// In-memory repository implementations. They back the services in tests and
// tooling; a real deployment swaps them for database-backed ones satisfying
// the same interfaces.

type scopeKey struct{ portfolio, asset string }

// MemoryTransactionRepository keeps ledger events per (portfolio, asset)
// pair, in insertion order.
type MemoryTransactionRepository struct {
	mu      sync.RWMutex
	byScope map[scopeKey][]Transaction
	nextSeq int64
}

func NewMemoryTransactionRepository() *MemoryTransactionRepository {
	return &MemoryTransactionRepository{byScope: make(map[scopeKey][]Transaction)}
}

func (r *MemoryTransactionRepository) Save(tx Transaction) (Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextSeq++
	stored := tx.withSeq(r.nextSeq)
	key := scopeKey{tx.PortfolioID(), tx.AssetID()}
	r.byScope[key] = append(r.byScope[key], stored)
	return stored, nil
}

func (r *MemoryTransactionRepository) FindAllByPortfolioAndAsset(portfolioID, assetID string) ([]Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.byScope[scopeKey{portfolioID, assetID}]
	out := make([]Transaction, len(stored))
	copy(out, stored)
	return out, nil
}

// MemoryInvestmentRepository keeps one position per (portfolio, asset) pair.
type MemoryInvestmentRepository struct {
	mu        sync.RWMutex
	positions map[scopeKey]*Position
}

func NewMemoryInvestmentRepository() *MemoryInvestmentRepository {
	return &MemoryInvestmentRepository{positions: make(map[scopeKey]*Position)}
}

func (r *MemoryInvestmentRepository) FindByPortfolioAndAsset(portfolioID, assetID string) (*Position, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.positions[scopeKey{portfolioID, assetID}]
	if !ok {
		return nil, fmt.Errorf("position %s/%s: %w", portfolioID, assetID, ErrNotFound)
	}
	return p.clone(), nil
}

func (r *MemoryInvestmentRepository) List() ([]*Position, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Position, 0, len(r.positions))
	for _, p := range r.positions {
		out = append(out, p.clone())
	}
	return out, nil
}

func (r *MemoryInvestmentRepository) Create(p *Position) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := scopeKey{p.PortfolioID(), p.AssetID()}
	if _, ok := r.positions[key]; ok {
		return fmt.Errorf("%w: position %s/%s already exists", ErrNotAllowed, p.PortfolioID(), p.AssetID())
	}
	r.positions[key] = p.clone()
	return nil
}

func (r *MemoryInvestmentRepository) Update(p *Position) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := scopeKey{p.PortfolioID(), p.AssetID()}
	if _, ok := r.positions[key]; !ok {
		return fmt.Errorf("position %s/%s: %w", p.PortfolioID(), p.AssetID(), ErrNotFound)
	}
	r.positions[key] = p.clone()
	return nil
}

func (r *MemoryInvestmentRepository) Delete(portfolioID, assetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := scopeKey{portfolioID, assetID}
	if _, ok := r.positions[key]; !ok {
		return fmt.Errorf("position %s/%s: %w", portfolioID, assetID, ErrNotFound)
	}
	delete(r.positions, key)
	return nil
}

// MemoryGoalRepository keeps goals by id.
type MemoryGoalRepository struct {
	mu    sync.RWMutex
	goals map[string]*Goal
}

func NewMemoryGoalRepository() *MemoryGoalRepository {
	return &MemoryGoalRepository{goals: make(map[string]*Goal)}
}

func (r *MemoryGoalRepository) FindByID(id string) (*Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.goals[id]
	if !ok {
		return nil, fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}
	copied := *g
	return &copied, nil
}

func (r *MemoryGoalRepository) FindAllByInvestor(investorID string) ([]*Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Goal, 0)
	for _, g := range r.goals {
		if g.InvestorID != investorID {
			continue
		}
		copied := *g
		out = append(out, &copied)
	}
	return out, nil
}

func (r *MemoryGoalRepository) Create(g *Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.goals[g.ID]; ok {
		return fmt.Errorf("%w: goal %s already exists", ErrNotAllowed, g.ID)
	}
	copied := *g
	r.goals[g.ID] = &copied
	return nil
}

func (r *MemoryGoalRepository) Update(g *Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.goals[g.ID]; !ok {
		return fmt.Errorf("goal %s: %w", g.ID, ErrNotFound)
	}
	copied := *g
	r.goals[g.ID] = &copied
	return nil
}

// MemoryInvestorRepository keeps investors by id.
type MemoryInvestorRepository struct {
	mu        sync.RWMutex
	investors map[string]*Investor
}

func NewMemoryInvestorRepository() *MemoryInvestorRepository {
	return &MemoryInvestorRepository{investors: make(map[string]*Investor)}
}

func (r *MemoryInvestorRepository) FindByID(id string) (*Investor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.investors[id]
	if !ok {
		return nil, fmt.Errorf("investor %s: %w", id, ErrNotFound)
	}
	copied := *i
	return &copied, nil
}

func (r *MemoryInvestorRepository) Create(i *Investor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.investors[i.ID]; ok {
		return fmt.Errorf("%w: investor %s already exists", ErrNotAllowed, i.ID)
	}
	copied := *i
	r.investors[i.ID] = &copied
	return nil
}

// interface conformance
var (
	_ TransactionRepository = (*MemoryTransactionRepository)(nil)
	_ InvestmentRepository  = (*MemoryInvestmentRepository)(nil)
	_ GoalRepository        = (*MemoryGoalRepository)(nil)
	_ InvestorRepository    = (*MemoryInvestorRepository)(nil)
)
