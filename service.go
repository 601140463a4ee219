package invest

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// InvestmentService orchestrates the ledger and the replay engine: it loads
// histories from repositories, invokes the pure core, and persists the
// derived positions. The core itself performs no I/O.
type InvestmentService struct {
	transactions TransactionRepository
	investments  InvestmentRepository
	log          zerolog.Logger
}

func NewInvestmentService(txs TransactionRepository, investments InvestmentRepository, log zerolog.Logger) *InvestmentService {
	return &InvestmentService{
		transactions: txs,
		investments:  investments,
		log:          log.With().Str("service", "investment").Logger(),
	}
}

// Record appends one transaction to the pair's ledger and re-derives the
// stored position from the full history. The candidate history is replayed
// before anything is written, so a rejected transaction leaves both the
// ledger and the position untouched.
func (s *InvestmentService) Record(tx Transaction) (*Position, error) {
	history, err := s.transactions.FindAllByPortfolioAndAsset(tx.PortfolioID(), tx.AssetID())
	if err != nil {
		return nil, err
	}

	var maxSeq int64
	for _, h := range history {
		if h.Seq() > maxSeq {
			maxSeq = h.Seq()
		}
	}
	candidate := append(history, tx.withSeq(maxSeq+1))
	position, err := Replay(candidate)
	if err != nil {
		return nil, fmt.Errorf("recording %s on %s/%s: %w", tx.What(), tx.PortfolioID(), tx.AssetID(), err)
	}

	if _, err := s.transactions.Save(tx); err != nil {
		return nil, err
	}
	if err := s.storePosition(tx.PortfolioID(), tx.AssetID(), position); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("portfolio", tx.PortfolioID()).
		Str("asset", tx.AssetID()).
		Str("type", string(tx.What())).
		Stringer("date", tx.When()).
		Msg("transaction recorded")
	return position, nil
}

// Preview computes the effect a transaction would have against the stored
// position, without writing anything.
func (s *InvestmentService) Preview(tx Transaction) (PositionDelta, error) {
	position, err := s.investments.FindByPortfolioAndAsset(tx.PortfolioID(), tx.AssetID())
	if err != nil && !errors.Is(err, ErrNotFound) {
		return PositionDelta{}, err
	}
	switch v := tx.(type) {
	case Buy:
		return BuyImpact(position, v)
	case Sell:
		return SellImpact(position, v)
	case Dividend:
		return DividendImpact(position, v)
	default:
		return PositionDelta{}, fmt.Errorf("%w: unhandled transaction type %T", ErrNotAllowed, tx)
	}
}

// Holding replays the pair's full history and returns the canonical position,
// nil when nothing is held.
func (s *InvestmentService) Holding(portfolioID, assetID string) (*Position, error) {
	history, err := s.transactions.FindAllByPortfolioAndAsset(portfolioID, assetID)
	if err != nil {
		return nil, err
	}
	return Replay(history)
}

// RefreshAll re-derives every stored position from its ledger. A pair that
// fails to replay is skipped and reported; the batch never aborts and no
// position is left half-written. It returns the number of refreshed pairs
// and the joined failures, if any.
func (s *InvestmentService) RefreshAll() (int, error) {
	positions, err := s.investments.List()
	if err != nil {
		return 0, err
	}

	var refreshed int
	var errs error
	for _, stale := range positions {
		portfolio, asset := stale.PortfolioID(), stale.AssetID()
		history, err := s.transactions.FindAllByPortfolioAndAsset(portfolio, asset)
		if err == nil {
			var position *Position
			if position, err = Replay(history); err == nil {
				err = s.storePosition(portfolio, asset, position)
			}
		}
		if err != nil {
			s.log.Warn().Err(err).
				Str("portfolio", portfolio).
				Str("asset", asset).
				Msg("skipping position refresh")
			errs = errors.Join(errs, fmt.Errorf("%s/%s: %w", portfolio, asset, err))
			continue
		}
		refreshed++
	}
	return refreshed, errs
}

// storePosition upserts the replayed position, or deletes the stored one when
// the replay reports the pair closed.
func (s *InvestmentService) storePosition(portfolioID, assetID string, position *Position) error {
	_, err := s.investments.FindByPortfolioAndAsset(portfolioID, assetID)
	exists := err == nil
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	switch {
	case position == nil && exists:
		return s.investments.Delete(portfolioID, assetID)
	case position == nil:
		return nil
	case exists:
		return s.investments.Update(position)
	default:
		return s.investments.Create(position)
	}
}

// GoalService orchestrates savings goals and their projections.
type GoalService struct {
	goals     GoalRepository
	investors InvestorRepository
	log       zerolog.Logger
}

func NewGoalService(goals GoalRepository, investors InvestorRepository, log zerolog.Logger) *GoalService {
	return &GoalService{
		goals:     goals,
		investors: investors,
		log:       log.With().Str("service", "goal").Logger(),
	}
}

// Create registers a new goal for an existing investor.
func (s *GoalService) Create(investorID, name string, target Money, targetDate Date, priority Priority) (*Goal, error) {
	if _, err := s.investors.FindByID(investorID); err != nil {
		return nil, err
	}
	goal, err := NewGoal(uuid.NewString(), investorID, name, target, Money{}, targetDate, priority, Today())
	if err != nil {
		return nil, err
	}
	if err := s.goals.Create(goal); err != nil {
		return nil, err
	}
	s.log.Info().Str("goal", goal.ID).Str("investor", investorID).Str("name", name).Msg("goal created")
	return goal, nil
}

// Contribute adds a contribution to a goal owned by the investor, persisting
// the updated state (including an automatic transition to achieved).
func (s *GoalService) Contribute(investorID, goalID string, m Money) (*Goal, error) {
	goal, err := s.owned(investorID, goalID)
	if err != nil {
		return nil, err
	}
	if err := goal.Contribute(m, Today()); err != nil {
		return nil, err
	}
	if err := s.goals.Update(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// Achieve explicitly marks a goal as achieved.
func (s *GoalService) Achieve(investorID, goalID string) (*Goal, error) {
	return s.transition(investorID, goalID, (*Goal).Achieve)
}

// Cancel abandons an active goal.
func (s *GoalService) Cancel(investorID, goalID string) (*Goal, error) {
	return s.transition(investorID, goalID, (*Goal).Cancel)
}

// Reactivate returns an achieved or cancelled goal to the active state.
func (s *GoalService) Reactivate(investorID, goalID string) (*Goal, error) {
	return s.transition(investorID, goalID, (*Goal).Reactivate)
}

// Project runs the projection engine for a goal owned by the investor.
func (s *GoalService) Project(investorID, goalID string, scenarios []Scenario) (*ProjectionAnalysis, error) {
	goal, err := s.owned(investorID, goalID)
	if err != nil {
		return nil, err
	}
	return Project(goal, investorID, scenarios, Today())
}

func (s *GoalService) transition(investorID, goalID string, apply func(*Goal, Date) error) (*Goal, error) {
	goal, err := s.owned(investorID, goalID)
	if err != nil {
		return nil, err
	}
	if err := apply(goal, Today()); err != nil {
		return nil, err
	}
	if err := s.goals.Update(goal); err != nil {
		return nil, err
	}
	s.log.Info().Str("goal", goal.ID).Str("status", string(goal.Status)).Msg("goal status changed")
	return goal, nil
}

// owned loads a goal and checks it belongs to the requesting investor.
func (s *GoalService) owned(investorID, goalID string) (*Goal, error) {
	if _, err := s.investors.FindByID(investorID); err != nil {
		return nil, err
	}
	goal, err := s.goals.FindByID(goalID)
	if err != nil {
		return nil, err
	}
	if goal.InvestorID != investorID {
		return nil, fmt.Errorf("%w: goal %s does not belong to investor %s", ErrNotAllowed, goalID, investorID)
	}
	return goal, nil
}
