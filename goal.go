package invest

import (
	"fmt"
)

// Priority ranks a goal against the investor's other goals.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority parses a string into a Priority.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s), nil
	default:
		return "", fmt.Errorf("%w: unknown priority %q", ErrNotAllowed, s)
	}
}

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalAchieved  GoalStatus = "achieved"
	GoalCancelled GoalStatus = "cancelled"
)

// Goal is a savings target owned by one investor, independent of the ledger.
// Its progress is always recomputed on read, never stored.
type Goal struct {
	ID            string
	InvestorID    string
	Name          string
	TargetAmount  Money
	CurrentAmount Money
	TargetDate    Date
	Priority      Priority
	Status        GoalStatus
	CreatedAt     Date
	UpdatedAt     Date
}

// NewGoal creates an active goal. The target must be positive, the current
// amount (if any) must share its currency, and the target date must not be in
// the past relative to the creation date.
func NewGoal(id, investorID, name string, target, current Money, targetDate Date, priority Priority, on Date) (*Goal, error) {
	if id == "" || investorID == "" {
		return nil, fmt.Errorf("%w: goal requires id and investor id", ErrNotAllowed)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: goal name is missing", ErrNotAllowed)
	}
	if !target.IsPositive() {
		return nil, fmt.Errorf("%w: goal target must be positive, got %s", ErrNotAllowed, target)
	}
	if current.Currency() == "" {
		current = Money{cur: target.Currency()}
	}
	if err := target.sameCurrency(current); err != nil {
		return nil, err
	}
	if targetDate.Before(on) {
		return nil, fmt.Errorf("%w: target date %s is before %s", ErrNotAllowed, targetDate, on)
	}
	if _, err := ParsePriority(string(priority)); err != nil {
		return nil, err
	}
	g := &Goal{
		ID:            id,
		InvestorID:    investorID,
		Name:          name,
		TargetAmount:  target,
		CurrentAmount: current,
		TargetDate:    targetDate,
		Priority:      priority,
		Status:        GoalActive,
		CreatedAt:     on,
		UpdatedAt:     on,
	}
	// a goal created already funded is achieved from the start
	if g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
		g.Status = GoalAchieved
	}
	return g, nil
}

// Progress returns how much of the target is funded, clamped to [0,100].
func (g *Goal) Progress() Percent {
	return ClampPercent(asAmount(g.CurrentAmount).PercentOf(g.TargetAmount))
}

// Remaining returns how much is still missing, zero once the target is met.
func (g *Goal) Remaining() Money {
	r, err := g.TargetAmount.Sub(g.CurrentAmount)
	if err != nil {
		return Money{cur: g.TargetAmount.Currency()}
	}
	return r
}

// IsActive reports whether the goal accepts contributions and projections.
func (g *Goal) IsActive() bool { return g.Status == GoalActive }

// Contribute adds to the saved amount and achieves the goal automatically
// once the target is reached. Only active goals accept contributions.
func (g *Goal) Contribute(m Money, on Date) error {
	if !g.IsActive() {
		return fmt.Errorf("%w: goal %q is %s, not active", ErrNotAllowed, g.Name, g.Status)
	}
	if !m.IsPositive() {
		return fmt.Errorf("%w: contribution must be positive, got %s", ErrNotAllowed, m)
	}
	current, err := g.CurrentAmount.Add(m)
	if err != nil {
		return err
	}
	g.CurrentAmount = current
	g.UpdatedAt = on
	if g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
		g.Status = GoalAchieved
	}
	return nil
}

// Achieve explicitly marks an active goal as achieved.
func (g *Goal) Achieve(on Date) error {
	if g.Status != GoalActive {
		return fmt.Errorf("%w: cannot achieve a %s goal", ErrNotAllowed, g.Status)
	}
	g.Status = GoalAchieved
	g.UpdatedAt = on
	return nil
}

// Cancel abandons an active goal.
func (g *Goal) Cancel(on Date) error {
	if g.Status != GoalActive {
		return fmt.Errorf("%w: cannot cancel a %s goal", ErrNotAllowed, g.Status)
	}
	g.Status = GoalCancelled
	g.UpdatedAt = on
	return nil
}

// Reactivate returns an achieved or cancelled goal to the active state.
func (g *Goal) Reactivate(on Date) error {
	if g.Status == GoalActive {
		return fmt.Errorf("%w: goal is already active", ErrNotAllowed)
	}
	g.Status = GoalActive
	g.UpdatedAt = on
	return nil
}
