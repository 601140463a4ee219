package invest

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MonthsNever is the sentinel for "this scenario never completes": a zero
// monthly contribution against a non-zero remaining amount.
const MonthsNever = -1

// recommendationBuffer is the safety margin applied on top of the minimum
// contribution: 10%.
var recommendationBuffer = decimal.NewFromFloat(1.1)

// Scenario is one hypothetical fixed monthly contribution to project a goal with.
type Scenario struct {
	Name                string
	MonthlyContribution Money
}

// ScenarioProjection is the month-by-month completion forecast for one scenario.
type ScenarioProjection struct {
	Name                string
	MonthlyContribution Money
	MonthsToComplete    int  // MonthsNever when the contribution is zero and something remains
	CompletionDate      Date // NeverDate when the scenario never completes
	ProjectedAmount     Money
	Shortfall           Money
	Surplus             Money
	MeetsTargetDate     bool
}

// ProjectionAnalysis is the full forecast for a goal across all requested scenarios.
type ProjectionAnalysis struct {
	GoalID             string
	GoalName           string
	On                 Date
	Remaining          Money
	MonthsUntilTarget  int
	MinimumMonthly     Money
	RecommendedMonthly Money
	Scenarios          []ScenarioProjection
}

// Project forecasts when the goal will be met under each contribution
// scenario, as seen from the given date. The goal must be active and owned by
// the requesting investor; scenarios must be non-empty, with non-negative
// contributions in the goal's currency.
func Project(goal *Goal, investorID string, scenarios []Scenario, on Date) (*ProjectionAnalysis, error) {
	if goal == nil {
		return nil, fmt.Errorf("%w: goal", ErrNotFound)
	}
	if goal.InvestorID != investorID {
		return nil, fmt.Errorf("%w: goal %q does not belong to investor %s", ErrNotAllowed, goal.Name, investorID)
	}
	if !goal.IsActive() {
		return nil, fmt.Errorf("%w: goal %q is %s, not active", ErrNotAllowed, goal.Name, goal.Status)
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("%w: no scenario to project", ErrNotAllowed)
	}
	for _, s := range scenarios {
		if err := goal.TargetAmount.sameCurrency(s.MonthlyContribution); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
	}

	remaining := goal.Remaining()
	months := on.MonthsUntil(goal.TargetDate)

	analysis := &ProjectionAnalysis{
		GoalID:            goal.ID,
		GoalName:          goal.Name,
		On:                on,
		Remaining:         remaining,
		MonthsUntilTarget: months,
	}

	// minimum to meet the target date; when the date has already passed the
	// whole remainder is due at once
	if months > 0 {
		minimum, err := remaining.Div(Q(months))
		if err != nil {
			return nil, err
		}
		analysis.MinimumMonthly = minimum
	} else {
		analysis.MinimumMonthly = remaining
	}
	recommended, err := analysis.MinimumMonthly.MulFactor(recommendationBuffer)
	if err != nil {
		return nil, err
	}
	analysis.RecommendedMonthly = recommended

	analysis.Scenarios = make([]ScenarioProjection, 0, len(scenarios))
	for _, s := range scenarios {
		p, err := projectScenario(goal, s, remaining, months, on)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
		analysis.Scenarios = append(analysis.Scenarios, p)
	}
	return analysis, nil
}

func projectScenario(goal *Goal, s Scenario, remaining Money, monthsUntilTarget int, on Date) (ScenarioProjection, error) {
	p := ScenarioProjection{Name: s.Name, MonthlyContribution: s.MonthlyContribution}

	switch {
	case remaining.IsZero():
		// already met
		p.MonthsToComplete = 0
		p.CompletionDate = on
	case s.MonthlyContribution.IsZero():
		p.MonthsToComplete = MonthsNever
		p.CompletionDate = NeverDate
	default:
		ratio, err := remaining.Div(Quantity{value: s.MonthlyContribution.Decimal()})
		if err != nil {
			return ScenarioProjection{}, err
		}
		p.MonthsToComplete = int(ratio.Decimal().Ceil().IntPart())
		p.CompletionDate = on.AddMonths(p.MonthsToComplete)
	}

	// what the scenario accumulates by the target date
	horizon := monthsUntilTarget
	if horizon < 0 {
		horizon = 0
	}
	contributed := s.MonthlyContribution.Mul(Q(horizon))
	projected, err := goal.CurrentAmount.Add(contributed)
	if err != nil {
		return ScenarioProjection{}, err
	}
	p.ProjectedAmount = projected

	zero := Money{cur: goal.TargetAmount.Currency()}
	if shortfall, err := goal.TargetAmount.Sub(projected); err == nil {
		p.Shortfall = shortfall
		p.Surplus = zero
	} else {
		surplus, err := projected.Sub(goal.TargetAmount)
		if err != nil {
			return ScenarioProjection{}, err
		}
		p.Shortfall = zero
		p.Surplus = surplus
	}

	p.MeetsTargetDate = p.MonthsToComplete != MonthsNever && !p.CompletionDate.After(goal.TargetDate)
	return p, nil
}
