package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/felipe-mlopes/invest"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

// projectCmd holds the flags for the 'project' subcommand.
type projectCmd struct {
	name       string
	target     float64
	current    float64
	currency   string
	targetDate string
	priority   string
	scenarios  string
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "forecast when a savings goal will be met" }
func (*projectCmd) Usage() string {
	return `invest project -n <name> -t <target> -D <target_date> [-a <current>] [-c <currency>] [-p <priority>] [-s <contributions>]

  Projects a goal under one or more monthly contribution scenarios, e.g.
  -s 500,1000,1500 compares three contribution levels.
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Goal name")
	f.Float64Var(&c.target, "t", 0, "Target amount to accumulate")
	f.Float64Var(&c.current, "a", 0, "Amount already accumulated")
	f.StringVar(&c.currency, "c", "", "Currency of the goal, defaults to the app currency")
	f.StringVar(&c.targetDate, "D", "", "Target date (YYYY-MM-DD)")
	f.StringVar(&c.priority, "p", "medium", "Priority (high, medium, low)")
	f.StringVar(&c.scenarios, "s", "", "Comma-separated monthly contributions to compare")
}

func (c *projectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.target <= 0 || c.targetDate == "" || c.scenarios == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	targetDate, err := invest.Parse(c.targetDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing target date: %v\n", err)
		return subcommands.ExitUsageError
	}
	priority, err := invest.ParsePriority(c.priority)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	target, err := parseMoney(c.target, c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing target amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	current, err := parseMoney(c.current, c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing current amount: %v\n", err)
		return subcommands.ExitUsageError
	}

	scenarios, err := c.parseScenarios(target.Currency())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	today := invest.Today()
	investorID := uuid.NewString()
	goal, err := invest.NewGoal(uuid.NewString(), investorID, c.name, target, current, targetDate, priority, today)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	analysis, err := invest.Project(goal, investorID, scenarios, today)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printAnalysis(analysis, goal)
	return subcommands.ExitSuccess
}

func (c *projectCmd) parseScenarios(currency string) ([]invest.Scenario, error) {
	var scenarios []invest.Scenario
	for _, part := range strings.Split(c.scenarios, ",") {
		part = strings.TrimSpace(part)
		value, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid contribution %q: %w", part, err)
		}
		contribution, err := invest.NewMoney(value, currency)
		if err != nil {
			return nil, fmt.Errorf("invalid contribution %q: %w", part, err)
		}
		scenarios = append(scenarios, invest.Scenario{
			Name:                fmt.Sprintf("%s/month", contribution),
			MonthlyContribution: contribution,
		})
	}
	return scenarios, nil
}

func printAnalysis(a *invest.ProjectionAnalysis, goal *invest.Goal) {
	fmt.Printf("Goal %q: %s of %s accumulated (%.1f%%), %s remaining\n",
		a.GoalName, goal.CurrentAmount, goal.TargetAmount, float64(goal.Progress()), a.Remaining)
	fmt.Printf("Target date %s (%d months away): minimum %s/month, recommended %s/month\n",
		goal.TargetDate, a.MonthsUntilTarget, a.MinimumMonthly, a.RecommendedMonthly)
	fmt.Println()

	for _, s := range a.Scenarios {
		switch {
		case s.MonthsToComplete == invest.MonthsNever:
			fmt.Printf("  %s: never completes\n", s.Name)
		case s.MonthsToComplete == 0:
			fmt.Printf("  %s: already met\n", s.Name)
		default:
			fmt.Printf("  %s: %d months, done by %s", s.Name, s.MonthsToComplete, s.CompletionDate)
			if s.MeetsTargetDate {
				fmt.Printf(" (meets target date, surplus %s)\n", s.Surplus)
			} else {
				fmt.Printf(" (misses target date, shortfall %s)\n", s.Shortfall)
			}
		}
	}
}
