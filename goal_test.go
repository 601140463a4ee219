package invest

import (
	"errors"
	"testing"
)

func testGoal(t *testing.T, target, current float64) *Goal {
	t.Helper()
	g, err := NewGoal("goal-1", "inv-1", "house deposit",
		M(target, "USD"), M(current, "USD"), MustParse("2030-01-01"), PriorityHigh, MustParse("2025-01-01"))
	if err != nil {
		t.Fatalf("NewGoal: %v", err)
	}
	return g
}

func TestNewGoal(t *testing.T) {
	on := MustParse("2025-01-01")

	tests := []struct {
		name       string
		goalName   string
		target     Money
		current    Money
		targetDate string
		priority   Priority
		err        bool
	}{
		{"valid", "house", M(10000, "USD"), M(0, "USD"), "2030-01-01", PriorityHigh, false},
		{"no current amount", "house", M(10000, "USD"), Money{}, "2030-01-01", PriorityMedium, false},
		{"missing name", "", M(10000, "USD"), Money{}, "2030-01-01", PriorityLow, true},
		{"zero target", "house", M(0, "USD"), Money{}, "2030-01-01", PriorityHigh, true},
		{"currency mismatch", "house", M(10000, "USD"), M(10, "EUR"), "2030-01-01", PriorityHigh, true},
		{"target date in the past", "house", M(10000, "USD"), Money{}, "2024-12-31", PriorityHigh, true},
		{"unknown priority", "house", M(10000, "USD"), Money{}, "2030-01-01", Priority("urgent"), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewGoal("goal-1", "inv-1", tc.goalName, tc.target, tc.current, MustParse(tc.targetDate), tc.priority, on)
			if (err != nil) != tc.err {
				t.Errorf("NewGoal() error = %v, want error %v", err, tc.err)
			}
		})
	}
}

func TestNewGoal_AlreadyFunded(t *testing.T) {
	g := testGoal(t, 10000, 12000)
	if g.Status != GoalAchieved {
		t.Errorf("a goal created already funded should start achieved, got %s", g.Status)
	}
}

func TestGoal_Progress(t *testing.T) {
	tests := []struct {
		name    string
		target  float64
		current float64
		want    Percent
	}{
		{"empty", 10000, 0, 0},
		{"quarter", 10000, 2500, 25},
		{"full", 10000, 10000, 100},
		{"over-funded clamps", 10000, 12000, 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := testGoal(t, tc.target, tc.current)
			if got := g.Progress(); !got.Equal(tc.want) {
				t.Errorf("Progress() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestGoal_Remaining(t *testing.T) {
	g := testGoal(t, 10000, 2000)
	if !g.Remaining().Equal(M(8000, "USD")) {
		t.Errorf("Remaining() = %s, want 8000 USD", g.Remaining())
	}

	over := testGoal(t, 10000, 12000)
	if !over.Remaining().IsZero() {
		t.Errorf("over-funded Remaining() = %s, want 0", over.Remaining())
	}
}

func TestGoal_Contribute(t *testing.T) {
	g := testGoal(t, 10000, 9000)
	on := MustParse("2025-06-01")

	if err := g.Contribute(M(500, "USD"), on); err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	if !g.CurrentAmount.Equal(M(9500, "USD")) {
		t.Errorf("current = %s, want 9500 USD", g.CurrentAmount)
	}
	if g.Status != GoalActive {
		t.Errorf("status = %s, want still active", g.Status)
	}

	// crossing the target achieves the goal automatically
	if err := g.Contribute(M(500, "USD"), on); err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	if g.Status != GoalAchieved {
		t.Errorf("status = %s, want achieved", g.Status)
	}

	// and an achieved goal accepts no further contributions
	if err := g.Contribute(M(1, "USD"), on); !errors.Is(err, ErrNotAllowed) {
		t.Errorf("contribution to achieved goal: got %v, want ErrNotAllowed", err)
	}

	if err := g.Contribute(M(0, "USD"), on); err == nil {
		t.Error("zero contribution accepted")
	}
}

func TestGoal_Transitions(t *testing.T) {
	on := MustParse("2025-06-01")

	tests := []struct {
		name string
		from GoalStatus
		step func(*Goal) error
		want GoalStatus
		err  bool
	}{
		{"achieve active", GoalActive, func(g *Goal) error { return g.Achieve(on) }, GoalAchieved, false},
		{"cancel active", GoalActive, func(g *Goal) error { return g.Cancel(on) }, GoalCancelled, false},
		{"reactivate achieved", GoalAchieved, func(g *Goal) error { return g.Reactivate(on) }, GoalActive, false},
		{"reactivate cancelled", GoalCancelled, func(g *Goal) error { return g.Reactivate(on) }, GoalActive, false},
		{"achieve cancelled", GoalCancelled, func(g *Goal) error { return g.Achieve(on) }, GoalCancelled, true},
		{"cancel achieved", GoalAchieved, func(g *Goal) error { return g.Cancel(on) }, GoalAchieved, true},
		{"reactivate active", GoalActive, func(g *Goal) error { return g.Reactivate(on) }, GoalActive, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := testGoal(t, 10000, 0)
			g.Status = tc.from

			err := tc.step(g)
			if (err != nil) != tc.err {
				t.Fatalf("transition error = %v, want error %v", err, tc.err)
			}
			if g.Status != tc.want {
				t.Errorf("status after transition = %s, want %s", g.Status, tc.want)
			}
		})
	}
}
