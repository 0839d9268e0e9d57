package progression

import (
	"testing"

	"github.com/milk9111/skyflap/ecs/component"
	"github.com/milk9111/skyflap/event"
	"github.com/milk9111/skyflap/tuning"
)

func testScoring() tuning.ScoringSpec {
	return tuning.ScoringSpec{
		PassPoints:       1,
		PerfectTolerance: 0.15,
		PerfectBonus:     0.5,
		NearMissPoints:   1,
		Streaks: []tuning.StreakStep{
			{Streak: 3, Bonus: 2}, {Streak: 5, Bonus: 5}, {Streak: 7, Bonus: 8}, {Streak: 10, Bonus: 15},
			{Streak: 15, Bonus: 25}, {Streak: 20, Bonus: 40}, {Streak: 25, Bonus: 60}, {Streak: 30, Bonus: 80},
			{Streak: 40, Bonus: 120}, {Streak: 50, Bonus: 175}, {Streak: 75, Bonus: 300}, {Streak: 100, Bonus: 500},
		},
		Milestones: []int{10, 25, 50, 100, 150},
	}
}

func testTokens() tuning.TokenSpec {
	return tuning.TokenSpec{
		CommonPoints:        2,
		RarePoints:          5,
		HighValueMultiplier: 1.5,
		ComboStep:           3,
		ComboTierBonus:      0.5,
	}
}

func newTestLedger() (*Ledger, *event.Queue) {
	q := &event.Queue{}
	return NewLedger(testScoring(), testTokens(), NewAchievements(), q), q
}

func TestTenCenteredPasses(t *testing.T) {
	l, q := newTestLedger()

	perfectBonus := 0
	for i := 0; i < 10; i++ {
		res := l.RegisterPass(300, 250, 350)
		if !res.Success || !res.Perfect {
			t.Fatalf("pass %d should be a perfect success: %+v", i, res)
		}
		perfectBonus += res.Bonus
	}

	if got := q.Count(event.StreakBonus); got != 4 {
		t.Fatalf("expected 4 streak bonus events, got %d", got)
	}
	want := 10*1 + perfectBonus + 2 + 5 + 8 + 15
	if l.Score != want {
		t.Fatalf("expected score %d, got %d", want, l.Score)
	}
	if l.PerfectPasses != 10 || l.Streak != 10 || l.ObstaclesPassed != 10 {
		t.Fatalf("unexpected counters: %+v", l)
	}
}

func TestStreakBonusOncePerCrossing(t *testing.T) {
	l, q := newTestLedger()
	for i := 0; i < 3; i++ {
		l.RegisterPass(300, 250, 350)
	}
	l.RegisterCollision()
	if l.Streak != 0 {
		t.Fatalf("collision must reset streak, got %d", l.Streak)
	}
	for i := 0; i < 4; i++ {
		l.RegisterPass(300, 250, 350)
	}
	// 3 reached twice, each crossing pays once
	if got := q.Count(event.StreakBonus); got != 2 {
		t.Fatalf("expected 2 streak bonus events, got %d", got)
	}
}

func TestMissOutsideGapResetsStreak(t *testing.T) {
	cases := []struct {
		name    string
		playerY float64
		success bool
	}{
		{"above gap", 100, false},
		{"below gap", 500, false},
		{"top edge inclusive", 250, true},
		{"bottom edge inclusive", 350, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l, _ := newTestLedger()
			l.RegisterPass(300, 250, 350)
			l.RegisterPass(300, 250, 350)
			before := l.Score

			res := l.RegisterPass(c.playerY, 250, 350)
			if res.Success != c.success {
				t.Fatalf("success=%v want %v", res.Success, c.success)
			}
			if c.success {
				if l.Streak != 3 {
					t.Fatalf("expected streak 3, got %d", l.Streak)
				}
				return
			}
			if l.Streak != 0 {
				t.Fatalf("miss must reset streak, got %d", l.Streak)
			}
			if l.Score != before {
				t.Fatalf("miss must not change score: %d -> %d", before, l.Score)
			}
		})
	}
}

func TestPerfectTolerance(t *testing.T) {
	cases := []struct {
		y       float64
		perfect bool
	}{
		{300, true},
		{315, true},
		{285, true},
		{316, false},
		{260, false},
	}
	for _, c := range cases {
		l, _ := newTestLedger()
		res := l.RegisterPass(c.y, 250, 350)
		if res.Perfect != c.perfect {
			t.Errorf("y=%v perfect=%v want %v", c.y, res.Perfect, c.perfect)
		}
	}
}

func TestComboTiersOverTwelveTokens(t *testing.T) {
	l, _ := newTestLedger()
	want := []float64{1, 1, 1.5, 1.5, 1.5, 2, 2, 2, 2.5, 2.5, 2.5, 3}
	for i, m := range want {
		res := l.CollectToken(component.TokenCommon, false)
		if res.Multiplier != m {
			t.Fatalf("token %d: multiplier %v want %v", i+1, res.Multiplier, m)
		}
		if res.Points != int(2*m) {
			t.Fatalf("token %d: points %d want %d", i+1, res.Points, int(2*m))
		}
	}
	if l.Combo != 12 || l.Tokens(component.TokenCommon) != 12 {
		t.Fatalf("unexpected combo state: combo=%d tokens=%d", l.Combo, l.Tokens(component.TokenCommon))
	}
}

func TestComboBreaksOnExit(t *testing.T) {
	l, q := newTestLedger()
	l.CollectToken(component.TokenCommon, false)
	l.CollectToken(component.TokenCommon, false)
	l.BreakCombo()
	if l.Combo != 0 || q.Count(event.ComboBroken) != 1 {
		t.Fatalf("expected combo reset with one event")
	}
	res := l.CollectToken(component.TokenCommon, false)
	if res.Combo != 1 || res.Multiplier != 1 {
		t.Fatalf("combo should restart at 1: %+v", res)
	}
}

func TestTokenPoints(t *testing.T) {
	cases := []struct {
		name      string
		kind      component.TokenKind
		highValue bool
		want      int
	}{
		{"common", component.TokenCommon, false, 2},
		{"common high value", component.TokenCommon, true, 3},
		{"rare", component.TokenRare, false, 5},
		{"rare high value", component.TokenRare, true, 7},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l, _ := newTestLedger()
			if got := l.CollectToken(c.kind, c.highValue).Points; got != c.want {
				t.Fatalf("got %d want %d", got, c.want)
			}
		})
	}
}

func TestScoreMonotonicAndMilestones(t *testing.T) {
	l, q := newTestLedger()
	last := l.Score
	for i := 0; i < 40; i++ {
		switch i % 4 {
		case 0:
			l.RegisterPass(300, 250, 350)
		case 1:
			l.RegisterPass(0, 250, 350)
		case 2:
			l.CollectToken(component.TokenRare, i%8 == 2)
		case 3:
			l.BreakCombo()
		}
		if l.Score < last {
			t.Fatalf("score decreased at step %d: %d -> %d", i, last, l.Score)
		}
		last = l.Score
	}
	if got := q.Count(event.ScoreMilestone); got < 2 {
		t.Fatalf("expected milestone events, got %d", got)
	}
}

func TestCarriedScoreSkipsPassedMilestones(t *testing.T) {
	l, q := newTestLedger()
	l.ResetRun(60)
	l.RegisterNearMiss()
	if q.Count(event.ScoreMilestone) != 0 {
		t.Fatalf("milestones below the carried score must not fire")
	}
	if l.RunScore() != 1 {
		t.Fatalf("expected run score 1, got %d", l.RunScore())
	}
}

func TestOnScoreCalledPerScoringEvent(t *testing.T) {
	l, _ := newTestLedger()
	calls := 0
	l.OnScore = func(int) { calls++ }
	l.RegisterPass(300, 250, 350) // base + perfect bonus
	l.CollectToken(component.TokenCommon, false)
	l.RegisterEnemyDefeat(3)
	if calls != 4 {
		t.Fatalf("expected 4 score callbacks, got %d", calls)
	}
}

func TestDifficultyLevelAnnouncedOnce(t *testing.T) {
	l, q := newTestLedger()
	l.SetDifficultyLevel(1)
	l.SetDifficultyLevel(1)
	l.SetDifficultyLevel(0)
	l.SetDifficultyLevel(2)
	if got := q.Count(event.DifficultyIncreased); got != 2 {
		t.Fatalf("expected 2 difficulty events, got %d", got)
	}
}
