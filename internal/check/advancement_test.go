package check

import (
	"testing"

	"github.com/udisondev/la2go/internal/config"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/world"
)

func TestPointsEarned_GeometricThresholds(t *testing.T) {
	cfg := config.Simulation{FirstAdvancementThreshold: 100, AdvancementThresholdRatio: 2}
	cases := []struct {
		xp   int64
		want int
	}{
		{0, 0},
		{99, 0},
		{100, 1},
		{199, 1},
		{200, 2},
		{399, 2},
		{400, 3},
	}
	for _, c := range cases {
		if got := pointsEarned(c.xp, cfg); got != c.want {
			t.Errorf("pointsEarned(%d) = %d, want %d", c.xp, got, c.want)
		}
	}
}

func TestAward_CreditsXPAndAdvancementPoints(t *testing.T) {
	s := world.NewStore()
	e := s.Create()
	world.Attach(s, e, model.Stats{})

	cfg := config.Simulation{
		CheckStandardDeviation:    0,
		FirstAdvancementThreshold: 5,
		AdvancementThresholdRatio: 100,
	}

	// stdDev 0 means the roll equals the mean exactly: 20 against
	// Moderate (target 7, extreme-success 14) always lands ExtremeSuccess.
	result := Award(s, e, "strength", 20, Moderate, cfg, fixedUniform(0.5))
	if result != ExtremeSuccess {
		t.Fatalf("result = %v, want ExtremeSuccess", result)
	}

	stats, _ := world.Get[model.Stats](s, e)
	if stats.TotalXP <= 0 {
		t.Errorf("TotalXP = %d, want > 0", stats.TotalXP)
	}
	if stats.SkillPointsAvailable < 1 {
		t.Errorf("SkillPointsAvailable = %d, want >= 1", stats.SkillPointsAvailable)
	}
}

func TestAward_RecordsFatigue(t *testing.T) {
	s := world.NewStore()
	e := s.Create()
	world.Attach(s, e, model.Stats{})

	cfg := config.Default()
	Award(s, e, "strength", 10, Moderate, cfg, fixedUniform(0.5))

	hist, ok := world.Get[model.CheckHistory](s, e)
	if !ok {
		t.Fatal("expected CheckHistory to be attached after Award")
	}
	if hist.Fatigue["strength"] != 1 {
		t.Errorf("Fatigue[strength] = %d, want 1", hist.Fatigue["strength"])
	}
}
