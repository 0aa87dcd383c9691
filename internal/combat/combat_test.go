package combat

import (
	"testing"

	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/world"
)

type fakeWorld struct{}

func TestSetInCombat_Symmetric(t *testing.T) {
	s := world.NewStore()
	reg := notify.NewRegistry[*fakeWorld]()
	w := &fakeWorld{}
	a, b := s.Create(), s.Create()

	SetInCombat(s, reg, w, a, b, model.RangeMedium)

	if r, ok := EntitiesInCombatWith(s, a)[b]; !ok || r != model.RangeMedium {
		t.Errorf("a's opponents[b] = (%v, %v), want (Medium, true)", r, ok)
	}
	if r, ok := EntitiesInCombatWith(s, b)[a]; !ok || r != model.RangeMedium {
		t.Errorf("b's opponents[a] = (%v, %v), want (Medium, true)", r, ok)
	}
}

func TestSetInCombat_FiresEnterCombatOnce(t *testing.T) {
	s := world.NewStore()
	reg := notify.NewRegistry[*fakeWorld]()
	w := &fakeWorld{}
	a, b := s.Create(), s.Create()

	fired := 0
	notify.On[EnterCombat](reg, notify.Kind("enter_combat"), func(w *fakeWorld, p any) { fired++ })

	SetInCombat(s, reg, w, a, b, model.RangeShort)
	SetInCombat(s, reg, w, a, b, model.RangeMedium)

	if fired != 1 {
		t.Errorf("EnterCombat fired %d times, want 1 (no re-fire on range update)", fired)
	}
	if r := EntitiesInCombatWith(s, a)[b]; r != model.RangeMedium {
		t.Errorf("range after second SetInCombat = %v, want RangeMedium", r)
	}
}

func TestLeaveCombat_Symmetric(t *testing.T) {
	s := world.NewStore()
	reg := notify.NewRegistry[*fakeWorld]()
	w := &fakeWorld{}
	a, b := s.Create(), s.Create()
	SetInCombat(s, reg, w, a, b, model.RangeShort)

	exited := 0
	notify.On[ExitCombat](reg, notify.Kind("exit_combat"), func(w *fakeWorld, p any) { exited++ })

	LeaveCombat(s, reg, w, a, b)

	if model.InCombat(s, a) || model.InCombat(s, b) {
		t.Error("expected both entities out of combat")
	}
	if exited != 1 {
		t.Errorf("ExitCombat fired %d times, want 1", exited)
	}

	// Leaving again is a no-op: no duplicate ExitCombat.
	LeaveCombat(s, reg, w, a, b)
	if exited != 1 {
		t.Errorf("ExitCombat fired %d times after redundant LeaveCombat, want still 1", exited)
	}
}

func TestLeaveAllCombat_ExitsEveryOpponent(t *testing.T) {
	s := world.NewStore()
	reg := notify.NewRegistry[*fakeWorld]()
	w := &fakeWorld{}
	a, b, c := s.Create(), s.Create(), s.Create()
	SetInCombat(s, reg, w, a, b, model.RangeShort)
	SetInCombat(s, reg, w, a, c, model.RangeLong)

	LeaveAllCombat(s, reg, w, a)

	if model.InCombat(s, a) {
		t.Error("a should be out of all combat")
	}
	if model.InCombat(s, b) || model.InCombat(s, c) {
		t.Error("b and c should no longer list a as an opponent")
	}
}

func TestChangeRange_ClampsAndSyncs(t *testing.T) {
	s := world.NewStore()
	reg := notify.NewRegistry[*fakeWorld]()
	w := &fakeWorld{}
	a, b := s.Create(), s.Create()
	SetInCombat(s, reg, w, a, b, model.RangeLongest)

	got := ChangeRange(s, a, b, 5)
	if got != model.RangeLongest {
		t.Errorf("ChangeRange clamped high = %v, want Longest", got)
	}

	ChangeRange(s, a, b, -100)
	if r := EntitiesInCombatWith(s, a)[b]; r != model.RangeShortest {
		t.Errorf("a's range to b = %v, want Shortest after large negative delta", r)
	}
	if r := EntitiesInCombatWith(s, b)[a]; r != model.RangeShortest {
		t.Errorf("b's range to a = %v, want Shortest (sync)", r)
	}
}

func TestChangeRange_NotInCombatReturnsShortest(t *testing.T) {
	s := world.NewStore()
	a, b := s.Create(), s.Create()

	if got := ChangeRange(s, a, b, 1); got != model.RangeShortest {
		t.Errorf("ChangeRange on non-combatants = %v, want Shortest default", got)
	}
}
