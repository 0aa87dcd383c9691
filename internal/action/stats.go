package action

import (
	"fmt"
	"strings"

	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// StatsEnd is fired after a stats listing completes.
type StatsEnd struct {
	Actor world.EntityID
}

// StatsAction shows the actor its own attribute and skill values. Never
// requires a tick.
type StatsAction struct {
	actor world.EntityID
}

// NewStatsAction builds a stats listing for actor.
func NewStatsAction(actor world.EntityID) *StatsAction {
	return &StatsAction{actor: actor}
}

func (a *StatsAction) Actor() world.EntityID { return a.actor }
func (a *StatsAction) Tags() []Tag           { return nil }
func (a *StatsAction) MayRequireTick() bool  { return false }
func (a *StatsAction) SendBefore(w *World)   {}
func (a *StatsAction) SendVerify(w *World) Verdict {
	return Verdict{Valid: true}
}
func (a *StatsAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, StatsEnd{Actor: a.actor})
}
func (a *StatsAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, StatsEnd{Actor: a.actor})
}
func (a *StatsAction) Interrupt(w *World) InterruptResult { return InterruptResult{} }

func (a *StatsAction) Perform(w *World) Result {
	stats, ok := world.Get[model.Stats](w.Store, a.actor)
	if !ok {
		return Result{Complete: true, Success: false, Messages: []Outgoing{
			toSelf(a.actor, "You have no stats.", model.CategoryInternalMisc),
		}}
	}

	var b strings.Builder
	b.WriteString("Attributes:\n")
	for _, stat := range sortedStats(stats.Attributes) {
		fmt.Fprintf(&b, "  %s: %d\n", stat, stats.Attributes[stat])
	}
	b.WriteString("Skills:\n")
	for _, skill := range sortedSkills(stats.Skills) {
		fmt.Fprintf(&b, "  %s: %d\n", skill, stats.Skills[skill])
	}
	fmt.Fprintf(&b, "Experience: %d\n", stats.TotalXP)
	fmt.Fprintf(&b, "Unspent attribute points: %d\n", stats.AttributePointsAvailable)
	fmt.Fprintf(&b, "Unspent skill points: %d", stats.SkillPointsAvailable)

	return Result{Complete: true, Success: true, Messages: []Outgoing{
		toSelf(a.actor, b.String(), model.CategoryInternalMisc),
	}}
}

func sortedStats(m map[model.Stat]int) []model.Stat {
	out := make([]model.Stat, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func sortedSkills(m map[model.Skill]int) []model.Skill {
	out := make([]model.Skill, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

type statsParser struct{}

func (statsParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	if (in.Verb != "stats" && in.Verb != "stat") || in.Rest != "" {
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}
	return NewStatsAction(entity), nil
}

func (statsParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"stats"}
}

// StatsParser is the standard parser for stats/stat.
var StatsParser parser.Parser[*World] = statsParser{}
