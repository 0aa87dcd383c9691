package action

import (
	"fmt"
	"strings"

	"github.com/udisondev/la2go/internal/combat"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// RangesEnd is fired after a ranges listing completes.
type RangesEnd struct {
	Actor world.EntityID
}

// RangesAction shows the actor the combat range to everyone it's
// currently fighting. Never requires a tick.
type RangesAction struct {
	actor world.EntityID
}

// NewRangesAction builds a ranges listing for actor.
func NewRangesAction(actor world.EntityID) *RangesAction {
	return &RangesAction{actor: actor}
}

func (a *RangesAction) Actor() world.EntityID { return a.actor }
func (a *RangesAction) Tags() []Tag           { return nil }
func (a *RangesAction) MayRequireTick() bool  { return false }
func (a *RangesAction) SendBefore(w *World)   {}
func (a *RangesAction) SendVerify(w *World) Verdict {
	return Verdict{Valid: true}
}
func (a *RangesAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, RangesEnd{Actor: a.actor})
}
func (a *RangesAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, RangesEnd{Actor: a.actor})
}
func (a *RangesAction) Interrupt(w *World) InterruptResult { return InterruptResult{} }

func (a *RangesAction) Perform(w *World) Result {
	combatants := combat.EntitiesInCombatWith(w.Store, a.actor)
	if len(combatants) == 0 {
		return Result{Complete: true, Success: false, Messages: []Outgoing{
			toSelf(a.actor, "You're not in combat with anyone.", model.CategoryInternalMisc),
		}}
	}

	_, weapon, haveWeapon := resolveWeapon(w, a.actor, world.Invalid)

	var lines []string
	for opponent, rng := range combatants {
		line := fmt.Sprintf("%s: %s", Name(w.Store, opponent), rng)
		if haveWeapon && !weapon.CanUseAtRange(rng) {
			line += " (out of range for your weapon)"
		}
		lines = append(lines, line)
	}
	for i := 1; i < len(lines); i++ {
		for j := i; j > 0 && lines[j-1] > lines[j]; j-- {
			lines[j-1], lines[j] = lines[j], lines[j-1]
		}
	}

	return Result{Complete: true, Success: true, Messages: []Outgoing{
		toSelf(a.actor, strings.Join(lines, "\n"), model.CategoryInternalMisc),
	}}
}

type rangesParser struct{}

func (rangesParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	matched := in.Verb == "range" || in.Verb == "ranges" || in.Verb == "combat" || in.Verb == "com"
	if !matched || in.Rest != "" {
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}
	return NewRangesAction(entity), nil
}

func (rangesParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"ranges"}
}

// RangesParser is the standard parser for range/ranges/combat/com.
var RangesParser parser.Parser[*World] = rangesParser{}
