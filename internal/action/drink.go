package action

import (
	"fmt"
	"strings"

	"github.com/udisondev/la2go/internal/message"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// litersPerDrink is how much fluid one drink consumes.
const litersPerDrink = 0.25

// DrinkEnd is dispatched after a drink completes or is abandoned.
type DrinkEnd struct {
	Actor, Container world.EntityID
}

var fmtDrinkSelf = message.MustParse("You take a drink from ${container.name}.")

// DrinkAction consumes fluid from a container and raises the actor's
// hydration vital proportionally to each fluid type's hydration factor.
type DrinkAction struct {
	actor     world.EntityID
	container world.EntityID
}

// NewDrinkAction builds a drink from container by actor.
func NewDrinkAction(actor, container world.EntityID) *DrinkAction {
	return &DrinkAction{actor: actor, container: container}
}

func (a *DrinkAction) Actor() world.EntityID { return a.actor }
func (a *DrinkAction) Tags() []Tag           { return nil }
func (a *DrinkAction) MayRequireTick() bool  { return true }
func (a *DrinkAction) SendBefore(w *World)   {}
func (a *DrinkAction) SendVerify(w *World) Verdict {
	return Verdict{Valid: true}
}
func (a *DrinkAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, DrinkEnd{Actor: a.actor, Container: a.container})
}
func (a *DrinkAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, DrinkEnd{Actor: a.actor, Container: a.container})
}
func (a *DrinkAction) Interrupt(w *World) InterruptResult {
	return InterruptResult{Messages: []Outgoing{toSelf(a.actor, "You stop drinking.", model.CategoryInternalAction)}}
}

func (a *DrinkAction) Perform(w *World) Result {
	fc, ok := world.Get[model.FluidContainer](w.Store, a.container)
	if !ok {
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, fmt.Sprintf("You can't drink from %s.", Name(w.Store, a.container)), model.CategoryInternalMisc)}}
	}
	available := fc.TotalVolume()
	if available <= 0 {
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, fmt.Sprintf("%s is empty.", capitalize(Name(w.Store, a.container))), model.CategoryInternalMisc)}}
	}

	drink := litersPerDrink
	if drink > available {
		drink = available
	}

	hydration := 0.0
	for t, v := range fc.Composition {
		share := v / available * drink
		fc.Composition[t] -= share
		hydration += share * model.HydrationFactor[t]
	}
	for t, v := range fc.Composition {
		if v <= 1e-9 {
			delete(fc.Composition, t)
		}
	}
	world.Attach(w.Store, a.container, fc)

	if hydration > 0 {
		model.ApplyVital(w.Store, a.actor, model.Hydration, model.VitalAdd, hydration)
	}

	msg := toSelfFmt(a.actor, fmtDrinkSelf, message.Tokens{"container": message.EntityToken(a.container)}, model.CategoryInternalAction)
	return Result{Complete: true, ShouldTick: true, Success: true, Messages: []Outgoing{msg}}
}

type drinkParser struct{}

func (drinkParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	if in.Verb != "drink" {
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}
	name := strings.TrimSpace(in.Rest)
	name = strings.TrimPrefix(name, "from ")
	name = strings.TrimSpace(strings.TrimPrefix(name, "the "))

	room := CurrentRoom(w.Store, entity)
	candidates := roomAndInventoryCandidates(w, entity, room)
	target, err := parser.ResolveTarget(w.Store, entity, name, room, candidates)
	if err != nil {
		return nil, err
	}
	fc, ok := world.Get[model.FluidContainer](w.Store, target)
	if !ok {
		return nil, &parser.Error{Kind: parser.Other, Detail: fmt.Sprintf("You can't drink from %s.", Name(w.Store, target))}
	}
	if fc.TotalVolume() <= 0 {
		return nil, &parser.Error{Kind: parser.Other, Detail: fmt.Sprintf("%s is empty.", capitalize(Name(w.Store, target)))}
	}
	return NewDrinkAction(entity, target), nil
}

func (drinkParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"drink <>"}
}

// DrinkParser is the standard parser for drink.
var DrinkParser parser.Parser[*World] = drinkParser{}
