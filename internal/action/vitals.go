package action

import (
	"fmt"
	"strings"

	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// VitalsEnd is fired after a vitals listing completes.
type VitalsEnd struct {
	Actor world.EntityID
}

// VitalsAction shows the actor its own health, satiety, hydration, and
// energy. Never requires a tick.
type VitalsAction struct {
	actor world.EntityID
}

// NewVitalsAction builds a vitals listing for actor.
func NewVitalsAction(actor world.EntityID) *VitalsAction {
	return &VitalsAction{actor: actor}
}

func (a *VitalsAction) Actor() world.EntityID { return a.actor }
func (a *VitalsAction) Tags() []Tag           { return nil }
func (a *VitalsAction) MayRequireTick() bool  { return false }
func (a *VitalsAction) SendBefore(w *World)   {}
func (a *VitalsAction) SendVerify(w *World) Verdict {
	return Verdict{Valid: true}
}
func (a *VitalsAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, VitalsEnd{Actor: a.actor})
}
func (a *VitalsAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, VitalsEnd{Actor: a.actor})
}
func (a *VitalsAction) Interrupt(w *World) InterruptResult { return InterruptResult{} }

func (a *VitalsAction) Perform(w *World) Result {
	vitals, ok := world.Get[model.Vitals](w.Store, a.actor)
	if !ok {
		return Result{Complete: true, Success: false, Messages: []Outgoing{
			toSelf(a.actor, "You have no vitals.", model.CategoryInternalMisc),
		}}
	}

	kinds := []model.VitalKind{model.Health, model.Satiety, model.Hydration, model.Energy}
	var b strings.Builder
	for i, kind := range kinds {
		if i > 0 {
			b.WriteString("\n")
		}
		v := vitals.Values[kind]
		fmt.Fprintf(&b, "%s: %.0f/%.0f", kind, v.Current, v.Max)
	}

	return Result{Complete: true, Success: true, Messages: []Outgoing{
		toSelf(a.actor, b.String(), model.CategoryInternalMisc),
	}}
}

type vitalsParser struct{}

func (vitalsParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	if (in.Verb != "vitals" && in.Verb != "vit") || in.Rest != "" {
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}
	return NewVitalsAction(entity), nil
}

func (vitalsParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"vitals"}
}

// VitalsParser is the standard parser for vitals/vit.
var VitalsParser parser.Parser[*World] = vitalsParser{}
