package action

import (
	"strings"

	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

// InventoryEnd is fired after an inventory listing completes.
type InventoryEnd struct {
	Actor world.EntityID
}

// InventoryAction lists the actor's own carried, worn, and equipped
// items. Never requires a tick.
type InventoryAction struct {
	actor world.EntityID
}

// NewInventoryAction builds an inventory listing for actor.
func NewInventoryAction(actor world.EntityID) *InventoryAction {
	return &InventoryAction{actor: actor}
}

func (a *InventoryAction) Actor() world.EntityID { return a.actor }
func (a *InventoryAction) Tags() []Tag           { return nil }
func (a *InventoryAction) MayRequireTick() bool  { return false }
func (a *InventoryAction) SendBefore(w *World)   {}
func (a *InventoryAction) SendVerify(w *World) Verdict {
	return Verdict{Valid: true}
}
func (a *InventoryAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, InventoryEnd{Actor: a.actor})
}
func (a *InventoryAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, InventoryEnd{Actor: a.actor})
}
func (a *InventoryAction) Interrupt(w *World) InterruptResult { return InterruptResult{} }

func (a *InventoryAction) Perform(w *World) Result {
	c, ok := world.Get[model.Container](w.Store, a.actor)
	if !ok {
		return Result{Complete: true, Success: false, Messages: []Outgoing{
			toSelf(a.actor, "You have no inventory.", model.CategoryInternalMisc),
		}}
	}

	var lines []string
	for _, item := range c.Contents {
		lines = append(lines, Name(w.Store, item))
	}
	if worn, ok := world.Get[model.WornItems](w.Store, a.actor); ok {
		for _, part := range wornParts(worn) {
			for _, item := range worn.ByPart[part] {
				lines = append(lines, Name(w.Store, item)+" (worn on "+part.String()+")")
			}
		}
	}
	if eq, ok := world.Get[model.EquippedItems](w.Store, a.actor); ok {
		for _, item := range eq.Items {
			lines = append(lines, Name(w.Store, item)+" (equipped)")
		}
	}

	if len(lines) == 0 {
		return Result{Complete: true, Success: true, Messages: []Outgoing{
			toSelf(a.actor, "You aren't carrying anything.", model.CategoryInternalMisc),
		}}
	}

	text := "You are carrying:\n" + strings.Join(lines, "\n")
	return Result{Complete: true, Success: true, Messages: []Outgoing{
		toSelf(a.actor, text, model.CategoryInternalMisc),
	}}
}

// wornParts returns worn's occupied body parts in a stable order, so the
// listing doesn't reshuffle between calls.
func wornParts(worn model.WornItems) []model.BodyPart {
	var parts []model.BodyPart
	for part, stack := range worn.ByPart {
		if len(stack) > 0 {
			parts = append(parts, part)
		}
	}
	for i := 1; i < len(parts); i++ {
		for j := i; j > 0 && parts[j-1] > parts[j]; j-- {
			parts[j-1], parts[j] = parts[j], parts[j-1]
		}
	}
	return parts
}

type inventoryParser struct{}

func (inventoryParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	if (in.Verb != "i" && in.Verb != "inv" && in.Verb != "inventory") || in.Rest != "" {
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}
	return NewInventoryAction(entity), nil
}

func (inventoryParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"inventory"}
}

// InventoryParser is the standard parser for i/inv/inventory.
var InventoryParser parser.Parser[*World] = inventoryParser{}
