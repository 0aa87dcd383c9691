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

// EquipBefore is dispatched before an equip/unequip is verified, letting
// auto-unequip-to-free-hands handlers queue unequips of the wielder's
// oldest items ahead of it.
type EquipBefore struct {
	Actor, Item world.EntityID
	Equipping   bool
}

// EquipVerify is the payload Verify handlers vote on before an equip or
// unequip.
type EquipVerify struct {
	Actor, Item world.EntityID
	Equipping   bool
}

// EquipEnd is dispatched after an equip/unequip completes or is abandoned.
type EquipEnd struct {
	Actor, Item world.EntityID
	Equipping   bool
}

var fmtEquipSelf = message.MustParse("You equip ${item.name}.")
var fmtEquipRoom = message.MustParse("${actor.name} equips ${item.name}.")
var fmtUnequipSelf = message.MustParse("You put away ${item.name}.")
var fmtUnequipRoom = message.MustParse("${actor.name} puts away ${item.name}.")

// EquipAction equips or unequips an item in the actor's hands. When
// equipping would exceed hand capacity, auto-unequip handlers reacting
// to EquipBefore enqueue unequips for the oldest items first.
type EquipAction struct {
	actor     world.EntityID
	item      world.EntityID
	equipping bool
}

// NewEquipAction builds an equip of item by actor.
func NewEquipAction(actor, item world.EntityID) *EquipAction {
	return &EquipAction{actor: actor, item: item, equipping: true}
}

// NewUnequipAction builds an unequip of item by actor.
func NewUnequipAction(actor, item world.EntityID) *EquipAction {
	return &EquipAction{actor: actor, item: item, equipping: false}
}

func (a *EquipAction) Actor() world.EntityID { return a.actor }
func (a *EquipAction) Tags() []Tag           { return nil }
func (a *EquipAction) MayRequireTick() bool  { return true }
func (a *EquipAction) SendBefore(w *World) {
	notifyDispatch(w, notify.Before, EquipBefore{Actor: a.actor, Item: a.item, Equipping: a.equipping})
}

func (a *EquipAction) SendVerify(w *World) Verdict {
	return translateVerdict(notifyVerify(w, notify.Verify, EquipVerify{Actor: a.actor, Item: a.item, Equipping: a.equipping}))
}

func (a *EquipAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, EquipEnd{Actor: a.actor, Item: a.item, Equipping: a.equipping})
}
func (a *EquipAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, EquipEnd{Actor: a.actor, Item: a.item, Equipping: a.equipping})
}

func (a *EquipAction) Interrupt(w *World) InterruptResult {
	return InterruptResult{Messages: []Outgoing{toSelf(a.actor, "You stop fiddling with your equipment.", model.CategoryInternalAction)}}
}

func (a *EquipAction) Perform(w *World) Result {
	itemName := Name(w.Store, a.item)
	room := CurrentRoom(w.Store, a.actor)

	if a.equipping {
		if ok, reason := model.CanEquip(w.Store, a.actor, a.item); !ok {
			return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, capitalize(reason)+".", model.CategoryInternalMisc)}}
		}
		if err := model.Equip(w.Store, a.actor, a.item); err != nil {
			return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, fmt.Sprintf("You can't equip %s.", itemName), model.CategoryInternalMisc)}}
		}
		var messages []Outgoing
		messages = append(messages, toSelfFmt(a.actor, fmtEquipSelf, message.Tokens{"item": message.EntityToken(a.item)}, model.CategoryInternalAction))
		messages = append(messages, toRoom(w, room, a.actor, fmtEquipRoom, message.Tokens{
			"actor": message.EntityToken(a.actor),
			"item":  message.EntityToken(a.item),
		}, model.CategorySurroundingsAction)...)
		return Result{Complete: true, ShouldTick: true, Success: true, Messages: messages}
	}

	if !model.IsEquipping(w.Store, a.actor, a.item) {
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, fmt.Sprintf("You're not holding %s.", itemName), model.CategoryInternalMisc)}}
	}
	if err := model.Unequip(w.Store, a.actor, a.item); err != nil {
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, fmt.Sprintf("You're not holding %s.", itemName), model.CategoryInternalMisc)}}
	}
	if err := model.MoveToContainer(w.Store, a.item, a.actor); err != nil {
		return Result{Complete: true, Success: false, Messages: []Outgoing{toSelf(a.actor, fmt.Sprintf("You have nowhere to put %s.", itemName), model.CategoryInternalMisc)}}
	}

	var messages []Outgoing
	messages = append(messages, toSelfFmt(a.actor, fmtUnequipSelf, message.Tokens{"item": message.EntityToken(a.item)}, model.CategoryInternalAction))
	messages = append(messages, toRoom(w, room, a.actor, fmtUnequipRoom, message.Tokens{
		"actor": message.EntityToken(a.actor),
		"item":  message.EntityToken(a.item),
	}, model.CategorySurroundingsAction)...)
	return Result{Complete: true, ShouldTick: true, Success: true, Messages: messages}
}

type equipParser struct{}

var equipVerbs = []string{"hold", "equip", "wield", "unholster", "take out"}
var unequipVerbs = []string{"unhold", "unequip", "unwield", "holster", "stow", "put away"}

// matchVerb reports whether full (the reassembled command line) begins
// with one of verbs, returning the remainder after it.
func matchVerb(full string, verbs []string) (string, bool) {
	for _, v := range verbs {
		if full == v {
			return "", true
		}
		if rest, ok := strings.CutPrefix(full, v+" "); ok {
			return rest, true
		}
	}
	return "", false
}

func (equipParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	full := in.Verb
	if in.Rest != "" {
		full = in.Verb + " " + in.Rest
	}

	var name string
	var equipping bool
	if rest, ok := matchVerb(full, equipVerbs); ok {
		name, equipping = rest, true
	} else if rest, ok := matchVerb(full, unequipVerbs); ok {
		name, equipping = rest, false
	} else {
		return nil, &parser.Error{Kind: parser.UnknownCommand}
	}

	name = strings.TrimSpace(strings.TrimPrefix(name, "the "))
	room := CurrentRoom(w.Store, entity)
	candidates := roomAndInventoryCandidates(w, entity, room)
	target, err := parser.ResolveTarget(w.Store, entity, name, room, candidates)
	if err != nil {
		return nil, err
	}
	if equipping {
		return NewEquipAction(entity, target), nil
	}
	return NewUnequipAction(entity, target), nil
}

func (equipParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	return []string{"equip <>", "unequip <>"}
}

// EquipParser is the standard parser for equip/unequip and their synonyms.
var EquipParser parser.Parser[*World] = equipParser{}
