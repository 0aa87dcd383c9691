package action

import (
	"fmt"
	"strings"

	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/notify"
	"github.com/udisondev/la2go/internal/parser"
	"github.com/udisondev/la2go/internal/world"
)

var knownAttributes = []model.Stat{
	model.StatStrength, model.StatAgility, model.StatIntelligence,
	model.StatPerception, model.StatEndurance,
}

var knownSkills = []model.Skill{
	model.SkillFirearms, model.SkillBlades, model.SkillDodge,
	model.SkillUnarmed, model.SkillThrowing,
}

func findAttribute(name string) (model.Stat, bool) {
	for _, s := range knownAttributes {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}

func findSkill(name string) (model.Skill, bool) {
	for _, s := range knownSkills {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}

// SpendAdvancementPointEnd is dispatched after spending an advancement
// point completes.
type SpendAdvancementPointEnd struct {
	Actor world.EntityID
}

// SpendSkillPointAction spends one of the actor's available skill points
// to raise a named skill by one.
type SpendSkillPointAction struct {
	actor world.EntityID
	skill model.Skill
}

// NewSpendSkillPointAction builds a skill-point spend on skill for actor.
func NewSpendSkillPointAction(actor world.EntityID, skill model.Skill) *SpendSkillPointAction {
	return &SpendSkillPointAction{actor: actor, skill: skill}
}

func (a *SpendSkillPointAction) Actor() world.EntityID { return a.actor }
func (a *SpendSkillPointAction) Tags() []Tag           { return nil }
func (a *SpendSkillPointAction) MayRequireTick() bool  { return false }
func (a *SpendSkillPointAction) SendBefore(w *World)   {}
func (a *SpendSkillPointAction) SendVerify(w *World) Verdict {
	return Verdict{Valid: true}
}
func (a *SpendSkillPointAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, SpendAdvancementPointEnd{Actor: a.actor})
}
func (a *SpendSkillPointAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, SpendAdvancementPointEnd{Actor: a.actor})
}
func (a *SpendSkillPointAction) Interrupt(w *World) InterruptResult { return InterruptResult{} }

func (a *SpendSkillPointAction) Perform(w *World) Result {
	stats, ok := world.Get[model.Stats](w.Store, a.actor)
	if !ok {
		return Result{Complete: true, Success: false, Messages: []Outgoing{
			toSelf(a.actor, "You don't have any stats to mess with.", model.CategorySystem),
		}}
	}
	if stats.SkillPointsAvailable <= 0 {
		return Result{Complete: true, Success: false, Messages: []Outgoing{
			toSelf(a.actor, "You don't have any skill points to spend.", model.CategorySystem),
		}}
	}

	stats.SkillPointsAvailable--
	if stats.Skills == nil {
		stats.Skills = make(map[model.Skill]int)
	}
	stats.Skills[a.skill]++
	newValue := stats.Skills[a.skill]
	world.Attach(w.Store, a.actor, stats)

	return Result{Complete: true, Success: true, Messages: []Outgoing{
		toSelf(a.actor, fmt.Sprintf("Your base %s is now %d.", a.skill, newValue), model.CategorySystem),
	}}
}

// SpendAttributePointAction spends one of the actor's available
// attribute points to raise a named attribute by one.
type SpendAttributePointAction struct {
	actor     world.EntityID
	attribute model.Stat
}

// NewSpendAttributePointAction builds an attribute-point spend on
// attribute for actor.
func NewSpendAttributePointAction(actor world.EntityID, attribute model.Stat) *SpendAttributePointAction {
	return &SpendAttributePointAction{actor: actor, attribute: attribute}
}

func (a *SpendAttributePointAction) Actor() world.EntityID { return a.actor }
func (a *SpendAttributePointAction) Tags() []Tag           { return nil }
func (a *SpendAttributePointAction) MayRequireTick() bool  { return false }
func (a *SpendAttributePointAction) SendBefore(w *World)   {}
func (a *SpendAttributePointAction) SendVerify(w *World) Verdict {
	return Verdict{Valid: true}
}
func (a *SpendAttributePointAction) SendAfterPerform(w *World) {
	notifyDispatch(w, notify.AfterPerform, SpendAdvancementPointEnd{Actor: a.actor})
}
func (a *SpendAttributePointAction) SendEnd(w *World) {
	notifyDispatch(w, notify.End, SpendAdvancementPointEnd{Actor: a.actor})
}
func (a *SpendAttributePointAction) Interrupt(w *World) InterruptResult { return InterruptResult{} }

func (a *SpendAttributePointAction) Perform(w *World) Result {
	stats, ok := world.Get[model.Stats](w.Store, a.actor)
	if !ok {
		return Result{Complete: true, Success: false, Messages: []Outgoing{
			toSelf(a.actor, "You don't have any stats to mess with.", model.CategorySystem),
		}}
	}
	if stats.AttributePointsAvailable <= 0 {
		return Result{Complete: true, Success: false, Messages: []Outgoing{
			toSelf(a.actor, "You don't have any attribute points to spend.", model.CategorySystem),
		}}
	}

	stats.AttributePointsAvailable--
	if stats.Attributes == nil {
		stats.Attributes = make(map[model.Stat]int)
	}
	stats.Attributes[a.attribute]++
	newValue := stats.Attributes[a.attribute]
	world.Attach(w.Store, a.actor, stats)

	return Result{Complete: true, Success: true, Messages: []Outgoing{
		toSelf(a.actor, fmt.Sprintf("Your %s is now %d.", a.attribute, newValue), model.CategorySystem),
	}}
}

type spendAdvancementPointParser struct{}

func (spendAdvancementPointParser) Parse(w *World, entity world.EntityID, in parser.Input) (any, error) {
	full := in.Verb
	if in.Rest != "" {
		full = in.Verb + " " + in.Rest
	}

	if rest, ok := cutAny(full, "spend skill point on ", "assign skill point to "); ok {
		name := strings.TrimSpace(rest)
		if name == "" {
			return nil, &parser.Error{Kind: parser.MissingTarget}
		}
		skill, ok := findSkill(name)
		if !ok {
			return nil, &parser.Error{Kind: parser.Other, Detail: fmt.Sprintf("%s is not a skill.", name)}
		}
		return NewSpendSkillPointAction(entity, skill), nil
	}

	if rest, ok := cutAny(full, "spend attribute point on ", "assign attribute point to "); ok {
		name := strings.TrimSpace(rest)
		if name == "" {
			return nil, &parser.Error{Kind: parser.MissingTarget}
		}
		attr, ok := findAttribute(name)
		if !ok {
			return nil, &parser.Error{Kind: parser.Other, Detail: fmt.Sprintf("%s is not an attribute.", name)}
		}
		return NewSpendAttributePointAction(entity, attr), nil
	}

	return nil, &parser.Error{Kind: parser.UnknownCommand}
}

// cutAny tries each prefix in turn, returning the remainder after the
// first one that matches.
func cutAny(s string, prefixes ...string) (string, bool) {
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(s, p); ok {
			return rest, true
		}
	}
	return "", false
}

func (spendAdvancementPointParser) HelpFormats(w *World, entity, observer world.EntityID) []string {
	var formats []string
	if stats, ok := world.Get[model.Stats](w.Store, entity); ok {
		if stats.SkillPointsAvailable > 0 {
			formats = append(formats, "spend skill point on <>")
		}
		if stats.AttributePointsAvailable > 0 {
			formats = append(formats, "spend attribute point on <>")
		}
	}
	return formats
}

// SpendAdvancementPointParser is the standard parser for spending skill
// and attribute points.
var SpendAdvancementPointParser parser.Parser[*World] = spendAdvancementPointParser{}
