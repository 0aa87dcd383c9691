package action

import (
	"github.com/udisondev/la2go/internal/message"
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/world"
)

// CurrentRoom returns the room entity directly containing actor, i.e. the
// owner of actor's Location when it names a Container. Zero value
// (world.Invalid) if actor isn't placed in a container at all (worn or
// equipped items have no room of their own — callers needing a wearer's
// room should resolve the wearer first).
func CurrentRoom(s *world.Store, actor world.EntityID) world.EntityID {
	loc, ok := model.GetLocation(s, actor)
	if !ok || loc.Kind != model.LocationContainer {
		return world.Invalid
	}
	return loc.Owner
}

// Name returns an entity's display name, falling back to "something" for
// entities with no Description (used to build error messages without
// risking a missing-token interpolation failure).
func Name(s *world.Store, e world.EntityID) string {
	if d, ok := world.Get[model.Description](s, e); ok && d.Name != "" {
		return d.Name
	}
	return "something"
}

// toSelf builds a first-person Outgoing to actor using a plain string
// template — no entity tokens, so it never fails to interpolate.
func toSelf(actor world.EntityID, text string, cat model.MessageCategory) Outgoing {
	return Outgoing{
		Recipient: actor,
		Tokens:    nil,
		Format:    message.MustParse(text),
		Category:  cat,
		Delay:     model.DelayNone,
	}
}

// toSelfFmt renders a format with tokens from actor's own point of view.
func toSelfFmt(actor world.EntityID, f *message.Format, tokens message.Tokens, cat model.MessageCategory) Outgoing {
	return Outgoing{Recipient: actor, Tokens: tokens, Format: f, Category: cat, Delay: model.DelayNone}
}

// toRoom builds Outgoing messages for every Player in room except
// exclude, rendering f with tokens (each recipient's point of view is
// resolved later by the dispatcher's Interpolate call at send time).
func toRoom(w *World, room world.EntityID, exclude world.EntityID, f *message.Format, tokens message.Tokens, cat model.MessageCategory) []Outgoing {
	var out []Outgoing
	for _, occupant := range w.Dispatcher.RoomOccupants(room) {
		if occupant == exclude {
			continue
		}
		out = append(out, Outgoing{Recipient: occupant, Tokens: tokens, Format: f, Category: cat, Delay: model.DelayNone})
	}
	return out
}

var fmtYouCant = message.MustParse("You can't do that.")
