// Package parser implements the input parsing registry: a fixed verb set
// plus per-entity contributed parsers, turning a raw command line and its
// submitting entity into an action or a structured parse error.
package parser

import (
	"fmt"

	"github.com/udisondev/la2go/internal/world"
)

// ErrorKind classifies why parsing failed.
type ErrorKind int

const (
	UnknownCommand ErrorKind = iota
	MissingTarget
	TargetNotFound
	Other
)

// Error is the structured parse failure returned to the submitter only;
// it is never broadcast to the room or to other players.
type Error struct {
	Kind   ErrorKind
	Target string // populated for TargetNotFound
	Detail string // populated for Other
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnknownCommand:
		return "unknown command"
	case MissingTarget:
		return "missing target"
	case TargetNotFound:
		return fmt.Sprintf("no target named %q here", e.Target)
	default:
		return e.Detail
	}
}

// unknownCommandErr is the error Dispatch returns when every parser reports
// UnknownCommand. Parsers may return their own Error values; Dispatch
// recognises unknown-command errors by Kind, not by identity.
var unknownCommandErr = &Error{Kind: UnknownCommand}

// Input is one parsed command line: command word plus the remainder, both
// trimmed by Tokenize, which lowercases only the command word. Parsers are free to
// re-split Rest on their own terms.
type Input struct {
	Verb string
	Rest string
}

// Parser turns an Input submitted by entity into an action (opaque to
// this package — W is the lifecycle driver's world type and the return
// value is whatever the action package's Action type is, passed through
// as `any` to avoid a parser → action import cycle) or reports why it
// doesn't apply.
//
// HelpFormats reports the input formats this parser accepts for (entity,
// observer), e.g. "wear <>", used to render context help; observer lets a
// parser tailor wording (e.g. hide admin commands from non-admins).
type Parser[W any] interface {
	Parse(w W, entity world.EntityID, in Input) (action any, err error)
	HelpFormats(w W, entity, observer world.EntityID) []string
}

// ParserFunc adapts a plain function to the Parser interface for parsers
// that don't need custom help text.
type ParserFunc[W any] func(w W, entity world.EntityID, in Input) (any, error)

func (f ParserFunc[W]) Parse(w W, entity world.EntityID, in Input) (any, error) {
	return f(w, entity, in)
}

func (f ParserFunc[W]) HelpFormats(w W, entity, observer world.EntityID) []string { return nil }

// Registry is the union of the fixed standard parser set and per-entity
// contributed parsers (e.g. a lock contributes the lock/unlock parser).
// Standard parsers run first, in registration order, then contributed
// ones; contributed parsers are kept in a map, so their order across
// owners is not defined.
type Registry[W any] struct {
	standard    []Parser[W]
	contributed map[world.EntityID][]Parser[W]
}

// NewRegistry creates an empty parser registry.
func NewRegistry[W any]() *Registry[W] {
	return &Registry[W]{contributed: make(map[world.EntityID][]Parser[W])}
}

// Register adds p to the fixed standard parser set.
func (r *Registry[W]) Register(p Parser[W]) {
	r.standard = append(r.standard, p)
}

// Contribute adds p as a parser contributed by a specific entity (e.g. a
// lock's lock/unlock parser), tried only while resolving commands — every
// contributed parser from every entity is tried regardless of who
// submitted the command, matching how a lock's parser applies to anyone
// standing near it.
func (r *Registry[W]) Contribute(owner world.EntityID, p Parser[W]) {
	r.contributed[owner] = append(r.contributed[owner], p)
}

// Withdraw removes every parser contributed by owner (e.g. when a lock is
// despawned).
func (r *Registry[W]) Withdraw(owner world.EntityID) {
	delete(r.contributed, owner)
}

// Dispatch tries every parser in order until one returns an action or a
// parse error other than UnknownCommand, which short-circuits. If every
// parser returns UnknownCommand, that's the final error.
func (r *Registry[W]) Dispatch(w W, entity world.EntityID, in Input) (any, error) {
	for _, p := range r.standard {
		if action, err := p.Parse(w, entity, in); err == nil || !isUnknownCommand(err) {
			return action, err
		}
	}
	for _, owners := range r.contributed {
		for _, p := range owners {
			if action, err := p.Parse(w, entity, in); err == nil || !isUnknownCommand(err) {
				return action, err
			}
		}
	}
	return nil, unknownCommandErr
}

func isUnknownCommand(err error) bool {
	pe, ok := err.(*Error)
	return ok && pe.Kind == UnknownCommand
}

// HelpFormats collects every matching format string across standard and
// contributed parsers, for (entity, observer).
func (r *Registry[W]) HelpFormats(w W, entity, observer world.EntityID) []string {
	var out []string
	for _, p := range r.standard {
		out = append(out, p.HelpFormats(w, entity, observer)...)
	}
	for _, owners := range r.contributed {
		for _, p := range owners {
			out = append(out, p.HelpFormats(w, entity, observer)...)
		}
	}
	return out
}
