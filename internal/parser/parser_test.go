package parser

import (
	"testing"

	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/world"
)

func TestTokenize_SplitsVerbAndRest(t *testing.T) {
	in, ok := Tokenize("  Look at the door  ")
	if !ok {
		t.Fatal("expected ok for non-empty line")
	}
	if in.Verb != "look" || in.Rest != "at the door" {
		t.Errorf("Tokenize() = %+v, want {look, at the door}", in)
	}
}

func TestTokenize_EmptyLineIgnored(t *testing.T) {
	if _, ok := Tokenize("   "); ok {
		t.Error("expected empty line to be rejected")
	}
}

func TestTokenize_QuoteIsShorthandForSay(t *testing.T) {
	in, ok := Tokenize(`"hello there`)
	if !ok || in.Verb != "say" || in.Rest != "hello there" {
		t.Errorf("Tokenize(quoted) = %+v, ok=%v, want {say, hello there}, true", in, ok)
	}
}

func TestCanonicalVerb_ResolvesAliases(t *testing.T) {
	cases := map[string]string{
		"l": "look", "x": "look", "k": "attack", "kill": "attack",
		"i": "inventory", "inv": "inventory",
	}
	for alias, want := range cases {
		if got := CanonicalVerb(alias); got != want {
			t.Errorf("CanonicalVerb(%q) = %q, want %q", alias, got, want)
		}
	}
}

func TestParseDirection(t *testing.T) {
	cases := map[string]Direction{"n": North, "north": North, "SE": Southeast, "u": Up}
	for in, want := range cases {
		got, ok := ParseDirection(in)
		if !ok || got != want {
			t.Errorf("ParseDirection(%q) = (%v, %v), want (%v, true)", in, got, ok, want)
		}
	}
	if _, ok := ParseDirection("sideways"); ok {
		t.Error("expected sideways to not be a direction")
	}
}

func TestResolveTarget_Reflexive(t *testing.T) {
	s := world.NewStore()
	e := s.Create()
	got, err := ResolveTarget(s, e, "self", world.Invalid, nil)
	if err != nil || got != e {
		t.Errorf("ResolveTarget(self) = (%v, %v), want (%v, nil)", got, err, e)
	}
}

func TestResolveTarget_Here(t *testing.T) {
	s := world.NewStore()
	e := s.Create()
	room := s.Create()
	got, err := ResolveTarget(s, e, "here", room, nil)
	if err != nil || got != room {
		t.Errorf("ResolveTarget(here) = (%v, %v), want (%v, nil)", got, err, room)
	}
}

func TestResolveTarget_MatchesByNameRoomNameOrAlias(t *testing.T) {
	s := world.NewStore()
	e := s.Create()
	sword := s.Create()
	world.Attach(s, sword, model.Description{Name: "longsword", RoomName: "a rusty longsword", Aliases: []string{"blade"}})

	for _, query := range []string{"LONGSWORD", "a rusty longsword", "blade"} {
		got, err := ResolveTarget(s, e, query, world.Invalid, []world.EntityID{sword})
		if err != nil || got != sword {
			t.Errorf("ResolveTarget(%q) = (%v, %v), want (%v, nil)", query, got, err, sword)
		}
	}
}

func TestResolveTarget_NotFound(t *testing.T) {
	s := world.NewStore()
	e := s.Create()
	_, err := ResolveTarget(s, e, "nonexistent", world.Invalid, nil)
	pe, ok := err.(*Error)
	if !ok || pe.Kind != TargetNotFound {
		t.Fatalf("err = %v, want *Error{Kind: TargetNotFound}", err)
	}
}

func TestResolveTarget_MissingTarget(t *testing.T) {
	s := world.NewStore()
	e := s.Create()
	_, err := ResolveTarget(s, e, "  ", world.Invalid, nil)
	pe, ok := err.(*Error)
	if !ok || pe.Kind != MissingTarget {
		t.Fatalf("err = %v, want *Error{Kind: MissingTarget}", err)
	}
}

type fakeWorld struct{}

func TestRegistry_DispatchShortCircuitsOnNonUnknownError(t *testing.T) {
	r := NewRegistry[*fakeWorld]()
	tried := 0
	r.Register(ParserFunc[*fakeWorld](func(w *fakeWorld, e world.EntityID, in Input) (any, error) {
		tried++
		return nil, unknownCommandErr
	}))
	r.Register(ParserFunc[*fakeWorld](func(w *fakeWorld, e world.EntityID, in Input) (any, error) {
		tried++
		return nil, &Error{Kind: MissingTarget}
	}))
	r.Register(ParserFunc[*fakeWorld](func(w *fakeWorld, e world.EntityID, in Input) (any, error) {
		tried++
		return "should not run", nil
	}))

	w := &fakeWorld{}
	_, err := r.Dispatch(w, world.Invalid, Input{Verb: "foo"})
	pe, ok := err.(*Error)
	if !ok || pe.Kind != MissingTarget {
		t.Fatalf("err = %v, want MissingTarget", err)
	}
	if tried != 2 {
		t.Errorf("tried = %d parsers, want 2 (short-circuit on the second)", tried)
	}
}

func TestRegistry_AllUnknownYieldsUnknownCommand(t *testing.T) {
	r := NewRegistry[*fakeWorld]()
	r.Register(ParserFunc[*fakeWorld](func(w *fakeWorld, e world.EntityID, in Input) (any, error) {
		return nil, unknownCommandErr
	}))

	w := &fakeWorld{}
	_, err := r.Dispatch(w, world.Invalid, Input{Verb: "gibberish"})
	pe, ok := err.(*Error)
	if !ok || pe.Kind != UnknownCommand {
		t.Fatalf("err = %v, want UnknownCommand", err)
	}
}

func TestRegistry_ContributedParserIsTried(t *testing.T) {
	r := NewRegistry[*fakeWorld]()
	lock := world.EntityID(42)
	r.Contribute(lock, ParserFunc[*fakeWorld](func(w *fakeWorld, e world.EntityID, in Input) (any, error) {
		if in.Verb == "unlock" {
			return "unlocked!", nil
		}
		return nil, unknownCommandErr
	}))

	w := &fakeWorld{}
	action, err := r.Dispatch(w, world.Invalid, Input{Verb: "unlock"})
	if err != nil || action != "unlocked!" {
		t.Fatalf("Dispatch() = (%v, %v), want (\"unlocked!\", nil)", action, err)
	}
}

func TestRegistry_Withdraw_RemovesContributedParser(t *testing.T) {
	r := NewRegistry[*fakeWorld]()
	lock := world.EntityID(42)
	r.Contribute(lock, ParserFunc[*fakeWorld](func(w *fakeWorld, e world.EntityID, in Input) (any, error) {
		return "unlocked!", nil
	}))
	r.Withdraw(lock)

	w := &fakeWorld{}
	_, err := r.Dispatch(w, world.Invalid, Input{Verb: "unlock"})
	pe, ok := err.(*Error)
	if !ok || pe.Kind != UnknownCommand {
		t.Fatalf("err = %v, want UnknownCommand after withdraw", err)
	}
}
