package parser

import "strings"

// Tokenize splits a raw command line into an Input: the first word
// (lowercased) as Verb, everything after it as Rest. A line that is all
// whitespace, or begins with `"` or `'` (the shorthand for `say`), is
// handled specially — the leading quote is treated as the verb "say".
func Tokenize(line string) (Input, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Input{}, false
	}

	if trimmed[0] == '"' || trimmed[0] == '\'' {
		return Input{Verb: "say", Rest: strings.TrimSpace(trimmed[1:])}, true
	}

	fields := strings.SplitN(trimmed, " ", 2)
	verb := strings.ToLower(fields[0])
	rest := ""
	if len(fields) == 2 {
		rest = strings.TrimSpace(fields[1])
	}
	return Input{Verb: verb, Rest: rest}, true
}

// verbAliases maps every recognized surface form of a verb to its
// canonical form.
var verbAliases = map[string]string{
	"l": "look", "look": "look", "examine": "look", "x": "look", "ex": "look",
	"go": "move", "move": "move",
	"get": "get", "take": "get", "pick": "get",
	"put": "put",
	"drop": "drop",
	"wear":  "wear",
	"remove": "remove",
	"equip": "equip", "hold": "equip", "wield": "equip", "unholster": "equip",
	"unequip": "unequip", "unhold": "unequip", "holster": "unequip", "stow": "unequip",
	"open": "open", "close": "close", "slam": "slam",
	"lock": "lock", "unlock": "unlock",
	"attack": "attack", "kill": "attack", "k": "attack",
	"uppercut": "uppercut", "haymaker": "haymaker",
	"throw": "throw",
	"drink": "drink", "eat": "eat",
	"fill": "fill", "pour": "pour",
	"wait": "wait", "sleep": "sleep",
	"say": "say",
	"stop": "stop", "cancel": "stop",
	"inventory": "inventory", "i": "inventory", "inv": "inventory",
	"stats": "stats", "st": "stats", "stat": "stats",
	"vitals": "vitals", "v": "vitals", "vi": "vitals",
	"worn": "worn", "wearing": "worn", "clothes": "worn",
	"ranges": "ranges", "range": "ranges", "combat": "ranges", "com": "ranges",
	"players": "players", "pl": "players",
	"advance": "advance", "retreat": "retreat",
	"respawn": "respawn", "live": "respawn",
}

// CanonicalVerb resolves a verb's aliases to the canonical form parsers
// switch on, or "" if the word isn't a recognized verb alias at all (it
// might still be handled by a contributed parser).
func CanonicalVerb(verb string) string {
	return verbAliases[verb]
}
