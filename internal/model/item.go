package model

// Item is a marker attribute meaning an entity is portable — it can be
// picked up, put into a container, worn, or equipped, subject to those
// sub-models' own attributes (Wearable, HandCost, ...).
type Item struct{}

// Edible marks an item as consumable by eat, restoring Satiety scaled by
// SatiationFactor when entirely consumed — a food analogue to the fluid
// model, whole-item consumption rather than a volume split.
type Edible struct {
	SatiationFactor float64
}

// Description is identifying text for an entity: what `look` shows.
type Description struct {
	Name     string
	Aliases  []string
	RoomName string // how the entity appears in a room listing, e.g. "a rusty key"
	Long     string // multi-line text shown by `examine`
}

// GrammaticalNumber selects singular/plural word forms in message
// templates.
type GrammaticalNumber int

const (
	Singular GrammaticalNumber = iota
	Plural
)

// Pronouns carries the grammatical metadata the message format engine
// needs to interpolate ${x.they}/${x.them}/${x.theirs}/${x.their}/
// ${x.themself} tokens, plus whether the entity itself is referred to in
// the singular or plural (most entities are singular; a group NPC might
// be plural).
type Pronouns struct {
	Subject GrammaticalNumber // they / it
	They    string
	Them    string
	Their   string
	Theirs  string
	Themself string
}

// Neuter are the pronouns used for inanimate objects.
var Neuter = Pronouns{
	Subject:  Singular,
	They:     "it",
	Them:     "it",
	Their:    "its",
	Theirs:   "its",
	Themself: "itself",
}

// They are gender-neutral singular pronouns, the default for characters
// whose gender is unspecified.
var They = Pronouns{
	Subject:  Singular,
	They:     "they",
	Them:     "them",
	Their:    "their",
	Theirs:   "theirs",
	Themself: "themself",
}

// She are feminine pronouns.
var She = Pronouns{
	Subject:  Singular,
	They:     "she",
	Them:     "her",
	Their:    "her",
	Theirs:   "hers",
	Themself: "herself",
}

// He are masculine pronouns.
var He = Pronouns{
	Subject:  Singular,
	They:     "he",
	Them:     "him",
	Their:    "his",
	Theirs:   "his",
	Themself: "himself",
}
