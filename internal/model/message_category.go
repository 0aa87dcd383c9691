package model

// MessageCategory classifies a game message for observer filtering.
// Surroundings categories describe things happening around an observer;
// Internal categories describe the observer's own actions; System
// stands alone.
type MessageCategory int

const (
	CategorySurroundingsSpeech MessageCategory = iota
	CategorySurroundingsSound
	CategorySurroundingsFlavor
	CategorySurroundingsMovement
	CategorySurroundingsAction
	CategoryInternalSpeech
	CategoryInternalAction
	CategoryInternalMisc
	CategorySystem
)

// MessageDelay hints to the renderer how long to pause before showing
// subsequent messages.
type MessageDelay int

const (
	DelayNone MessageDelay = iota
	DelayShort
	DelayLong
)

// MessageFilter decides, per category, whether an observer wants to
// receive a message. The zero value accepts everything. Filters support
// "mute all surroundings except Speech", used while waiting or sleeping.
type MessageFilter struct {
	Blocked map[MessageCategory]bool
}

// NewMessageFilter returns a filter that accepts every category.
func NewMessageFilter() MessageFilter {
	return MessageFilter{Blocked: make(map[MessageCategory]bool)}
}

// Allows reports whether a message of the given category should be
// delivered.
func (f MessageFilter) Allows(cat MessageCategory) bool {
	return !f.Blocked[cat]
}

// MuteSurroundingsExceptSpeech returns a filter that blocks every
// Surroundings category except CategorySurroundingsSpeech, leaving
// Internal/System categories untouched.
func MuteSurroundingsExceptSpeech() MessageFilter {
	f := NewMessageFilter()
	f.Blocked[CategorySurroundingsSound] = true
	f.Blocked[CategorySurroundingsFlavor] = true
	f.Blocked[CategorySurroundingsMovement] = true
	f.Blocked[CategorySurroundingsAction] = true
	return f
}
