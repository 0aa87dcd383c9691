package model

// Skill names a trained ability checked in combat and other actions.
type Skill string

const (
	SkillFirearms Skill = "firearms"
	SkillBlades   Skill = "blades"
	SkillDodge    Skill = "dodge"
	SkillUnarmed  Skill = "unarmed"
	SkillThrowing Skill = "throwing"
)

// Stats is the attribute holding a character's base attribute and skill
// values, plus advancement counters. Totals (base + any temporary
// modifiers from buffs, armor, etc.) are not modeled here — this project
// has no buff system, so computed totals reduce to the base value;
// StatTotal exists as the seam a future modifier system would hook into.
type Stats struct {
	Attributes map[Stat]int
	Skills     map[Skill]int

	TotalXP              int64
	SkillPointsAvailable int
	AttributePointsAvailable int
}

// StatTotal returns the effective value of an attribute, after modifiers.
// Currently identical to the base value.
func (s Stats) StatTotal(stat Stat) int {
	return s.Attributes[stat]
}

// SkillTotal returns the effective value of a skill, after modifiers.
func (s Stats) SkillTotal(skill Skill) int {
	return s.Skills[skill]
}
