package eeprom

// Skill is the starting difficulty.
type Skill int

const (
	SkillBaby Skill = iota
	SkillEasy
	SkillMedium
	SkillHard
	SkillNightmare
)

var skillNames = [...]string{
	"I'm A Wimp.",
	"Not too rough.",
	"Hurt me plenty.",
	"Ultra-Violence.",
	"Nightmare!",
}

func (s Skill) Valid() bool { return s >= SkillBaby && s <= SkillNightmare }

func (s Skill) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return skillNames[s]
}

// Skills lists the skill levels in order.
func Skills() []Skill {
	return []Skill{SkillBaby, SkillEasy, SkillMedium, SkillHard, SkillNightmare}
}

// NumControlSchemes is the number of A/B/C button layouts.
const NumControlSchemes = 6

// ControlScheme names the function of each face button.
type ControlScheme struct {
	A, B, C string
}

var controlSchemes = [NumControlSchemes]ControlScheme{
	{"Speed", "Fire", "Use"},
	{"Speed", "Use", "Fire"},
	{"Fire", "Speed", "Use"},
	{"Fire", "Use", "Speed"},
	{"Use", "Speed", "Fire"},
	{"Use", "Fire", "Speed"},
}

// Scheme returns layout i, or false when i is out of range.
func Scheme(i int) (ControlScheme, bool) {
	if i < 0 || i >= NumControlSchemes {
		return ControlScheme{}, false
	}
	return controlSchemes[i], true
}

func (c ControlScheme) String() string { return c.A + "/" + c.B + "/" + c.C }
