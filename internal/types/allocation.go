package types

// Role is a segment's structural position, derived from its index and the segment count.
type Role string

// Roles.
const (
	RoleOpening     Role = "opening"
	RoleDevelopment Role = "development"
	RoleTurn        Role = "turn"
	RoleClosing     Role = "closing"
)

// Label returns the bilingual display label for the role.
func (r Role) Label() string {
	switch r {
	case RoleOpening:
		return "开场（Opening）"
	case RoleDevelopment:
		return "展开（Development）"
	case RoleTurn:
		return "转折（Turn）"
	case RoleClosing:
		return "结尾（Closing）"
	default:
		return string(r)
	}
}

// ThirdStyleWarning is emitted when the third-ranked score is competitively close.
const ThirdStyleWarning = "出现第三种风格竞争（Third style competing）"

// Scores maps each dimension to its normalized score.
type Scores map[Dimension]float64

// Sum returns the total of all scores.
func (s Scores) Sum() float64 {
	total := 0.0
	for _, d := range Dimensions {
		total += s[d]
	}
	return total
}

// Allocation is the ranked, normalized style allocation computed for one role.
type Allocation struct {
	Role      Role      `json:"role"`
	Primary   Dimension `json:"primary"`
	Secondary Dimension `json:"secondary"`
	Scores    Scores    `json:"scores"`
	Warning   string    `json:"warning,omitempty"`
}

// Active reports whether d is the primary or secondary dimension.
func (a Allocation) Active(d Dimension) bool {
	return a.Primary == d || a.Secondary == d
}
