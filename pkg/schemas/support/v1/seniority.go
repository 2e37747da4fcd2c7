package support

// Seniority orders agents from cheapest to most senior. The scheduler
// walks ranks ascending so juniors absorb load first.
type Seniority int

const (
	SeniorityJunior Seniority = iota
	SeniorityMid
	SenioritySenior
	SeniorityTeamLead
)

func (s Seniority) String() string {
	switch s {
	case SeniorityJunior:
		return "junior"
	case SeniorityMid:
		return "mid"
	case SenioritySenior:
		return "senior"
	case SeniorityTeamLead:
		return "teamlead"
	default:
		return "unknown"
	}
}
