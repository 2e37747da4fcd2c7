package support

// ChatStatus mirrors the numeric codes the chat store persists.
type ChatStatus int

const (
	StatusPending ChatStatus = iota + 1
	StatusActive
	StatusInActive
	StatusRefused
	StatusAssigned
)

func (s ChatStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusActive:
		return "active"
	case StatusInActive:
		return "inactive"
	case StatusRefused:
		return "refused"
	case StatusAssigned:
		return "assigned"
	default:
		return "unknown"
	}
}
