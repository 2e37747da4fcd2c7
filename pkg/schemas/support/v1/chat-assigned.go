package support

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeChatAssigned = "support.chat_assigned.v1"

	ChannelWeb = "web"
)

// ChatAssignedV1 is the outbound notice delivered to the owning agent's
// dedicated queue once an assignment has been persisted.
type ChatAssignedV1 struct {
	ChatID     uuid.UUID `json:"chat_id"`
	AgentID    uuid.UUID `json:"agent_id"`
	UserID     string    `json:"user_id"`
	Channel    string    `json:"channel"` // e.g. web, mobile
	AssignedAt time.Time `json:"assigned_at"`
}
