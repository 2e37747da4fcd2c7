package support

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	ID            uuid.UUID  `json:"id"`
	UserID        string     `json:"user_id"`
	Status        ChatStatus `json:"chat_status"`
	LastPollAtUTC time.Time  `json:"last_poll_at_utc"` // client heartbeat
	AssignedAt    time.Time  `json:"assigned_at"`
	AgentID       uuid.UUID  `json:"agent_id"` // zero until assigned
	CreatedAt     time.Time  `json:"created_date"`
	UpdatedAt     time.Time  `json:"updated_date"`
}

// Assigned reports whether the session has an owning agent.
func (c ChatSession) Assigned() bool { return c.AgentID != uuid.Nil }
