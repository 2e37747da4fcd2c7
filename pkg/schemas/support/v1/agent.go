package support

import (
	"time"

	"github.com/google/uuid"
)

type Agent struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Seniority       Seniority `json:"seniority"`
	ShiftStartHour  int       `json:"shift_start_hour"` // local hour, 0-23
	ShiftEndHour    int       `json:"shift_end_hour"`   // half-open; start > end wraps midnight
	IsOverflow      bool      `json:"is_overflow"`
	MaxConcurrency  int       `json:"max_concurrency"`
	AssignedChatIDs []string  `json:"assigned_chat_ids"`
	CreatedAt       time.Time `json:"created_date"`
}

// Load is the number of chats currently held by the agent. The store is
// authoritative; this is only a view over the last roster read.
func (a Agent) Load() int { return len(a.AssignedChatIDs) }

// HasFreeSlot reports whether the agent is below its concurrency ceiling.
func (a Agent) HasFreeSlot() bool { return a.Load() < a.MaxConcurrency }
