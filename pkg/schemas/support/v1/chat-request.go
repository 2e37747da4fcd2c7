package support

import (
	"time"

	"github.com/google/uuid"
)

const TypeChatRequest = "support.chat_request.v1"

// ChatRequestV1 is the inbound unit of work: one chat waiting for an agent.
type ChatRequestV1 struct {
	ChatID    uuid.UUID `json:"chat_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (r ChatRequestV1) Validate() error {
	e := &ValidationError{}
	if r.ChatID == uuid.Nil {
		e.add("chat_id", "required")
	}
	if r.UserID == "" {
		e.add("user_id", "required")
	}
	if len(e.Issues) > 0 {
		return e
	}
	return nil
}
