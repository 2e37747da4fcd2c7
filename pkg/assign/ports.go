// Package assign holds the admission, scheduling and orchestration logic
// that turns an inbound chat request into an agent assignment. It owns no
// state: agents and sessions live behind the Store port and are re-read on
// every decision.
package assign

import (
	"context"

	"github.com/google/uuid"

	"github.com/roboricindustries/raycon-assign/pkg/schemas/common"
	support "github.com/roboricindustries/raycon-assign/pkg/schemas/support/v1"
)

// Store is the slice of the chat-store API the handler needs.
type Store interface {
	GetChat(ctx context.Context, id uuid.UUID) (*support.ChatSession, error)
	AddChat(ctx context.Context, chat support.ChatSession) (*support.ChatSession, error)
	AllAgents(ctx context.Context) ([]support.Agent, error)
	PendingCount(ctx context.Context) (int, error)
	AssignChat(ctx context.Context, chatID, agentID uuid.UUID) error
	UpdateChat(ctx context.Context, chat support.ChatSession) error
	AddAgent(ctx context.Context, agent support.Agent) (*support.Agent, error)
}

// Notifier delivers an assignment notice to the owning agent's queue.
// Publishing is best effort; the authoritative state is the store.
type Notifier interface {
	PublishAssignment(ctx context.Context, env common.Envelope[support.ChatAssignedV1]) error
}
