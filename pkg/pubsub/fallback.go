package pubsub

import (
	"context"
	"log/slog"

	"github.com/roboricindustries/raycon-assign/pkg/schemas/common"
	support "github.com/roboricindustries/raycon-assign/pkg/schemas/support/v1"
)

// FallbackPublisher stands in when the broker publisher cannot be built.
// Notices are best effort, so skipping them keeps the assignment path
// alive; every skip is logged.
type FallbackPublisher struct {
	log *slog.Logger
}

func NewFallback(logger *slog.Logger) Publisher {
	return &FallbackPublisher{log: logger}
}

func (p *FallbackPublisher) PublishAssignment(_ context.Context, env common.Envelope[support.ChatAssignedV1]) error {
	p.log.Warn("FallbackPublisher: skipped assignment notice",
		slog.String("chat", env.Data.ChatID.String()),
		slog.String("agent", env.Data.AgentID.String()))
	return nil
}

func (p *FallbackPublisher) Close() error {
	return nil
}
