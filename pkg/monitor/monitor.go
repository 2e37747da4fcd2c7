// Package monitor reclaims capacity from abandoned chat sessions. It runs
// beside the request path on its own cadence and talks to the same store.
package monitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/roboricindustries/raycon-assign/pkg/metrics"
	support "github.com/roboricindustries/raycon-assign/pkg/schemas/support/v1"
)

// Store is the slice of the chat-store API the reaper needs.
type Store interface {
	ActiveChats(ctx context.Context) ([]support.ChatSession, error)
	UpdateChat(ctx context.Context, chat support.ChatSession) error
	GetAgent(ctx context.Context, id uuid.UUID) (*support.Agent, error)
	UpdateAgent(ctx context.Context, agent support.Agent) error
}

// Monitor marks sessions whose heartbeats have stopped as inactive and
// frees the owning agent's slot. Each session is reaped independently;
// a store failure on one never stops the sweep or the loop.
type Monitor struct {
	store     Store
	interval  time.Duration
	threshold time.Duration
	log       *slog.Logger

	now func() time.Time
}

func New(st Store, interval, threshold time.Duration, logger *slog.Logger) *Monitor {
	if interval <= 0 {
		interval = time.Second
	}
	if threshold <= 0 {
		threshold = 3 * time.Second
	}
	return &Monitor{
		store:     st,
		interval:  interval,
		threshold: threshold,
		log:       logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run sweeps until ctx is cancelled. The per-tick delay is itself a
// cancellation point.
func (m *Monitor) Run(ctx context.Context) error {
	m.log.Info("liveness monitor started",
		slog.Duration("interval", m.interval),
		slog.Duration("threshold", m.threshold))

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Info("liveness monitor stopped")
			return ctx.Err()
		case <-ticker.C:
			m.sweep(ctx)
		}
	}
}

func (m *Monitor) sweep(ctx context.Context) {
	sessions, err := m.store.ActiveChats(ctx)
	if err != nil {
		m.log.Warn("load active sessions failed", slog.Any("error", err))
		return
	}

	now := m.now()
	for _, session := range sessions {
		if now.Sub(session.LastPollAtUTC) <= m.threshold {
			continue
		}
		m.reap(ctx, session, now)
	}
}

func (m *Monitor) reap(ctx context.Context, session support.ChatSession, now time.Time) {
	session.Status = support.StatusInActive
	if err := m.store.UpdateChat(ctx, session); err != nil {
		m.log.Warn("mark session inactive failed",
			slog.String("session", session.ID.String()), slog.Any("error", err))
		return
	}
	metrics.SessionsReaped.Inc()
	m.log.Info("session marked inactive",
		slog.String("session", session.ID.String()),
		slog.Duration("since_poll", now.Sub(session.LastPollAtUTC)))

	if !session.Assigned() {
		return
	}

	agent, err := m.store.GetAgent(ctx, session.AgentID)
	if err != nil {
		m.log.Warn("load owning agent failed",
			slog.String("agent", session.AgentID.String()), slog.Any("error", err))
		return
	}
	if agent == nil {
		// Success envelope with a null payload: the store no longer
		// knows this agent, so there is no slot to free.
		m.log.Warn("owning agent not found",
			slog.String("agent", session.AgentID.String()),
			slog.String("session", session.ID.String()))
		return
	}

	kept := agent.AssignedChatIDs[:0:0]
	for _, id := range agent.AssignedChatIDs {
		if id != session.ID.String() {
			kept = append(kept, id)
		}
	}
	agent.AssignedChatIDs = kept

	if err := m.store.UpdateAgent(ctx, *agent); err != nil {
		m.log.Warn("free agent slot failed",
			slog.String("agent", agent.ID.String()), slog.Any("error", err))
		return
	}
	m.log.Info("agent slot freed",
		slog.String("agent", agent.ID.String()),
		slog.String("session", session.ID.String()))
}
