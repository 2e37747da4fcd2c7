package assign

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roboricindustries/raycon-assign/pkg/metrics"
	"github.com/roboricindustries/raycon-assign/pkg/schemas/common"
	support "github.com/roboricindustries/raycon-assign/pkg/schemas/support/v1"
	"github.com/roboricindustries/raycon-assign/pkg/shift"
)

// Producer identifies this service in outbound envelope metadata.
const Producer = "raycon-assign"

// Handler processes one chat request per delivery: load current state,
// admit, schedule, persist, notify. It holds nothing between deliveries.
type Handler struct {
	store    Store
	notifier Notifier
	log      *slog.Logger

	now func() time.Time
}

func NewHandler(st Store, notifier Notifier, clock shift.Clock, logger *slog.Logger) *Handler {
	return &Handler{
		store:    st,
		notifier: notifier,
		log:      logger,
		now:      clock.Now,
	}
}

// Handle runs the full admission/assignment pipeline for one request.
// A returned error means the delivery could not be processed and should
// be rejected by the transport; a nil return covers every terminal
// outcome including refusal and "no agent free yet".
func (h *Handler) Handle(ctx context.Context, req support.ChatRequestV1) error {
	started := time.Now()
	defer func() {
		metrics.AssignmentDuration.Observe(time.Since(started).Seconds())
	}()

	chat, err := h.store.GetChat(ctx, req.ChatID)
	if err != nil {
		h.log.Error("load chat failed", slog.String("chat", req.ChatID.String()), slog.Any("error", err))
		return err
	}
	if chat == nil {
		// First sighting of this chat id: seed a pending session.
		chat, err = h.createChat(ctx, req)
		if err != nil {
			return err
		}
	}

	agents, err := h.store.AllAgents(ctx)
	if err != nil {
		h.log.Error("load agents failed", slog.Any("error", err))
		return err
	}

	now := h.now()
	capacity := shift.TotalCapacity(agents, now)
	pending := h.pendingCount(ctx)
	metrics.ShiftCapacity.Set(float64(capacity))
	metrics.PendingChats.Set(float64(pending))

	switch Admit(pending, capacity, shift.OfficeHours(now)) {
	case Refuse:
		return h.refuse(ctx, chat, "off_hours")

	case NeedsOverflow:
		created, err := ProvisionOverflow(ctx, h.store, agents)
		if err != nil {
			h.log.Error("overflow provisioning failed", slog.Any("error", err))
		}
		if created {
			metrics.OverflowProvisions.Inc()
			h.log.Info("overflow pool provisioned")
		}
		// Re-read roster and queue depth before the final verdict.
		if agents, err = h.store.AllAgents(ctx); err != nil {
			h.log.Error("reload agents failed", slog.Any("error", err))
			return err
		}
		capacity = shift.TotalCapacity(agents, now)
		if pending = h.pendingCount(ctx); pending >= QueueCeiling(capacity) {
			return h.refuse(ctx, chat, "overflow_exhausted")
		}
	}

	agent := PickAgent(agents, now)
	if agent == nil {
		h.log.Info("no agent free, chat remains pending", slog.String("chat", chat.ID.String()))
		return nil
	}

	// Persist before notify: never announce an assignment the store has
	// not recorded.
	if err := h.store.AssignChat(ctx, chat.ID, agent.ID); err != nil {
		h.log.Error("persist assignment failed",
			slog.String("chat", chat.ID.String()),
			slog.String("agent", agent.ID.String()),
			slog.Any("error", err))
		return err
	}
	metrics.ChatsAssigned.Inc()
	h.log.Info("chat assigned",
		slog.String("chat", chat.ID.String()),
		slog.String("agent", agent.Name),
		slog.String("seniority", agent.Seniority.String()))

	env := common.Wrap(support.TypeChatAssigned, Producer, support.ChatAssignedV1{
		ChatID:     chat.ID,
		AgentID:    agent.ID,
		UserID:     chat.UserID,
		Channel:    support.ChannelWeb,
		AssignedAt: time.Now().UTC(),
	})
	if err := h.notifier.PublishAssignment(ctx, env); err != nil {
		// Best effort: the assignment is already durable in the store.
		metrics.PublishFailures.Inc()
		h.log.Error("publish assignment notice failed",
			slog.String("chat", chat.ID.String()), slog.Any("error", err))
	}
	return nil
}

func (h *Handler) createChat(ctx context.Context, req support.ChatRequestV1) (*support.ChatSession, error) {
	seed := support.ChatSession{
		ID:            req.ChatID,
		UserID:        req.UserID,
		Status:        support.StatusPending,
		LastPollAtUTC: time.Now().UTC(),
		CreatedAt:     time.Now().UTC(),
	}
	chat, err := h.store.AddChat(ctx, seed)
	if err != nil {
		h.log.Error("create chat failed", slog.String("chat", req.ChatID.String()), slog.Any("error", err))
		return nil, fmt.Errorf("create chat %s: %w", req.ChatID, err)
	}
	if chat == nil {
		chat = &seed
	}
	h.log.Info("chat created", slog.String("chat", chat.ID.String()))
	return chat, nil
}

// pendingCount treats a failed read as an empty queue; a transient store
// outage must not escalate past this call site.
func (h *Handler) pendingCount(ctx context.Context) int {
	n, err := h.store.PendingCount(ctx)
	if err != nil {
		h.log.Warn("pending count unavailable, assuming zero", slog.Any("error", err))
		return 0
	}
	return n
}

func (h *Handler) refuse(ctx context.Context, chat *support.ChatSession, reason string) error {
	chat.Status = support.StatusRefused
	if err := h.store.UpdateChat(ctx, *chat); err != nil {
		h.log.Error("persist refusal failed", slog.String("chat", chat.ID.String()), slog.Any("error", err))
		return err
	}
	metrics.ChatsRefused.WithLabelValues(reason).Inc()
	h.log.Info("chat refused", slog.String("chat", chat.ID.String()), slog.String("reason", reason))
	return nil
}
