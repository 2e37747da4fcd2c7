package assign

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/roboricindustries/raycon-assign/pkg/schemas/common"
	support "github.com/roboricindustries/raycon-assign/pkg/schemas/support/v1"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore implements Store using in-memory maps.
type fakeStore struct {
	chats   map[uuid.UUID]*support.ChatSession
	agents  []support.Agent
	pending int

	getChatErr  error
	agentsErr   error
	pendingErr  error
	assignErr   error
	addAgentErr error
	updateErr   error

	assignCalls [][2]uuid.UUID
	updated     []support.ChatSession
	addedAgents []support.Agent
}

func newFakeStore() *fakeStore {
	return &fakeStore{chats: make(map[uuid.UUID]*support.ChatSession)}
}

func (s *fakeStore) GetChat(_ context.Context, id uuid.UUID) (*support.ChatSession, error) {
	if s.getChatErr != nil {
		return nil, s.getChatErr
	}
	return s.chats[id], nil
}

func (s *fakeStore) AddChat(_ context.Context, chat support.ChatSession) (*support.ChatSession, error) {
	c := chat
	s.chats[chat.ID] = &c
	return &c, nil
}

func (s *fakeStore) AllAgents(_ context.Context) ([]support.Agent, error) {
	if s.agentsErr != nil {
		return nil, s.agentsErr
	}
	return append([]support.Agent(nil), s.agents...), nil
}

func (s *fakeStore) PendingCount(_ context.Context) (int, error) {
	if s.pendingErr != nil {
		return 0, s.pendingErr
	}
	return s.pending, nil
}

func (s *fakeStore) AssignChat(_ context.Context, chatID, agentID uuid.UUID) error {
	if s.assignErr != nil {
		return s.assignErr
	}
	s.assignCalls = append(s.assignCalls, [2]uuid.UUID{chatID, agentID})
	if chat, ok := s.chats[chatID]; ok {
		chat.Status = support.StatusAssigned
		chat.AgentID = agentID
	}
	for i := range s.agents {
		if s.agents[i].ID == agentID {
			s.agents[i].AssignedChatIDs = append(s.agents[i].AssignedChatIDs, chatID.String())
		}
	}
	return nil
}

func (s *fakeStore) UpdateChat(_ context.Context, chat support.ChatSession) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	c := chat
	s.chats[chat.ID] = &c
	s.updated = append(s.updated, chat)
	return nil
}

func (s *fakeStore) AddAgent(_ context.Context, agent support.Agent) (*support.Agent, error) {
	if s.addAgentErr != nil {
		return nil, s.addAgentErr
	}
	s.agents = append(s.agents, agent)
	s.addedAgents = append(s.addedAgents, agent)
	return &agent, nil
}

// fakeNotifier records published assignment notices.
type fakeNotifier struct {
	notices []common.Envelope[support.ChatAssignedV1]
	err     error
}

func (n *fakeNotifier) PublishAssignment(_ context.Context, env common.Envelope[support.ChatAssignedV1]) error {
	if n.err != nil {
		return n.err
	}
	n.notices = append(n.notices, env)
	return nil
}
