// Package store is the HTTP client for the chat store, the single source
// of truth for agents and chat sessions. The core never caches what it
// reads here; every decision re-reads current state.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	support "github.com/roboricindustries/raycon-assign/pkg/schemas/support/v1"
)

// ErrNotOK marks a response whose envelope carried Success=false.
var ErrNotOK = errors.New("chat store returned non-success response")

type Client struct {
	base string
	http *http.Client
	log  *slog.Logger
}

// NewClient builds a store client with a bounded per-call timeout so a
// stalled store cannot wedge the consumer or the monitor.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
		log:  logger,
	}
}

func do[T any](ctx context.Context, c *Client, method, path string, payload any) (T, error) {
	var zero T

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return zero, fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return zero, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return zero, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env APIResponse[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return zero, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	if !env.Success {
		c.log.Warn("store call not successful",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("code", env.ResponseCode),
			slog.String("message", env.Message))
		return zero, fmt.Errorf("%s %s (%d %s): %w", method, path, env.ResponseCode, env.Message, ErrNotOK)
	}
	return env.Data, nil
}

// GetChat fetches one session. A success envelope with a null payload
// means the chat is not yet known to the store; both returns are nil.
func (c *Client) GetChat(ctx context.Context, id uuid.UUID) (*support.ChatSession, error) {
	return do[*support.ChatSession](ctx, c, http.MethodGet, "/get-chat/"+id.String(), nil)
}

func (c *Client) AddChat(ctx context.Context, chat support.ChatSession) (*support.ChatSession, error) {
	return do[*support.ChatSession](ctx, c, http.MethodPost, "/add-chat", chat)
}

func (c *Client) AllAgents(ctx context.Context) ([]support.Agent, error) {
	return do[[]support.Agent](ctx, c, http.MethodGet, "/get-all-agents", nil)
}

// PendingCount returns the current depth of the pending-chat queue.
func (c *Client) PendingCount(ctx context.Context) (int, error) {
	return do[int](ctx, c, http.MethodGet, "/pending", nil)
}

type assignPayload struct {
	ChatID  uuid.UUID `json:"chat_id"`
	AgentID uuid.UUID `json:"agent_id"`
}

func (c *Client) AssignChat(ctx context.Context, chatID, agentID uuid.UUID) error {
	_, err := do[json.RawMessage](ctx, c, http.MethodPost, "/assign", assignPayload{ChatID: chatID, AgentID: agentID})
	return err
}

func (c *Client) UpdateChat(ctx context.Context, chat support.ChatSession) error {
	chat.UpdatedAt = time.Now().UTC()
	_, err := do[*support.ChatSession](ctx, c, http.MethodPut, "/update-chat/"+chat.ID.String(), chat)
	return err
}

func (c *Client) AddAgent(ctx context.Context, agent support.Agent) (*support.Agent, error) {
	return do[*support.Agent](ctx, c, http.MethodPost, "/add-agent", agent)
}

func (c *Client) ActiveChats(ctx context.Context) ([]support.ChatSession, error) {
	return do[[]support.ChatSession](ctx, c, http.MethodGet, "/chats/active", nil)
}

func (c *Client) GetAgent(ctx context.Context, id uuid.UUID) (*support.Agent, error) {
	return do[*support.Agent](ctx, c, http.MethodGet, "/get-agent/"+id.String(), nil)
}

func (c *Client) UpdateAgent(ctx context.Context, agent support.Agent) error {
	_, err := do[*support.Agent](ctx, c, http.MethodPost, "/update-agent/"+agent.ID.String(), agent)
	return err
}
