package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboricindustries/raycon-assign/pkg/schemas/common"
	support "github.com/roboricindustries/raycon-assign/pkg/schemas/support/v1"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeAck struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAck) Ack(_ uint64, _ bool) error { f.acked = true; return nil }
func (f *fakeAck) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}
func (f *fakeAck) Reject(_ uint64, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func delivery(t *testing.T, ack *fakeAck, body []byte) amqp091.Delivery {
	t.Helper()
	return amqp091.Delivery{Acknowledger: ack, Body: body}
}

func requestBody(t *testing.T) []byte {
	t.Helper()
	env := common.Wrap(support.TypeChatRequest, "test", support.ChatRequestV1{
		ChatID: uuid.New(),
		UserID: "user-1",
	})
	raw, err := json.Marshal(env)
	require.NoError(t, err)
	return raw
}

func newTestConsumer(handle HandlerFunc) *Consumer {
	return NewConsumer(nil, RequestQueue, 1, handle, discardLogger())
}

func TestDispatchAcksOnSuccess(t *testing.T) {
	var got support.ChatRequestV1
	c := newTestConsumer(func(_ context.Context, req support.ChatRequestV1) error {
		got = req
		return nil
	})

	ack := &fakeAck{}
	c.dispatch(context.Background(), delivery(t, ack, requestBody(t)))

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
	assert.Equal(t, "user-1", got.UserID)
}

func TestDispatchRejectsPoisonWithoutRequeue(t *testing.T) {
	called := false
	c := newTestConsumer(func(_ context.Context, _ support.ChatRequestV1) error {
		called = true
		return nil
	})

	ack := &fakeAck{}
	c.dispatch(context.Background(), delivery(t, ack, []byte("not json")))

	assert.False(t, called)
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
}

func TestDispatchRejectsInvalidRequest(t *testing.T) {
	c := newTestConsumer(func(_ context.Context, _ support.ChatRequestV1) error {
		t.Fatal("handler must not run for invalid contracts")
		return nil
	})

	env := common.Wrap(support.TypeChatRequest, "test", support.ChatRequestV1{})
	raw, err := json.Marshal(env)
	require.NoError(t, err)

	ack := &fakeAck{}
	c.dispatch(context.Background(), delivery(t, ack, raw))

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
}

func TestDispatchRequeuesWhenShutdownInterruptsHandler(t *testing.T) {
	c := newTestConsumer(func(ctx context.Context, _ support.ChatRequestV1) error {
		// Mimic a store call cut off by run-loop cancellation.
		return ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ack := &fakeAck{}
	c.dispatch(ctx, delivery(t, ack, requestBody(t)))

	// The request is valid work, not poison: it must go back on the
	// queue for the next process, never be dropped.
	assert.False(t, ack.acked)
	assert.True(t, ack.nacked)
	assert.True(t, ack.requeue)
}

func TestDispatchRejectsOnHandlerError(t *testing.T) {
	c := newTestConsumer(func(_ context.Context, _ support.ChatRequestV1) error {
		return errors.New("store down")
	})

	ack := &fakeAck{}
	c.dispatch(context.Background(), delivery(t, ack, requestBody(t)))

	assert.False(t, ack.acked)
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
}

func TestAgentTopology(t *testing.T) {
	id := uuid.MustParse("a3f1c5e2-0000-4000-8000-000000000001")
	assert.Equal(t, "agent.a3f1c5e2-0000-4000-8000-000000000001", AgentRoutingKey(id))
	assert.Equal(t, "agent.a3f1c5e2-0000-4000-8000-000000000001.queue", AgentQueueName(id))
}
