package subscriber_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/retry"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/subscriber"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceReader hands out its messages and then cancels the consumer.
type sliceReader struct {
	messages []kafka.Message
	cancel   context.CancelFunc
	closed   bool
}

func (r *sliceReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.messages) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *sliceReader) Close() error {
	r.closed = true
	return nil
}

type dlqRecorder struct {
	mu       sync.Mutex
	messages []models.DLQMessage
}

func (d *dlqRecorder) Publish(ctx context.Context, topic string, message interface{}) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, message.(models.DLQMessage))
	return nil
}

func run(t *testing.T, policy retry.Policy, handler subscriber.Handler, msgs ...kafka.Message) (*dlqRecorder, *sliceReader) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &sliceReader{messages: msgs, cancel: cancel}
	dlq := &dlqRecorder{}
	consumer := subscriber.NewWithReaders([]subscriber.MessageReader{reader}, dlq, policy).
		WithDispatcher(retry.NewDispatcher("test").WithSleep(func(ctx context.Context, d time.Duration) error { return nil }))

	require.NoError(t, consumer.Listen(ctx, handler))
	return dlq, reader
}

func reconcileMessage(key string) kafka.Message {
	return kafka.Message{Topic: models.ReconcileTopic2Subscribe, Key: []byte(key), Value: []byte(`{"intent_id":"` + key + `"}`)}
}

func TestListen_HandlesEveryMessage(t *testing.T) {
	var seen []string
	handler := func(ctx context.Context, topic string, value []byte) error {
		seen = append(seen, string(value))
		return nil
	}

	dlq, reader := run(t, retry.Policy{MaxRetries: 2}, handler, reconcileMessage("a"), reconcileMessage("b"))

	assert.Len(t, seen, 2)
	assert.Empty(t, dlq.messages)
	assert.True(t, reader.closed)
}

func TestListen_RetriesTransientFailures(t *testing.T) {
	calls := 0
	handler := func(ctx context.Context, topic string, value []byte) error {
		calls++
		if calls < 3 {
			return errors.New("database unavailable")
		}
		return nil
	}

	dlq, _ := run(t, retry.Policy{MaxRetries: 3}, handler, reconcileMessage("a"))

	assert.Equal(t, 3, calls)
	assert.Empty(t, dlq.messages)
}

func TestListen_ExhaustedMessageGoesToDLQ(t *testing.T) {
	calls := 0
	handler := func(ctx context.Context, topic string, value []byte) error {
		calls++
		return errors.New("database unavailable")
	}

	dlq, _ := run(t, retry.Policy{MaxRetries: 2}, handler, reconcileMessage("a"))

	assert.Equal(t, 3, calls)
	require.Len(t, dlq.messages, 1)
	assert.Equal(t, models.ReconcileTopic2Subscribe, dlq.messages[0].OriginalTopic)
	assert.Equal(t, "a", dlq.messages[0].Key)
	assert.Equal(t, 3, dlq.messages[0].Attempts)
}

func TestListen_PermanentFailureSkipsRetries(t *testing.T) {
	calls := 0
	handler := func(ctx context.Context, topic string, value []byte) error {
		calls++
		return &models.NotFoundError{Entity: "payment intent", ID: "a"}
	}

	dlq, _ := run(t, retry.Policy{MaxRetries: 5}, handler, reconcileMessage("a"))

	assert.Equal(t, 1, calls)
	require.Len(t, dlq.messages, 1)
	assert.Equal(t, 1, dlq.messages[0].Attempts)
	assert.Contains(t, dlq.messages[0].Error, "not found")
}

func TestListen_DecodeErrorIsPermanent(t *testing.T) {
	handler := func(ctx context.Context, topic string, value []byte) error {
		return subscriber.DecodeError(topic, errors.New("unexpected end of JSON input"))
	}

	dlq, _ := run(t, retry.Policy{MaxRetries: 5}, handler, reconcileMessage("a"))

	require.Len(t, dlq.messages, 1)
	assert.Equal(t, 1, dlq.messages[0].Attempts)
}
