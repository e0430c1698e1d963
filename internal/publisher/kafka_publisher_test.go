package publisher_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/publisher"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/retry"
	kafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu       sync.Mutex
	failures int
	messages []kafka.Message
	calls    int
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls++
	if w.failures > 0 {
		w.failures--
		return errors.New("leader not available")
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func newPublisher(w *fakeWriter, policy retry.Policy, delays *[]time.Duration) *publisher.KafkaPublisher {
	p := publisher.NewWithWriters(map[string]publisher.MessageWriter{models.AuditTopic: w}, policy)
	return p.WithDispatcher(retry.NewDispatcher("test").WithSleep(func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}))
}

func TestPublish_KeysAuditEventsByEntity(t *testing.T) {
	w := &fakeWriter{}
	var delays []time.Duration
	p := newPublisher(w, retry.Policy{MaxRetries: 2, BaseDelay: time.Millisecond}, &delays)

	event := models.AuditEvent{ID: "01J", EntityID: "intent-1", Action: models.ActionAuthorize, Outcome: models.OutcomeSuccess}
	err := p.Publish(context.Background(), models.AuditTopic, event)

	require.NoError(t, err)
	require.Len(t, w.messages, 1)
	assert.Equal(t, "intent-1", string(w.messages[0].Key))

	var decoded models.AuditEvent
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &decoded))
	assert.Equal(t, event.Action, decoded.Action)
	assert.Empty(t, delays)
}

func TestPublish_RetriesWriteFailures(t *testing.T) {
	w := &fakeWriter{failures: 2}
	var delays []time.Duration
	p := newPublisher(w, retry.Policy{MaxRetries: 3, BaseDelay: 100 * time.Millisecond, ExponentialBackoff: true}, &delays)

	err := p.Publish(context.Background(), models.AuditTopic, map[string]string{"a": "b"})

	require.NoError(t, err)
	assert.Equal(t, 3, w.calls)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, delays)
}

func TestPublish_GivesUpAfterPolicy(t *testing.T) {
	w := &fakeWriter{failures: 10}
	var delays []time.Duration
	p := newPublisher(w, retry.Policy{MaxRetries: 2, BaseDelay: time.Millisecond}, &delays)

	err := p.Publish(context.Background(), models.AuditTopic, "payload")

	var exhausted *retry.ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 3, exhausted.Attempts)
	assert.Equal(t, 3, w.calls)
}

func TestPublish_UnknownTopic(t *testing.T) {
	var delays []time.Duration
	p := newPublisher(&fakeWriter{}, retry.Policy{}, &delays)

	err := p.Publish(context.Background(), "unknown", "payload")

	assert.ErrorContains(t, err, "no writer configured")
}

func TestClose_ClosesWriters(t *testing.T) {
	w := &fakeWriter{}
	var delays []time.Duration
	p := newPublisher(w, retry.Policy{}, &delays)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}
