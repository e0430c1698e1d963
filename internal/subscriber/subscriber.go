package subscriber

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jeffleon2/draftea-payment-orchestrator/internal/models"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/retry"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Publisher receives messages that could not be handled.
type Publisher interface {
	Publish(ctx context.Context, topic string, message interface{}) error
}

// Handler processes one message. A NotFoundError or ValidationError is
// treated as permanent and the message goes straight to the DLQ.
type Handler func(ctx context.Context, topic string, value []byte) error

// handlerError marks a transient handler failure as worth another attempt.
type handlerError struct {
	err error
}

func (e *handlerError) Error() string   { return e.err.Error() }
func (e *handlerError) Unwrap() error   { return e.err }
func (e *handlerError) Retryable() bool { return true }

type KafkaConsumer struct {
	Readers      []MessageReader
	DLQPublisher Publisher
	RetryPolicy  retry.Policy

	dispatcher *retry.Dispatcher
	now        func() time.Time
}

func NewMultiTopicConsumer(
	brokers []string,
	topics []string,
	groupID string,
	dlq Publisher,
	policy retry.Policy,
) *KafkaConsumer {
	readers := make([]MessageReader, len(topics))
	for i, topic := range topics {
		readers[i] = kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			GroupID:  groupID,
			Topic:    topic,
			MinBytes: 1,
			MaxBytes: 10e6,
		})
	}

	return NewWithReaders(readers, dlq, policy)
}

// NewWithReaders builds a consumer over already constructed readers.
func NewWithReaders(readers []MessageReader, dlq Publisher, policy retry.Policy) *KafkaConsumer {
	return &KafkaConsumer{
		Readers:      readers,
		DLQPublisher: dlq,
		RetryPolicy:  policy,
		dispatcher:   retry.NewDispatcher("kafka-consumer"),
		now:          time.Now,
	}
}

// WithDispatcher replaces the retry dispatcher, mostly to skip real waits in tests.
func (c *KafkaConsumer) WithDispatcher(d *retry.Dispatcher) *KafkaConsumer {
	c.dispatcher = d
	return c
}

// Listen reads every topic until ctx is cancelled and then closes the readers.
func (c *KafkaConsumer) Listen(ctx context.Context, handler Handler) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, reader := range c.Readers {
		r := reader
		g.Go(func() error {
			defer r.Close()
			for {
				msg, err := r.ReadMessage(gctx)
				if err != nil {
					if gctx.Err() != nil {
						return nil
					}
					logrus.WithError(err).Error("kafka read failed")
					select {
					case <-gctx.Done():
						return nil
					case <-time.After(time.Second):
					}
					continue
				}
				c.processMessage(gctx, msg, handler)
			}
		})
	}
	return g.Wait()
}

func (c *KafkaConsumer) processMessage(ctx context.Context, msg kafka.Message, handler Handler) {
	log := logrus.WithFields(logrus.Fields{
		"topic":     msg.Topic,
		"key":       string(msg.Key),
		"partition": msg.Partition,
		"offset":    msg.Offset,
	})

	result, err := retry.Execute(ctx, c.dispatcher, c.RetryPolicy, func(ctx context.Context, attempt int) (struct{}, error) {
		err := handler(ctx, msg.Topic, msg.Value)
		if err == nil || isPermanent(err) {
			return struct{}{}, err
		}
		return struct{}{}, &handlerError{err: err}
	})
	if err == nil {
		return
	}
	if ctx.Err() != nil {
		log.WithError(err).Warn("consumer stopped while handling message")
		return
	}

	log.WithError(err).Errorf("message failed after %d attempts", result.Attempts)
	if c.DLQPublisher == nil {
		return
	}

	dlqMessage := models.DLQMessage{
		OriginalTopic: msg.Topic,
		Key:           string(msg.Key),
		Value:         string(msg.Value),
		Error:         err.Error(),
		Timestamp:     c.now().UTC(),
		Attempts:      result.Attempts,
	}
	if err := c.DLQPublisher.Publish(ctx, models.PaymentsDLQTopic, dlqMessage); err != nil {
		log.WithError(err).Error("failed to send message to DLQ")
		return
	}
	log.Info("message sent to DLQ")
}

func isPermanent(err error) bool {
	var validation *models.ValidationError
	return models.IsNotFound(err) || errors.As(err, &validation)
}

// DecodeError wraps a payload that cannot be parsed so it is not retried.
func DecodeError(topic string, err error) error {
	return &models.ValidationError{Field: "payload", Reason: fmt.Sprintf("cannot decode %s message: %v", topic, err)}
}
