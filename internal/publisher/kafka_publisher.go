package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/jeffleon2/draftea-payment-orchestrator/internal/retry"
	kafka "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// keyed messages choose their own partition key.
type keyed interface {
	PartitionKey() string
}

// writeError marks a broker write failure as worth another attempt.
type writeError struct {
	err error
}

func (e *writeError) Error() string   { return e.err.Error() }
func (e *writeError) Unwrap() error   { return e.err }
func (e *writeError) Retryable() bool { return true }

type KafkaPublisher struct {
	Writers     map[string]MessageWriter
	RetryPolicy retry.Policy

	dispatcher *retry.Dispatcher
}

func NewKafkaPublisher(brokers []string, topics []string, policy retry.Policy) *KafkaPublisher {
	writers := make(map[string]MessageWriter)
	for _, t := range topics {
		writers[t] = &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    t,
			Balancer: &kafka.Hash{},
		}
	}

	return NewWithWriters(writers, policy)
}

// NewWithWriters builds a publisher over already constructed writers.
func NewWithWriters(writers map[string]MessageWriter, policy retry.Policy) *KafkaPublisher {
	return &KafkaPublisher{
		Writers:     writers,
		RetryPolicy: policy,
		dispatcher:  retry.NewDispatcher("kafka-publisher"),
	}
}

// WithDispatcher replaces the retry dispatcher, mostly to skip real waits in tests.
func (p *KafkaPublisher) WithDispatcher(d *retry.Dispatcher) *KafkaPublisher {
	p.dispatcher = d
	return p
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic string, message interface{}) error {
	writer, ok := p.Writers[topic]
	if !ok {
		return fmt.Errorf("error no writer configured for topic %s", topic)
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("error marshaling message: %w", err)
	}

	msg := kafka.Message{
		Value: data,
	}
	if k, ok := message.(keyed); ok {
		msg.Key = []byte(k.PartitionKey())
	}

	return p.publishWithRetry(ctx, writer, msg, topic)
}

func (p *KafkaPublisher) publishWithRetry(ctx context.Context, writer MessageWriter, msg kafka.Message, topic string) error {
	result, err := retry.Execute(ctx, p.dispatcher, p.RetryPolicy, func(ctx context.Context, attempt int) (struct{}, error) {
		if err := writer.WriteMessages(ctx, msg); err != nil {
			logrus.WithFields(logrus.Fields{
				"topic":   topic,
				"attempt": attempt + 1,
			}).WithError(err).Warn("kafka write failed")
			return struct{}{}, &writeError{err: err}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return fmt.Errorf("failed to publish message to topic '%s': %w", topic, err)
	}

	if result.Attempts > 1 {
		logrus.WithField("topic", topic).Infof("message published after %d attempts", result.Attempts)
	}
	return nil
}

// Close flushes and closes every writer.
func (p *KafkaPublisher) Close() error {
	var result *multierror.Error
	for topic, w := range p.Writers {
		if err := w.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("error closing writer for %s: %w", topic, err))
		}
	}
	return result.ErrorOrNil()
}
