package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/app/fulfillment"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/metrics"
)

type BatchFetcher interface {
	FetchBatch(ctx context.Context) ([]kafka.Message, error)
	Commit(ctx context.Context, msgs []kafka.Message) error
}

type Requeuer interface {
	Produce(ctx context.Context, topic string, key, value []byte) error
}

type BatchProcessor interface {
	ProcessBatch(ctx context.Context, envelopes []fulfillment.Envelope) []fulfillment.Outcome
}

// IntakeConsumer adapts the Kafka transport to the pipeline's batch
// contract: fetch a bounded batch, process it, republish exactly the
// FailureManifest subset onto the intake topic, then commit the whole
// batch. Kafka cannot skip-commit individual offsets, so redelivery of
// failed messages is expressed by producing them again; bodies are
// republished byte for byte, preserving the idempotency token.
type IntakeConsumer struct {
	consumer BatchFetcher
	producer Requeuer
	topic    string
	service  BatchProcessor
	reporter *fulfillment.Reporter
	metrics  *metrics.Registry
	logger   *zap.Logger
}

func NewIntakeConsumer(
	consumer BatchFetcher,
	producer Requeuer,
	topic string,
	service BatchProcessor,
	reporter *fulfillment.Reporter,
	m *metrics.Registry,
	logger *zap.Logger,
) *IntakeConsumer {
	return &IntakeConsumer{
		consumer: consumer,
		producer: producer,
		topic:    topic,
		service:  service,
		reporter: reporter,
		metrics:  m,
		logger:   logger,
	}
}

func (c *IntakeConsumer) Run(ctx context.Context) error {
	for {
		msgs, err := c.consumer.FetchBatch(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.logger.Info("Context done, stopping intake consumer")
				return nil
			}
			c.logger.Error("Error fetching batch from Kafka", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		c.handleBatch(ctx, msgs)
	}
}

func (c *IntakeConsumer) handleBatch(ctx context.Context, msgs []kafka.Message) {
	envelopes := make([]fulfillment.Envelope, len(msgs))
	byID := make(map[string]kafka.Message, len(msgs))
	for i, m := range msgs {
		id := transportID(m)
		envelopes[i] = fulfillment.Envelope{ID: id, Body: m.Value}
		byID[id] = m
	}

	start := time.Now()
	outcomes := c.service.ProcessBatch(ctx, envelopes)
	c.metrics.BatchDurationSec.Observe(time.Since(start).Seconds())

	manifest := c.reporter.Report(outcomes)
	for _, id := range manifest {
		m, ok := byID[id]
		if !ok {
			c.logger.Warn("Manifest identifier does not match any envelope", zap.String("identifier", id))
			continue
		}
		if err := c.producer.Produce(ctx, c.topic, m.Key, m.Value); err != nil {
			// Leave the batch uncommitted: the whole fetch will be
			// redelivered, which the pipeline tolerates.
			c.logger.Error("Failed to requeue message, skipping commit so the batch redelivers",
				zap.String("identifier", id),
				zap.Error(err))
			return
		}
	}

	if err := c.consumer.Commit(ctx, msgs); err != nil {
		c.logger.Error("Failed to commit batch offsets", zap.Error(err))
	}
}

func transportID(m kafka.Message) string {
	return fmt.Sprintf("%d-%d", m.Partition, m.Offset)
}
