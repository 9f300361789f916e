package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// BatchConsumer fetches bounded batches of messages from a topic.
// Offsets are committed explicitly by the caller once a batch has been
// fully handled (failed envelopes requeued first).
type BatchConsumer struct {
	reader    *kafka.Reader
	batchSize int
	maxWait   time.Duration
	logger    *zap.Logger
}

func NewBatchConsumer(brokers []string, topic, groupID string, batchSize int, maxWait time.Duration, l *zap.Logger) *BatchConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
		Logger:   zap.NewStdLog(l.With(zap.String("kafka_component", "consumer"))),
	})

	l.Info("Kafka batch consumer started",
		zap.String("topic", topic),
		zap.String("group_id", groupID),
		zap.Strings("brokers", brokers),
		zap.Int("batch_size", batchSize))

	return &BatchConsumer{
		reader:    reader,
		batchSize: batchSize,
		maxWait:   maxWait,
		logger:    l,
	}
}

// FetchBatch blocks for the first message, then keeps collecting until
// the batch is full or maxWait elapses without a further message. An
// error is only returned when no message was fetched at all.
func (c *BatchConsumer) FetchBatch(ctx context.Context) ([]kafka.Message, error) {
	first, err := c.reader.FetchMessage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch message: %w", err)
	}
	msgs := []kafka.Message{first}

	for len(msgs) < c.batchSize {
		waitCtx, cancel := context.WithTimeout(ctx, c.maxWait)
		m, err := c.reader.FetchMessage(waitCtx)
		cancel()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				break
			}
			if errors.Is(err, context.Canceled) {
				break
			}
			c.logger.Error("Error fetching message mid-batch", zap.Error(err))
			break
		}
		msgs = append(msgs, m)
	}

	c.logger.Debug("Fetched batch", zap.Int("size", len(msgs)))
	return msgs, nil
}

func (c *BatchConsumer) Commit(ctx context.Context, msgs []kafka.Message) error {
	if err := c.reader.CommitMessages(ctx, msgs...); err != nil {
		c.logger.Error("Failed to commit batch offsets", zap.Int("size", len(msgs)), zap.Error(err))
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	c.logger.Debug("Committed batch offsets", zap.Int("size", len(msgs)))
	return nil
}

func (c *BatchConsumer) Close() error {
	if err := c.reader.Close(); err != nil {
		c.logger.Error("Failed to close Kafka consumer", zap.Error(err))
		return fmt.Errorf("failed to close Kafka consumer: %w", err)
	}
	c.logger.Info("Kafka consumer closed.")
	return nil
}
