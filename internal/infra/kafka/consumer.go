package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/IBM/sarama"

	"github.com/walletlabs/zscore/internal/metrics"
)

// MessageHandler processes one consumed message payload. Returned errors
// are logged; they never stop the consume loop.
type MessageHandler func(ctx context.Context, payload []byte) error

// Consumer drives the input topic through a sarama consumer group. Messages
// within a partition claim are handed to the handler strictly sequentially,
// which preserves per-partition output ordering.
type Consumer struct {
	group sarama.ConsumerGroup
	topic string
	log   *slog.Logger
}

// NewConsumer joins the consumer group on the shared client.
func NewConsumer(client *Client, cfg Config, log *slog.Logger) (*Consumer, error) {
	group, err := sarama.NewConsumerGroupFromClient(cfg.ConsumerGroup, client.client)
	if err != nil {
		return nil, err
	}
	return &Consumer{group: group, topic: cfg.InputTopic, log: log}, nil
}

// Run consumes until ctx is cancelled. Sarama ends a Consume call on every
// rebalance, so the session is re-entered in a loop; a short pause avoids a
// tight spin when the brokers are unreachable.
func (c *Consumer) Run(ctx context.Context, handle MessageHandler) error {
	go c.drainErrors(ctx)

	h := &groupHandler{handle: handle, log: c.log}
	for {
		if err := c.group.Consume(ctx, []string{c.topic}, h); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			c.log.Error("Consumer session ended", "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(300 * time.Millisecond):
			}
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Close leaves the consumer group.
func (c *Consumer) Close() error {
	return c.group.Close()
}

func (c *Consumer) drainErrors(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-c.group.Errors():
			if !ok {
				return
			}
			metrics.ConsumerErrors.Inc()
			c.log.Error("Consumer group error", "error", err)
		}
	}
}

// groupHandler adapts MessageHandler to sarama's group session callbacks.
type groupHandler struct {
	handle MessageHandler
	log    *slog.Logger
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		// An in-flight message always runs to completion; cancellation is
		// only observed between messages.
		if err := h.handle(session.Context(), msg.Value); err != nil {
			h.log.Error("Message handling failed",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				"error", err)
		}
		// At-least-once: the message is not retried either way, the
		// outcome has already been accounted for.
		session.MarkMessage(msg, "")

		select {
		case <-session.Context().Done():
			return nil
		default:
		}
	}
	return nil
}
