package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/walletlabs/zscore/internal/core/domain"
)

// Publisher emits success and failure records through a sync producer.
// Every send waits for full broker acknowledgment (acks=all); transport
// retries are bounded by the producer config, after which the error
// propagates to the caller.
type Publisher struct {
	producer     sarama.SyncProducer
	successTopic string
	failureTopic string
}

// NewPublisher builds the producer on the shared client.
func NewPublisher(client *Client, cfg Config) (*Publisher, error) {
	producer, err := sarama.NewSyncProducerFromClient(client.client)
	if err != nil {
		return nil, err
	}
	return &Publisher{
		producer:     producer,
		successTopic: cfg.SuccessTopic,
		failureTopic: cfg.FailureTopic,
	}, nil
}

// PublishSuccess emits a scored-wallet record to the success topic.
func (p *Publisher) PublishSuccess(ctx context.Context, record *domain.WalletScoreSuccess) error {
	return p.send(ctx, p.successTopic, record.WalletAddress, record)
}

// PublishFailure emits a failure record to the failure topic.
func (p *Publisher) PublishFailure(ctx context.Context, record *domain.WalletScoreFailure) error {
	return p.send(ctx, p.failureTopic, record.WalletAddress, record)
}

// send always runs to completion even when ctx is already cancelled: the
// session context dies on every rebalance and shutdown, and a consumed
// message must not be dropped half-published once its offset will be
// marked. The send is bounded by the producer's own timeouts and retries.
func (p *Publisher) send(ctx context.Context, topic, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// Close flushes pending sends and releases the producer.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
