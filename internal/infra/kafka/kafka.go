// Package kafka wraps the sarama client with the consumer-group and
// sync-producer plumbing used by the stream loop.
package kafka

import (
	"strings"

	"github.com/IBM/sarama"
)

// Config holds Kafka connection and topic configuration.
type Config struct {
	Brokers       string `yaml:"brokers"`        // comma-separated broker list
	ConsumerGroup string `yaml:"consumer_group"`
	InputTopic    string `yaml:"input_topic"`
	SuccessTopic  string `yaml:"success_topic"`
	FailureTopic  string `yaml:"failure_topic"`
}

// Client owns the shared sarama client the consumer and the producer are
// built from, so liveness can be derived from one set of connections.
type Client struct {
	client sarama.Client
}

// NewClient connects to the brokers. A connection failure here is fatal to
// startup by design.
func NewClient(cfg Config) (*Client, error) {
	sc := sarama.NewConfig()
	sc.Version = sarama.V2_1_0_0

	sc.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRange()}
	sc.Consumer.Offsets.Initial = sarama.OffsetOldest
	sc.Consumer.Return.Errors = true

	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Retry.Max = 3
	sc.Producer.Return.Successes = true
	sc.Producer.Return.Errors = true
	sc.Net.MaxOpenRequests = 1

	client, err := sarama.NewClient(splitCSV(cfg.Brokers), sc)
	if err != nil {
		return nil, err
	}
	return &Client{client: client}, nil
}

// Healthy reports whether the broker connections are currently usable.
func (c *Client) Healthy() bool {
	if c.client.Closed() {
		return false
	}
	for _, b := range c.client.Brokers() {
		if ok, _ := b.Connected(); ok {
			return true
		}
	}
	// No live broker connection, but metadata may still be refreshable.
	return c.client.RefreshMetadata() == nil
}

// Close releases the underlying connections.
func (c *Client) Close() error {
	if c.client.Closed() {
		return nil
	}
	return c.client.Close()
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, x := range parts {
		x = strings.TrimSpace(x)
		if x != "" {
			out = append(out, x)
		}
	}
	return out
}
