package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"

	"github.com/walletlabs/zscore/internal/core/domain"
)

func mockPublisher(t *testing.T) (*Publisher, *mocks.SyncProducer) {
	t.Helper()
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	return &Publisher{
		producer:     producer,
		successTopic: "wallet-scores-success",
		failureTopic: "wallet-scores-failure",
	}, producer
}

func TestPublishSuccess(t *testing.T) {
	p, producer := mockPublisher(t)
	defer producer.Close()

	record := &domain.WalletScoreSuccess{
		WalletAddress: "0xabc",
		ZScore:        "618.120000000000000000",
	}

	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(data []byte) error {
		var got domain.WalletScoreSuccess
		if err := json.Unmarshal(data, &got); err != nil {
			return err
		}
		if got.WalletAddress != record.WalletAddress || got.ZScore != record.ZScore {
			t.Errorf("published record = %+v, want %+v", got, record)
		}
		return nil
	})

	if err := p.PublishSuccess(context.Background(), record); err != nil {
		t.Fatalf("PublishSuccess: %v", err)
	}
}

// A session context dies on every rebalance and on shutdown; a message whose
// offset will be marked must still get its record out.
func TestPublishCompletesUnderCancelledContext(t *testing.T) {
	p, producer := mockPublisher(t)
	defer producer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	producer.ExpectSendMessageAndSucceed()
	if err := p.PublishSuccess(ctx, &domain.WalletScoreSuccess{WalletAddress: "0xabc"}); err != nil {
		t.Fatalf("PublishSuccess under cancelled context: %v", err)
	}

	producer.ExpectSendMessageAndSucceed()
	if err := p.PublishFailure(ctx, &domain.WalletScoreFailure{WalletAddress: "0xdef"}); err != nil {
		t.Fatalf("PublishFailure under cancelled context: %v", err)
	}
}

func TestPublishFailurePropagatesBrokerError(t *testing.T) {
	p, producer := mockPublisher(t)
	defer producer.Close()

	producer.ExpectSendMessageAndFail(sarama.ErrNotEnoughReplicas)
	if err := p.PublishSuccess(context.Background(), &domain.WalletScoreSuccess{WalletAddress: "0xabc"}); err == nil {
		t.Fatal("expected error when the broker does not confirm the send")
	}
}
