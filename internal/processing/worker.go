package processing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/walletlabs/zscore/internal/core/domain"
	"github.com/walletlabs/zscore/internal/metrics"
)

// Publisher delivers outcome records to the output streams with broker
// acknowledgment.
type Publisher interface {
	PublishSuccess(ctx context.Context, record *domain.WalletScoreSuccess) error
	PublishFailure(ctx context.Context, record *domain.WalletScoreFailure) error
}

// Worker binds the processor, the publisher and the statistics into the
// per-message protocol of the stream loop. One worker serves one consumer;
// messages are handled strictly sequentially.
type Worker struct {
	processor *Processor
	publisher Publisher
	stats     *RunningStats
	log       *slog.Logger
}

// NewWorker wires the per-message handler.
func NewWorker(processor *Processor, publisher Publisher, stats *RunningStats, log *slog.Logger) *Worker {
	return &Worker{
		processor: processor,
		publisher: publisher,
		stats:     stats,
		log:       log,
	}
}

// Handle processes one consumed message: score, publish the resulting
// record, and update the running statistics regardless of the outcome.
//
// A publish failure is returned to the caller after being counted; the
// stream loop logs it and moves on to the next message rather than crashing.
func (w *Worker) Handle(ctx context.Context, payload []byte) error {
	outcome := w.processor.Process(payload)

	var publishErr error
	if outcome.OK() {
		publishErr = w.publisher.PublishSuccess(ctx, outcome.Success)
	} else {
		publishErr = w.publisher.PublishFailure(ctx, outcome.Failure)
	}

	success := outcome.OK() && publishErr == nil
	w.stats.Record(success, outcome.ProcessingTimeMs(), outcome.WalletAddress)

	metrics.ObserveWalletProcessed(success, outcome.Class.String(), outcome.ProcessingTimeMs())

	switch {
	case publishErr != nil:
		metrics.IncPublishError(outcome.OK())
		w.log.Error("Failed to publish record",
			"processing_id", outcome.ID,
			"wallet", outcome.WalletAddress,
			"error", publishErr)
		return fmt.Errorf("failed to publish record for %s: %w", outcome.WalletAddress, publishErr)
	case outcome.OK():
		w.log.Info("Wallet scored",
			"processing_id", outcome.ID,
			"wallet", outcome.WalletAddress,
			"zscore", outcome.Success.ZScore,
			"processing_time_ms", outcome.Success.ProcessingTimeMs)
	default:
		w.log.Warn("Wallet rejected",
			"processing_id", outcome.ID,
			"wallet", outcome.WalletAddress,
			"class", outcome.Class.String(),
			"error", outcome.Failure.Error)
	}
	return nil
}

// Stats exposes the running statistics for the read-only query surface.
func (w *Worker) Stats() *RunningStats {
	return w.stats
}
