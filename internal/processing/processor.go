// Package processing drives the per-message pipeline: decode, validate,
// score, and account for each wallet record consumed from the input stream.
package processing

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/walletlabs/zscore/internal/core/domain"
	"github.com/walletlabs/zscore/internal/scoring"
)

const unknownWallet = "unknown"

// Processor turns one raw message payload into an explicit Outcome. It is
// purely in-process: no I/O happens here.
type Processor struct {
	model *scoring.Model
	log   *slog.Logger
	now   func() time.Time
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithProcessorClock overrides the time source (for tests).
func WithProcessorClock(now func() time.Time) ProcessorOption {
	return func(p *Processor) {
		if now != nil {
			p.now = now
		}
	}
}

// NewProcessor creates a message processor backed by the given model.
func NewProcessor(model *scoring.Model, log *slog.Logger, opts ...ProcessorOption) *Processor {
	p := &Processor{
		model: model,
		log:   log,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process handles one message payload end to end (excluding publication).
// It never returns an error: malformed input and scoring failures become
// failure outcomes so one bad record cannot halt the loop.
func (p *Processor) Process(payload []byte) *Outcome {
	start := p.now()
	id := uuid.NewString()

	var in domain.WalletTransactionInput
	if err := json.Unmarshal(payload, &in); err != nil {
		p.log.Warn("Failed to decode message", "processing_id", id, "error", err)
		return p.failure(id, unknownWallet, ErrClassValidation,
			fmt.Sprintf("validation error: invalid JSON payload: %v", err), nil, start)
	}

	wallet := in.WalletAddress
	if wallet == "" {
		wallet = unknownWallet
	}

	if err := in.Validate(); err != nil {
		p.log.Warn("Input validation failed", "processing_id", id, "wallet", wallet, "error", err)
		return p.failure(id, wallet, ErrClassValidation,
			fmt.Sprintf("validation error: %v", err), errorCategories(in.Data), start)
	}

	categories, overall, err := p.score(in.Data)
	if err != nil {
		p.log.Error("Scoring failed", "processing_id", id, "wallet", wallet, "error", err)
		return p.failure(id, wallet, ErrClassScoring,
			fmt.Sprintf("processing error: %v", err), errorCategories(in.Data), start)
	}

	elapsed := p.now().Sub(start).Milliseconds()
	return &Outcome{
		ID:            id,
		WalletAddress: wallet,
		Class:         ErrClassNone,
		Success: &domain.WalletScoreSuccess{
			WalletAddress:    wallet,
			ZScore:           domain.FormatZScore(overall),
			Timestamp:        p.now().Unix(),
			ProcessingTimeMs: elapsed,
			Categories:       categories,
		},
	}
}

// ScoreDirect validates and scores one input synchronously, bypassing the
// stream. Used by the debug HTTP endpoint; it does not touch statistics.
func (p *Processor) ScoreDirect(in *domain.WalletTransactionInput) (*domain.WalletScoreSuccess, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	categories, overall, err := p.score(in.Data)
	if err != nil {
		return nil, err
	}
	return &domain.WalletScoreSuccess{
		WalletAddress: in.WalletAddress,
		ZScore:        domain.FormatZScore(overall),
		Timestamp:     p.now().Unix(),
		Categories:    categories,
	}, nil
}

// score shields the loop from programming errors inside the engine: a panic
// during scoring is reported as a scoring failure for this message only.
func (p *Processor) score(data []domain.ProtocolData) (categories []domain.CategoryScore, overall float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scoring panic: %v", r)
		}
	}()
	categories, overall = p.model.ScoreWallet(data)
	return categories, overall, nil
}

func (p *Processor) failure(id, wallet string, class ErrorClass, msg string, categories []domain.CategoryError, start time.Time) *Outcome {
	if categories == nil {
		categories = []domain.CategoryError{}
	}
	return &Outcome{
		ID:            id,
		WalletAddress: wallet,
		Class:         class,
		Failure: &domain.WalletScoreFailure{
			WalletAddress:    wallet,
			Error:            msg,
			Timestamp:        p.now().Unix(),
			ProcessingTimeMs: p.now().Sub(start).Milliseconds(),
			Categories:       categories,
		},
	}
}

// errorCategories reconstructs per-bucket diagnostics for a failure record,
// best effort: scoring never ran, so only the category label and the
// transaction count are known.
func errorCategories(data []domain.ProtocolData) []domain.CategoryError {
	if len(data) == 0 {
		return nil
	}
	out := make([]domain.CategoryError, 0, len(data))
	for _, pd := range data {
		category := pd.ProtocolType
		if category == "" {
			category = "unknown"
		}
		out = append(out, domain.CategoryError{
			Category:         category,
			Error:            "failed to process",
			TransactionCount: len(pd.Transactions),
		})
	}
	return out
}
