// Package scoring implements the DEX reputation model: feature extraction
// from raw transactions and the weighted threshold rules that turn features
// into a bounded 0-1000 wallet score.
package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/walletlabs/zscore/internal/core/domain"
)

const (
	minScore = 0
	maxScore = 1000

	lpWeight   = 0.6
	swapWeight = 0.4

	// Non-DEX buckets contribute at half weight so that side activity can
	// nudge the overall score without dominating DEX behavior.
	dexCategoryWeight   = 1.0
	basicCategoryWeight = 0.5

	dexCategory = "dexes"
)

// Model computes wallet reputation scores. It holds no cross-call state
// beyond the fixed threshold tables, so one instance is safe to reuse for
// every message.
type Model struct {
	volume    VolumeThresholds
	frequency FrequencyThresholds
	holding   HoldingThresholds

	// now is injectable so hold-time features are deterministic in tests.
	now func() time.Time
}

// Option configures a Model.
type Option func(*Model)

// WithClock overrides the time source used for hold-time features.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// NewModel creates a scoring model with the fixed default thresholds.
func NewModel(opts ...Option) *Model {
	m := &Model{
		volume:    defaultVolumeThresholds,
		frequency: defaultFrequencyThresholds,
		holding:   defaultHoldingThresholds,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ScoreWallet scores every protocol bucket of a wallet and aggregates the
// weighted category scores into one overall score. A wallet with no buckets
// scores 0.0 with an empty category list.
func (m *Model) ScoreWallet(data []domain.ProtocolData) ([]domain.CategoryScore, float64) {
	categories := make([]domain.CategoryScore, 0, len(data))
	var totalScore, totalWeight float64

	for _, pd := range data {
		if strings.EqualFold(pd.ProtocolType, dexCategory) {
			cs := m.scoreDex(pd.Transactions)
			categories = append(categories, cs)
			totalScore += cs.Score * dexCategoryWeight
			totalWeight += dexCategoryWeight
			continue
		}

		cs := m.scoreBasic(pd)
		categories = append(categories, cs)
		totalScore += cs.Score * basicCategoryWeight
		totalWeight += basicCategoryWeight
	}

	if totalWeight == 0 {
		return categories, 0.0
	}
	return categories, totalScore / totalWeight
}

// scoreDex runs the full LP + swap model over one "dexes" bucket.
func (m *Model) scoreDex(txs []domain.Transaction) domain.CategoryScore {
	features := ExtractFeatures(txs, m.now())

	combined := m.lpScore(features)*lpWeight + m.swapScore(features)*swapWeight

	return domain.CategoryScore{
		Category:         dexCategory,
		Score:            round2(m.normalize(combined)),
		TransactionCount: len(txs),
		Features:         features,
	}
}

// lpScore rewards liquidity-provision behavior: deposit volume, deposit
// frequency, holding time, pool diversity and liquidity retention.
func (m *Model) lpScore(f domain.CategoryFeatures) float64 {
	score := volumeBonus(f.TotalDepositUSD, m.volume) +
		frequencyBonus(f.NumDeposits, m.frequency) +
		holdingBonus(f.AvgHoldTimeDays, m.holding) +
		diversityBonus(f.UniquePools)

	if f.TotalDepositUSD > f.TotalWithdrawUSD {
		retention := (f.TotalDepositUSD - f.TotalWithdrawUSD) / f.TotalDepositUSD
		score += retention * 100
	}

	return math.Min(score, maxScore)
}

// swapScore rewards trading behavior: swap volume, swap frequency,
// transaction-size consistency and pool diversity.
func (m *Model) swapScore(f domain.CategoryFeatures) float64 {
	score := volumeBonus(f.TotalSwapVolume, m.volume) +
		frequencyBonus(f.NumSwaps, m.frequency) +
		diversityBonus(f.UniquePools)

	switch {
	case f.AvgTransactionSizeUSD >= 1000:
		score += 100
	case f.AvgTransactionSizeUSD >= 100:
		score += 75
	case f.AvgTransactionSizeUSD >= 10:
		score += 50
	}

	return math.Min(score, maxScore)
}

// scoreBasic is the fallback for non-DEX protocol buckets.
func (m *Model) scoreBasic(pd domain.ProtocolData) domain.CategoryScore {
	pools := make(map[string]struct{}, len(pd.Transactions))
	for i := range pd.Transactions {
		pools[pd.Transactions[i].PoolID] = struct{}{}
	}

	features := domain.CategoryFeatures{
		TransactionCount: len(pd.Transactions),
		UniquePools:      len(pools),
	}

	score := math.Min(float64(features.TransactionCount*10+features.UniquePools*5), 500)

	return domain.CategoryScore{
		Category:         pd.ProtocolType,
		Score:            round2(score),
		TransactionCount: len(pd.Transactions),
		Features:         features,
	}
}

// normalize compresses raw additive scores into a smooth saturating 0-1000
// range with a logistic curve centered at 500.
func (m *Model) normalize(score float64) float64 {
	normalized := maxScore / (1 + math.Exp(-(score-500)/200))
	return math.Max(minScore, math.Min(maxScore, normalized))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
