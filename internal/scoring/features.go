package scoring

import (
	"sort"
	"time"

	"github.com/walletlabs/zscore/internal/core/domain"
)

const secondsPerDay = 86400

// ExtractFeatures computes the feature set for one protocol bucket in a
// single linear pass. Transactions are sorted by timestamp first; only the
// time-span computation depends on ordering.
//
// Missing or malformed per-transaction data never aborts extraction: the
// affected feature keeps its zero default and the remaining features are
// still computed.
func ExtractFeatures(txs []domain.Transaction, now time.Time) domain.CategoryFeatures {
	var f domain.CategoryFeatures
	f.TransactionCount = len(txs)
	if len(txs) == 0 {
		return f
	}

	ordered := make([]domain.Transaction, len(txs))
	copy(ordered, txs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp < ordered[j].Timestamp
	})

	pools := make(map[string]struct{}, len(ordered))
	var holdDaysSum float64

	for i := range ordered {
		tx := &ordered[i]
		pools[tx.PoolID] = struct{}{}

		switch {
		case tx.Action.IsDeposit():
			f.NumDeposits++
			f.TotalDepositUSD += tokenUSD(tx.Token0) + tokenUSD(tx.Token1)
			holdDaysSum += heldDays(tx.Timestamp, now)
		case tx.Action.IsWithdraw():
			f.NumWithdraws++
			f.TotalWithdrawUSD += tokenUSD(tx.Token0) + tokenUSD(tx.Token1)
		case tx.Action == domain.ActionSwap:
			f.NumSwaps++
			f.TotalSwapVolume += tokenUSD(tx.TokenIn)
		}
	}

	f.UniquePools = len(pools)

	totalVolume := f.TotalDepositUSD + f.TotalSwapVolume + f.TotalWithdrawUSD
	f.AvgTransactionSizeUSD = totalVolume / float64(len(ordered))

	// Simplification carried over from the model's design: every deposit is
	// assumed still held as of now.
	if f.NumDeposits > 0 {
		f.AvgHoldTimeDays = holdDaysSum / float64(f.NumDeposits)
	}

	if len(ordered) > 1 {
		// Whole days between the first and the last transaction.
		spanDays := (ordered[len(ordered)-1].Timestamp - ordered[0].Timestamp) / secondsPerDay
		if spanDays > 0 {
			f.TransactionFrequencyDays = float64(spanDays) / float64(len(ordered))
		}
	}

	return f
}

func tokenUSD(t *domain.TokenInfo) float64 {
	if t == nil {
		return 0
	}
	return t.AmountUSD
}

// heldDays returns the whole days elapsed since the transaction.
func heldDays(ts int64, now time.Time) float64 {
	d := now.Unix() - ts
	if d < 0 {
		return 0
	}
	return float64(d / secondsPerDay)
}
