package domain

import "strconv"

// CategoryFeatures are the numeric features extracted from one protocol
// bucket. Values default to zero when the underlying data is missing.
type CategoryFeatures struct {
	TotalDepositUSD          float64 `json:"total_deposit_usd"`
	TotalSwapVolume          float64 `json:"total_swap_volume"`
	NumDeposits              int     `json:"num_deposits"`
	NumSwaps                 int     `json:"num_swaps"`
	AvgHoldTimeDays          float64 `json:"avg_hold_time_days"`
	UniquePools              int     `json:"unique_pools"`
	TotalWithdrawUSD         float64 `json:"total_withdraw_usd"`
	NumWithdraws             int     `json:"num_withdraws"`
	AvgTransactionSizeUSD    float64 `json:"avg_transaction_size_usd"`
	TransactionFrequencyDays float64 `json:"transaction_frequency_days"`
	TransactionCount         int     `json:"transaction_count"`
}

// CategoryScore is the scoring result for one protocol bucket.
type CategoryScore struct {
	Category         string           `json:"category"`
	Score            float64          `json:"score"`
	TransactionCount int              `json:"transaction_count"`
	Features         CategoryFeatures `json:"features"`
}

// WalletScoreSuccess is published to the success topic for a scored wallet.
type WalletScoreSuccess struct {
	WalletAddress    string          `json:"wallet_address"`
	ZScore           string          `json:"zscore"`
	Timestamp        int64           `json:"timestamp"`
	ProcessingTimeMs int64           `json:"processing_time_ms"`
	Categories       []CategoryScore `json:"categories"`
}

// CategoryError describes why one protocol bucket could not be scored.
type CategoryError struct {
	Category         string `json:"category"`
	Error            string `json:"error"`
	TransactionCount int    `json:"transaction_count"`
}

// WalletScoreFailure is published to the failure topic when a wallet
// cannot be scored.
type WalletScoreFailure struct {
	WalletAddress    string          `json:"wallet_address"`
	Error            string          `json:"error"`
	Timestamp        int64           `json:"timestamp"`
	ProcessingTimeMs int64           `json:"processing_time_ms"`
	Categories       []CategoryError `json:"categories"`
}

// FormatZScore renders a wallet score as a fixed-point decimal string with
// 18 fractional digits. Downstream consumers parse this as an
// arbitrary-precision decimal, so scientific notation is never used.
func FormatZScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 18, 64)
}
