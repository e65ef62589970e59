package processing

import (
	"sync"
	"time"
)

// RunningStats holds process-lifetime counters for the stream loop. Updates
// come from the single worker goroutine; reads may come from the HTTP
// surface at any time, so every read goes through a locked snapshot and can
// never observe a torn update.
type RunningStats struct {
	mu sync.RWMutex

	totalProcessed        int64
	successful            int64
	failed                int64
	totalProcessingTimeMs int64
	lastProcessedWallet   string
	startTime             time.Time

	now func() time.Time
}

// NewRunningStats creates stats anchored at the current time.
func NewRunningStats() *RunningStats {
	return newRunningStats(time.Now)
}

func newRunningStats(now func() time.Time) *RunningStats {
	return &RunningStats{startTime: now(), now: now}
}

// Record accounts for one processed message, successful or not.
func (s *RunningStats) Record(success bool, processingTimeMs int64, walletAddress string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalProcessed++
	s.totalProcessingTimeMs += processingTimeMs
	if success {
		s.successful++
	} else {
		s.failed++
	}
	s.lastProcessedWallet = walletAddress
}

// Snapshot is a consistent view of the running statistics.
type Snapshot struct {
	TotalWalletsProcessed   int64   `json:"total_wallets_processed"`
	SuccessfulWallets       int64   `json:"successful_wallets"`
	FailedWallets           int64   `json:"failed_wallets"`
	TotalProcessingTimeMs   int64   `json:"total_processing_time_ms"`
	AverageProcessingTimeMs float64 `json:"average_processing_time_ms"`
	LastProcessedWallet     string  `json:"last_processed_wallet,omitempty"`
	UptimeSeconds           int64   `json:"uptime_seconds"`
}

// Snapshot returns the current counters plus the derived average and uptime.
func (s *RunningStats) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		TotalWalletsProcessed: s.totalProcessed,
		SuccessfulWallets:     s.successful,
		FailedWallets:         s.failed,
		TotalProcessingTimeMs: s.totalProcessingTimeMs,
		LastProcessedWallet:   s.lastProcessedWallet,
		UptimeSeconds:         int64(s.now().Sub(s.startTime).Seconds()),
	}
	if s.totalProcessed > 0 {
		snap.AverageProcessingTimeMs = float64(s.totalProcessingTimeMs) / float64(s.totalProcessed)
	}
	return snap
}
