package scoring

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/walletlabs/zscore/internal/core/domain"
)

func fixedClock(ts int64) Option {
	return WithClock(func() time.Time { return time.Unix(ts, 0) })
}

func TestScoreWalletEmpty(t *testing.T) {
	m := NewModel()

	categories, overall := m.ScoreWallet(nil)

	if overall != 0.0 {
		t.Errorf("overall = %v, want 0.0", overall)
	}
	if len(categories) != 0 {
		t.Errorf("categories = %d, want 0", len(categories))
	}
}

func TestScoreWalletDexBucket(t *testing.T) {
	now := int64(1_700_000_000)
	m := NewModel(fixedClock(now))

	data := []domain.ProtocolData{{
		ProtocolType: "dexes",
		Transactions: []domain.Transaction{
			{Action: domain.ActionSwap, Timestamp: now - 60, PoolID: "pool-a", TokenIn: usd(1000), TokenOut: usd(1000)},
			{Action: domain.ActionDeposit, Timestamp: now - 120, PoolID: "pool-a", Token0: usd(500), Token1: usd(500)},
		},
	}}

	categories, overall := m.ScoreWallet(data)

	if len(categories) != 1 {
		t.Fatalf("categories = %d, want 1", len(categories))
	}
	cs := categories[0]
	if cs.Category != "dexes" {
		t.Errorf("category = %q, want dexes", cs.Category)
	}
	if cs.TransactionCount != 2 {
		t.Errorf("transaction count = %d, want 2", cs.TransactionCount)
	}

	f := cs.Features
	if f.NumSwaps != 1 || f.NumDeposits != 1 {
		t.Errorf("counts = swaps %d deposits %d, want 1/1", f.NumSwaps, f.NumDeposits)
	}
	if f.TotalSwapVolume != 1000 || f.TotalDepositUSD != 1000 || f.UniquePools != 1 {
		t.Errorf("volumes = swap %v deposit %v pools %d, want 1000/1000/1", f.TotalSwapVolume, f.TotalDepositUSD, f.UniquePools)
	}

	// LP: volume 150 + frequency 50 + diversity 25 + full retention 100 = 325.
	// Swap: volume 150 + frequency 50 + size 100 + diversity 25 = 325.
	// Combined 325, then the logistic curve and 2-decimal rounding.
	combined := 325.0
	want := math.Round(1000/(1+math.Exp(-(combined-500)/200))*100) / 100
	if cs.Score != want {
		t.Errorf("score = %v, want %v", cs.Score, want)
	}
	if overall != cs.Score {
		t.Errorf("overall = %v, want %v", overall, cs.Score)
	}
	if cs.Score < 0 || cs.Score > 1000 {
		t.Errorf("score %v out of [0,1000]", cs.Score)
	}
}

func TestScoreWalletBasicFallback(t *testing.T) {
	m := NewModel()

	data := []domain.ProtocolData{{
		ProtocolType: "lending",
		Transactions: []domain.Transaction{
			{Action: domain.ActionDeposit, PoolID: "a"},
			{Action: domain.ActionWithdraw, PoolID: "a"},
			{Action: domain.ActionDeposit, PoolID: "b"},
		},
	}}

	categories, overall := m.ScoreWallet(data)

	if len(categories) != 1 {
		t.Fatalf("categories = %d, want 1", len(categories))
	}
	cs := categories[0]
	if cs.Category != "lending" {
		t.Errorf("category = %q, want lending", cs.Category)
	}
	// 10*3 + 5*2 = 40.
	if cs.Score != 40 {
		t.Errorf("score = %v, want 40", cs.Score)
	}
	// Non-DEX weight is 0.5: 40*0.5/0.5 = 40.
	if overall != 40 {
		t.Errorf("overall = %v, want 40", overall)
	}
}

func TestScoreWalletBasicFallbackCapped(t *testing.T) {
	m := NewModel()

	txs := make([]domain.Transaction, 100)
	for i := range txs {
		txs[i] = domain.Transaction{Action: domain.ActionSwap, PoolID: "p"}
	}
	categories, _ := m.ScoreWallet([]domain.ProtocolData{{ProtocolType: "perps", Transactions: txs}})

	if categories[0].Score != 500 {
		t.Errorf("score = %v, want capped 500", categories[0].Score)
	}
}

func TestScoreWalletMixedBucketsWeighting(t *testing.T) {
	now := int64(1_700_000_000)
	m := NewModel(fixedClock(now))

	data := []domain.ProtocolData{
		{ProtocolType: "DEXES", Transactions: []domain.Transaction{
			{Action: domain.ActionSwap, Timestamp: now - 60, PoolID: "p", TokenIn: usd(50)},
		}},
		{ProtocolType: "lending", Transactions: []domain.Transaction{
			{Action: domain.ActionDeposit, PoolID: "q"},
		}},
	}

	categories, overall := m.ScoreWallet(data)

	if len(categories) != 2 {
		t.Fatalf("categories = %d, want 2", len(categories))
	}
	want := (categories[0].Score*1.0 + categories[1].Score*0.5) / 1.5
	if math.Abs(overall-want) > 1e-9 {
		t.Errorf("overall = %v, want weighted %v", overall, want)
	}
}

func TestScoreWalletDeterministic(t *testing.T) {
	now := int64(1_700_000_000)
	data := []domain.ProtocolData{{
		ProtocolType: "dexes",
		Transactions: []domain.Transaction{
			{Action: domain.ActionSwap, Timestamp: now - 500, PoolID: "p1", TokenIn: usd(12345)},
			{Action: domain.ActionDeposit, Timestamp: now - 86400*30, PoolID: "p2", Token0: usd(700), Token1: usd(300)},
		},
	}}

	first, firstOverall := NewModel(fixedClock(now)).ScoreWallet(data)
	for i := 0; i < 10; i++ {
		got, overall := NewModel(fixedClock(now)).ScoreWallet(data)
		if overall != firstOverall {
			t.Fatalf("overall differs across runs: %v vs %v", overall, firstOverall)
		}
		if got[0].Score != first[0].Score {
			t.Fatalf("category score differs across runs: %v vs %v", got[0].Score, first[0].Score)
		}
	}
}

func TestLPScoreMonotonicInDepositVolume(t *testing.T) {
	m := NewModel()

	volumes := []float64{50, 100, 1_000, 10_000, 100_000, 1_000_000}
	prev := -1.0
	for _, v := range volumes {
		f := domain.CategoryFeatures{
			TotalDepositUSD: v,
			NumDeposits:     3,
			UniquePools:     2,
			AvgHoldTimeDays: 10,
		}
		score := m.lpScore(f)
		if score < prev {
			t.Errorf("lpScore decreased at volume %v: %v < %v", v, score, prev)
		}
		prev = score
	}
}

func TestScoresStayInRange(t *testing.T) {
	now := int64(1_700_000_000)
	m := NewModel(fixedClock(now))

	// A whale wallet whose raw additive score far exceeds 1000.
	txs := make([]domain.Transaction, 0, 120)
	for i := 0; i < 60; i++ {
		txs = append(txs, domain.Transaction{
			Action: domain.ActionDeposit, Timestamp: now - 86400*400, PoolID: strings.Repeat("p", i%7+1),
			Token0: usd(50_000), Token1: usd(50_000),
		})
		txs = append(txs, domain.Transaction{
			Action: domain.ActionSwap, Timestamp: now - int64(i)*3600, PoolID: "q",
			TokenIn: usd(100_000),
		})
	}

	categories, overall := m.ScoreWallet([]domain.ProtocolData{{ProtocolType: "dexes", Transactions: txs}})

	if s := categories[0].Score; s < 0 || s > 1000 {
		t.Errorf("category score %v out of [0,1000]", s)
	}
	if overall < 0 || overall > 1000 {
		t.Errorf("overall score %v out of [0,1000]", overall)
	}
}
