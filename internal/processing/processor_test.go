package processing

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/walletlabs/zscore/internal/core/domain"
	"github.com/walletlabs/zscore/internal/scoring"
)

var testTime = time.Unix(1_700_000_000, 0)

func testProcessor() *Processor {
	clock := func() time.Time { return testTime }
	model := scoring.NewModel(scoring.WithClock(clock))
	return NewProcessor(model, slog.Default(), WithProcessorClock(clock))
}

func validAddress() string {
	return "0x" + strings.Repeat("a", 40)
}

func TestProcessValidWallet(t *testing.T) {
	p := testProcessor()

	payload, _ := json.Marshal(domain.WalletTransactionInput{
		WalletAddress: validAddress(),
		Data: []domain.ProtocolData{{
			ProtocolType: "dexes",
			Transactions: []domain.Transaction{
				{Action: domain.ActionSwap, Timestamp: testTime.Unix() - 60, PoolID: "p", TokenIn: &domain.TokenInfo{AmountUSD: 1000}},
				{Action: domain.ActionDeposit, Timestamp: testTime.Unix() - 120, PoolID: "p", Token0: &domain.TokenInfo{AmountUSD: 500}, Token1: &domain.TokenInfo{AmountUSD: 500}},
			},
		}},
	})

	outcome := p.Process(payload)

	if !outcome.OK() {
		t.Fatalf("expected success, got failure: %+v", outcome.Failure)
	}
	if outcome.Class != ErrClassNone {
		t.Errorf("class = %v, want none", outcome.Class)
	}
	if outcome.Success.WalletAddress != validAddress() {
		t.Errorf("wallet = %q", outcome.Success.WalletAddress)
	}
	if len(outcome.Success.Categories) != 1 {
		t.Fatalf("categories = %d, want 1", len(outcome.Success.Categories))
	}

	// zscore: fixed-point decimal string, 18 fractional digits.
	matched, err := regexp.MatchString(`^\d+\.\d{18}$`, outcome.Success.ZScore)
	if err != nil || !matched {
		t.Errorf("zscore %q does not match 18-fractional-digit decimal", outcome.Success.ZScore)
	}
}

func TestProcessInvalidJSON(t *testing.T) {
	p := testProcessor()

	outcome := p.Process([]byte("{not json"))

	if outcome.OK() {
		t.Fatal("expected failure outcome")
	}
	if outcome.Class != ErrClassValidation {
		t.Errorf("class = %v, want validation", outcome.Class)
	}
	if outcome.Failure.WalletAddress != "unknown" {
		t.Errorf("wallet = %q, want unknown", outcome.Failure.WalletAddress)
	}
	if outcome.Failure.Categories == nil {
		t.Error("categories must be an empty list, not nil")
	}
}

func TestProcessInvalidAddress(t *testing.T) {
	p := testProcessor()

	payload := []byte(`{"wallet_address": "invalid_address", "data": []}`)
	outcome := p.Process(payload)

	if outcome.OK() {
		t.Fatal("expected failure outcome for invalid address")
	}
	if outcome.Class != ErrClassValidation {
		t.Errorf("class = %v, want validation", outcome.Class)
	}
	if outcome.Failure.WalletAddress != "invalid_address" {
		t.Errorf("wallet = %q, want invalid_address", outcome.Failure.WalletAddress)
	}
	if !strings.Contains(outcome.Failure.Error, "validation error") {
		t.Errorf("error = %q, want validation error prefix", outcome.Failure.Error)
	}
}

func TestProcessInvalidActionBuildsErrorCategories(t *testing.T) {
	p := testProcessor()

	payload, _ := json.Marshal(map[string]any{
		"wallet_address": validAddress(),
		"data": []map[string]any{
			{
				"protocolType": "dexes",
				"transactions": []map[string]any{
					{"action": "stake", "timestamp": 1, "poolId": "p"},
					{"action": "swap", "timestamp": 2, "poolId": "p"},
				},
			},
			{
				"protocolType": "lending",
				"transactions": []map[string]any{},
			},
		},
	})

	outcome := p.Process(payload)

	if outcome.OK() {
		t.Fatal("expected failure outcome for invalid action")
	}
	if len(outcome.Failure.Categories) != 2 {
		t.Fatalf("categories = %d, want 2", len(outcome.Failure.Categories))
	}
	if got := outcome.Failure.Categories[0]; got.Category != "dexes" || got.TransactionCount != 2 {
		t.Errorf("first category = %+v, want dexes with 2 transactions", got)
	}
	if got := outcome.Failure.Categories[1]; got.Category != "lending" || got.TransactionCount != 0 {
		t.Errorf("second category = %+v, want lending with 0 transactions", got)
	}
}

func TestProcessEmptyDataScoresZero(t *testing.T) {
	p := testProcessor()

	payload := []byte(`{"wallet_address": "` + validAddress() + `", "data": []}`)
	outcome := p.Process(payload)

	if !outcome.OK() {
		t.Fatalf("expected success, got %+v", outcome.Failure)
	}
	if outcome.Success.ZScore != "0.000000000000000000" {
		t.Errorf("zscore = %q, want zero", outcome.Success.ZScore)
	}
	if len(outcome.Success.Categories) != 0 {
		t.Errorf("categories = %d, want 0", len(outcome.Success.Categories))
	}
}

func TestScoreDirectRejectsInvalidInput(t *testing.T) {
	p := testProcessor()

	_, err := p.ScoreDirect(&domain.WalletTransactionInput{WalletAddress: "bad"})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestScoreDirectScoresBasicBucket(t *testing.T) {
	p := testProcessor()

	record, err := p.ScoreDirect(&domain.WalletTransactionInput{
		WalletAddress: validAddress(),
		Data: []domain.ProtocolData{{
			ProtocolType: "lending",
			Transactions: []domain.Transaction{
				{Action: domain.ActionDeposit, PoolID: "a"},
				{Action: domain.ActionDeposit, PoolID: "b"},
				{Action: domain.ActionWithdraw, PoolID: "a"},
			},
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Basic fallback: min(10*3 + 5*2, 500) = 40.
	if record.Categories[0].Score != 40 {
		t.Errorf("score = %v, want 40", record.Categories[0].Score)
	}
}
