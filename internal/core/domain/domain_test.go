package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestActionValid(t *testing.T) {
	valid := []Action{ActionSwap, ActionDeposit, ActionWithdraw, ActionAddLiquidity, ActionRemoveLiquidity}
	for _, a := range valid {
		if !a.Valid() {
			t.Errorf("expected %q to be valid", a)
		}
	}

	invalid := []Action{"", "stake", "SWAP", "transfer"}
	for _, a := range invalid {
		if a.Valid() {
			t.Errorf("expected %q to be invalid", a)
		}
	}
}

func TestValidateWalletAddress(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{"valid", "0x" + strings.Repeat("a", 40), false},
		{"missing prefix", strings.Repeat("a", 42), true},
		{"too short", "0xabc", true},
		{"too long", "0x" + strings.Repeat("a", 41), true},
		{"empty", "", true},
		{"plain string", "invalid_address", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWalletAddress(tt.addr)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWalletAddress(%q) error = %v, wantErr %v", tt.addr, err, tt.wantErr)
			}
		})
	}
}

func TestWalletInputValidateRejectsBadAction(t *testing.T) {
	in := &WalletTransactionInput{
		WalletAddress: "0x" + strings.Repeat("1", 40),
		Data: []ProtocolData{{
			ProtocolType: "dexes",
			Transactions: []Transaction{{Action: "stake", Timestamp: 1}},
		}},
	}

	if err := in.Validate(); err == nil {
		t.Fatal("expected validation error for unknown action")
	}
}

func TestWalletInputIgnoresUnknownFields(t *testing.T) {
	payload := `{
		"wallet_address": "0x` + strings.Repeat("2", 40) + `",
		"data": [],
		"extra_field": true
	}`

	var in WalletTransactionInput
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if err := in.Validate(); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
}

func TestFormatZScore(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0, "0.000000000000000000"},
		{500.25, "500.250000000000000000"},
		{1000, "1000.000000000000000000"},
	}

	for _, tt := range tests {
		if got := FormatZScore(tt.score); got != tt.want {
			t.Errorf("FormatZScore(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}

	// 18 fractional digits, always.
	got := FormatZScore(123.456)
	dot := strings.Index(got, ".")
	if dot < 0 || len(got)-dot-1 != 18 {
		t.Errorf("FormatZScore(123.456) = %q, want 18 fractional digits", got)
	}
}
