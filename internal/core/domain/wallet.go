package domain

import (
	"fmt"
	"strings"
)

const walletAddressLength = 42

// ProtocolData groups the transactions of one wallet for one protocol family.
type ProtocolData struct {
	ProtocolType string        `json:"protocolType"`
	Transactions []Transaction `json:"transactions"`
}

// WalletTransactionInput is the sole input contract of the scoring pipeline.
type WalletTransactionInput struct {
	WalletAddress string         `json:"wallet_address"`
	Data          []ProtocolData `json:"data"`
}

// Validate checks the wallet address shape and every transaction's action.
func (w *WalletTransactionInput) Validate() error {
	if err := ValidateWalletAddress(w.WalletAddress); err != nil {
		return err
	}
	for _, pd := range w.Data {
		for i := range pd.Transactions {
			if err := pd.Transactions[i].Validate(); err != nil {
				return fmt.Errorf("protocol %q: %w", pd.ProtocolType, err)
			}
		}
	}
	return nil
}

// ValidateWalletAddress enforces the 0x-prefixed 42-character address shape.
func ValidateWalletAddress(addr string) error {
	if !strings.HasPrefix(addr, "0x") || len(addr) != walletAddressLength {
		return fmt.Errorf("invalid wallet address format: %q", addr)
	}
	return nil
}
