package domain

import "fmt"

// Action is the kind of DEX operation a transaction performed.
type Action string

const (
	ActionSwap            Action = "swap"
	ActionDeposit         Action = "deposit"
	ActionWithdraw        Action = "withdraw"
	ActionAddLiquidity    Action = "add_liquidity"
	ActionRemoveLiquidity Action = "remove_liquidity"
)

// Valid reports whether the action is one of the enumerated values.
func (a Action) Valid() bool {
	switch a {
	case ActionSwap, ActionDeposit, ActionWithdraw, ActionAddLiquidity, ActionRemoveLiquidity:
		return true
	}
	return false
}

// IsDeposit reports whether the action adds liquidity to a pool.
func (a Action) IsDeposit() bool {
	return a == ActionDeposit || a == ActionAddLiquidity
}

// IsWithdraw reports whether the action removes liquidity from a pool.
func (a Action) IsWithdraw() bool {
	return a == ActionWithdraw || a == ActionRemoveLiquidity
}

// TokenInfo describes one side of a token transfer inside a transaction.
type TokenInfo struct {
	Amount    int64   `json:"amount"`
	AmountUSD float64 `json:"amountUSD"`
	Address   string  `json:"address"`
	Symbol    string  `json:"symbol"`
}

// Transaction is a single DEX interaction of a wallet.
//
// Swap transactions carry tokenIn/tokenOut; liquidity operations carry
// token0/token1. Absent token fields contribute zero volume.
type Transaction struct {
	DocumentID string     `json:"document_id"`
	Action     Action     `json:"action"`
	Timestamp  int64      `json:"timestamp"`
	Caller     string     `json:"caller"`
	Protocol   string     `json:"protocol"`
	PoolID     string     `json:"poolId"`
	PoolName   string     `json:"poolName"`
	TokenIn    *TokenInfo `json:"tokenIn,omitempty"`
	TokenOut   *TokenInfo `json:"tokenOut,omitempty"`
	Token0     *TokenInfo `json:"token0,omitempty"`
	Token1     *TokenInfo `json:"token1,omitempty"`
}

// Validate checks the transaction against its contract.
func (t *Transaction) Validate() error {
	if !t.Action.Valid() {
		return fmt.Errorf("invalid action: %q", t.Action)
	}
	return nil
}
