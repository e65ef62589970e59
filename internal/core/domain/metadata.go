package domain

import "time"

// TokenMetadata is a token record from the metadata store, keyed by
// contract address.
type TokenMetadata struct {
	Address   string    `json:"address"   db:"address"`
	Symbol    string    `json:"symbol"    db:"symbol"`
	Name      string    `json:"name"      db:"name"`
	Decimals  int       `json:"decimals"  db:"decimals"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ProtocolThresholds holds per-protocol threshold and percentile tables,
// keyed by protocol type. The scoring path does not consult these; they are
// served to external collaborators only.
type ProtocolThresholds struct {
	ProtocolType string    `json:"protocol_type" db:"protocol_type"`
	Thresholds   []byte    `json:"thresholds"    db:"thresholds"`
	Percentiles  []byte    `json:"percentiles"   db:"percentiles"`
	UpdatedAt    time.Time `json:"updated_at"    db:"updated_at"`
}
