// Package storage defines the metadata store contracts. The scoring path
// never blocks on these lookups; they serve external collaborators only.
package storage

import (
	"context"

	"github.com/walletlabs/zscore/internal/core/domain"
)

// TokenRepository looks up and maintains token metadata by contract address.
// Lookups return (nil, nil) when the record does not exist.
type TokenRepository interface {
	Get(ctx context.Context, address string) (*domain.TokenMetadata, error)
	Upsert(ctx context.Context, token *domain.TokenMetadata) error
	List(ctx context.Context) ([]*domain.TokenMetadata, error)
}

// ThresholdRepository looks up and maintains per-protocol threshold and
// percentile tables. Lookups return (nil, nil) when the record does not
// exist.
type ThresholdRepository interface {
	Get(ctx context.Context, protocolType string) (*domain.ProtocolThresholds, error)
	Upsert(ctx context.Context, thresholds *domain.ProtocolThresholds) error
	List(ctx context.Context) ([]*domain.ProtocolThresholds, error)
}
