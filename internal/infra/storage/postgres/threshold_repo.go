package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/walletlabs/zscore/internal/core/domain"
)

// ThresholdRepo implements storage.ThresholdRepository using PostgreSQL.
type ThresholdRepo struct {
	db *DB
}

// NewThresholdRepo creates a new PostgreSQL threshold repository.
func NewThresholdRepo(db *DB) *ThresholdRepo {
	return &ThresholdRepo{db: db}
}

// Get retrieves the threshold tables for a protocol type.
func (r *ThresholdRepo) Get(ctx context.Context, protocolType string) (*domain.ProtocolThresholds, error) {
	var t domain.ProtocolThresholds
	err := r.db.GetContext(ctx, &t,
		`SELECT protocol_type, thresholds, percentiles, updated_at
		 FROM protocol_thresholds WHERE protocol_type = $1`,
		protocolType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get protocol thresholds: %w", err)
	}
	return &t, nil
}

// Upsert inserts or updates a protocol's threshold tables.
func (r *ThresholdRepo) Upsert(ctx context.Context, thresholds *domain.ProtocolThresholds) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO protocol_thresholds (protocol_type, thresholds, percentiles, updated_at)
		VALUES (:protocol_type, :thresholds, :percentiles, now())
		ON CONFLICT (protocol_type) DO UPDATE SET
			thresholds = EXCLUDED.thresholds,
			percentiles = EXCLUDED.percentiles,
			updated_at = now()`,
		thresholds)
	if err != nil {
		return fmt.Errorf("failed to upsert protocol thresholds: %w", err)
	}
	return nil
}

// List retrieves all protocol threshold records.
func (r *ThresholdRepo) List(ctx context.Context) ([]*domain.ProtocolThresholds, error) {
	var out []*domain.ProtocolThresholds
	err := r.db.SelectContext(ctx, &out,
		`SELECT protocol_type, thresholds, percentiles, updated_at
		 FROM protocol_thresholds ORDER BY protocol_type`)
	if err != nil {
		return nil, fmt.Errorf("failed to list protocol thresholds: %w", err)
	}
	return out, nil
}
