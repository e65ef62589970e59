package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/walletlabs/zscore/internal/core/domain"
)

// TokenRepo implements storage.TokenRepository using PostgreSQL.
type TokenRepo struct {
	db *DB
}

// NewTokenRepo creates a new PostgreSQL token repository.
func NewTokenRepo(db *DB) *TokenRepo {
	return &TokenRepo{db: db}
}

// Get retrieves token metadata by contract address.
func (r *TokenRepo) Get(ctx context.Context, address string) (*domain.TokenMetadata, error) {
	var token domain.TokenMetadata
	err := r.db.GetContext(ctx, &token,
		`SELECT address, symbol, name, decimals, updated_at FROM tokens WHERE address = $1`,
		address)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	return &token, nil
}

// Upsert inserts or updates a token record.
func (r *TokenRepo) Upsert(ctx context.Context, token *domain.TokenMetadata) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO tokens (address, symbol, name, decimals, updated_at)
		VALUES (:address, :symbol, :name, :decimals, now())
		ON CONFLICT (address) DO UPDATE SET
			symbol = EXCLUDED.symbol,
			name = EXCLUDED.name,
			decimals = EXCLUDED.decimals,
			updated_at = now()`,
		token)
	if err != nil {
		return fmt.Errorf("failed to upsert token: %w", err)
	}
	return nil
}

// List retrieves all token records.
func (r *TokenRepo) List(ctx context.Context) ([]*domain.TokenMetadata, error) {
	var tokens []*domain.TokenMetadata
	err := r.db.SelectContext(ctx, &tokens,
		`SELECT address, symbol, name, decimals, updated_at FROM tokens ORDER BY address`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	return tokens, nil
}
