// Package refreshtokens provides the PostgreSQL-backed refresh-token store.
package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mbenali/campushub/internal/common"
	"github.com/mbenali/campushub/internal/dbx"
	"github.com/mbenali/campushub/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert writes the user's single refresh-token row, last write wins.
// Two concurrent issuances for the same user race by design; the later
// write invalidates the earlier token.
func (r *PostgresRepository) Upsert(ctx context.Context, userID string, token string, validity time.Duration) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at
	`
	if _, err := r.db.ExecContext(ctx, query, userID, token, time.Now().Add(validity)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// FindByToken returns the row holding the given token value, or
// common.ErrorNotFound. Expiry is not checked here.
func (r *PostgresRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	query := `
		SELECT user_id, token, expires_at
		FROM refresh_tokens
		WHERE token = $1
	`
	refreshToken := &models.RefreshToken{}
	if err := r.db.QueryRowContext(ctx, query, token).Scan(&refreshToken.UserID, &refreshToken.Token, &refreshToken.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return refreshToken, nil
}
