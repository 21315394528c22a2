package clubs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mbenali/campushub/internal/common"
	"github.com/mbenali/campushub/internal/dbx"
	"github.com/mbenali/campushub/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Find returns the club with the president reference expanded when the
// joined user row still exists, and left as a bare id otherwise. Both shapes
// reduce to the same key through models.UserRef.
func (r *PostgresRepository) Find(ctx context.Context, clubID string) (*models.Club, error) {
	query := `
		SELECT c.id, c.name, COALESCE(c.president_id::text, ''),
		       u.id, COALESCE(u.first_name, ''), COALESCE(u.last_name, ''), u.email
		FROM clubs c
		LEFT JOIN users u ON u.id = c.president_id
		WHERE c.id = $1
	`
	club := &models.Club{}
	var presidentID string
	var uID, uFirst, uLast, uEmail sql.NullString

	err := r.db.QueryRowContext(ctx, query, clubID).Scan(
		&club.ID, &club.Name, &presidentID,
		&uID, &uFirst, &uLast, &uEmail,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if uID.Valid {
		club.President = models.UserRef{User: &models.User{
			ID:        uID.String,
			FirstName: uFirst.String,
			LastName:  uLast.String,
			Email:     uEmail.String,
		}}
	} else {
		club.President = models.UserRef{ID: presidentID}
	}

	return club, nil
}
