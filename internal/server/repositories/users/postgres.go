package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mbenali/campushub/internal/common"
	"github.com/mbenali/campushub/internal/dbx"
	"github.com/mbenali/campushub/internal/server/models"
)

// pgUniqueViolation is the Postgres error code for unique constraint breaks.
const pgUniqueViolation = "23505"

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `
	id, COALESCE(identifier, ''), COALESCE(student_id, ''),
	COALESCE(first_name, ''), COALESCE(last_name, ''), email,
	COALESCE(age, 0), COALESCE(avatar, ''), COALESCE(class_group, ''),
	password_hash, role, COALESCE(president_of::text, ''), created_at
`

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var role string
	err := row.Scan(
		&user.ID, &user.Identifier, &user.StudentID,
		&user.FirstName, &user.LastName, &user.Email,
		&user.Age, &user.Avatar, &user.ClassGroup,
		&user.PasswordHash, &role, &user.PresidentOf, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.Role = models.Role(role)
	return user, nil
}

// loadClubs fills the user's club membership ids. Memberships are written by
// the club-management service; the identity core only reads them.
func (r *PostgresRepository) loadClubs(ctx context.Context, user *models.User) error {
	query := `
		SELECT club_id::text
		FROM club_members
		WHERE user_id = $1
		ORDER BY club_id
	`
	rows, err := r.db.QueryContext(ctx, query, user.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var clubID string
		if err := rows.Scan(&clubID); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		user.Clubs = append(user.Clubs, clubID)
	}
	return rows.Err()
}

// Create inserts a new user and returns it with the generated id. A unique
// violation on email or identifier maps to common.ErrorDuplicate.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (identifier, student_id, first_name, last_name, email,
		                   age, avatar, class_group, password_hash, role)
		VALUES (NULLIF($1, ''), NULLIF($2, ''), $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.Identifier, user.StudentID, user.FirstName, user.LastName, user.Email,
		user.Age, user.Avatar, user.ClassGroup, user.PasswordHash, string(user.Role),
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrorDuplicate
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// FindByID returns the user with the given id, memberships included.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadClubs(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// FindByAlias resolves identifier OR email OR student id, mirroring the
// login form where all three are accepted interchangeably.
func (r *PostgresRepository) FindByAlias(ctx context.Context, alias string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE identifier = $1 OR email = $1 OR student_id = $1
		LIMIT 1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, alias))
}

// FindByEmail returns the user owning the email.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// FindByIdentifier returns the user owning the login identifier.
func (r *PostgresRepository) FindByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE identifier = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, identifier))
}

// UpdatePassword replaces the stored hash. Updating an unknown user returns
// common.ErrorNotFound.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	query := `
		UPDATE users SET password_hash = $2
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}
