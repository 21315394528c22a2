package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mbenali/campushub/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestUpsert_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+refresh_tokens.*ON\s+CONFLICT\s*\(user_id\)`).
		WithArgs("u-1", "tok-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Upsert(context.Background(), "u-1", "tok-1", 72*time.Hour); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestUpsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+refresh_tokens`).
		WillReturnError(errors.New("db down"))

	err := repo.Upsert(context.Background(), "u-1", "tok-1", time.Hour)
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestFindByToken_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	expires := time.Now().Add(time.Hour)
	rows := sqlmock.NewRows([]string{"user_id", "token", "expires_at"}).
		AddRow("u-1", "tok-1", expires)
	mock.ExpectQuery(`SELECT\s+user_id,\s*token,\s*expires_at\s+FROM\s+refresh_tokens`).
		WithArgs("tok-1").
		WillReturnRows(rows)

	got, err := repo.FindByToken(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("FindByToken error: %v", err)
	}
	if got.UserID != "u-1" || got.Token != "tok-1" || !got.ExpiresAt.Equal(expires) {
		t.Fatalf("unexpected token: %+v", got)
	}
}

func TestFindByToken_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+refresh_tokens`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByToken(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
