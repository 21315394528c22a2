package repomanager

import (
	"context"
	"database/sql"

	"github.com/mbenali/campushub/internal/dbx"
	"github.com/mbenali/campushub/internal/server/repositories/clubs"
	"github.com/mbenali/campushub/internal/server/repositories/refreshtokens"
	"github.com/mbenali/campushub/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// the same repository code against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Clubs(db dbx.DBTX) clubs.Repository
}
