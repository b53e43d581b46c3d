// Package repomanager wires repository constructors to database handles and
// owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/avetrovs/userhub/internal/dbx"
	"github.com/avetrovs/userhub/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
