package repomanager

import (
	"context"
	"database/sql"

	"github.com/datamind-io/authcore/internal/dbx"
	"github.com/datamind-io/authcore/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
