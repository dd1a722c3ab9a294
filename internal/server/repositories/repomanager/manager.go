package repomanager

import (
	"context"
	"database/sql"

	"github.com/Fury174k/pharmstock/internal/dbx"
	"github.com/Fury174k/pharmstock/internal/server/repositories/alerts"
	"github.com/Fury174k/pharmstock/internal/server/repositories/movements"
	"github.com/Fury174k/pharmstock/internal/server/repositories/products"
	"github.com/Fury174k/pharmstock/internal/server/repositories/refreshtokens"
	"github.com/Fury174k/pharmstock/internal/server/repositories/sales"
	"github.com/Fury174k/pharmstock/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so a
// service can run several repositories inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Products(db dbx.DBTX) products.Repository
	Sales(db dbx.DBTX) sales.Repository
	Alerts(db dbx.DBTX) alerts.Repository
	Movements(db dbx.DBTX) movements.Repository
}
