package dbpkg

import (
	"context"
	"database/sql"
)

// SQLInterface provides necessary db methods to perform queries.
// It is satisfied by both *sql.DB and *sql.Tx.
type SQLInterface interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}
