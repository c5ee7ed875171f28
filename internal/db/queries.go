package db

import (
	"database/sql"
	"errors"
)

// Querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Store functions take a Querier so callers decide the transaction
// boundary.
type Querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
	Prepare(query string) (*sql.Stmt, error)
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
