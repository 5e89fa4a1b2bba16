// Package sqlw wraps sqlx so database behavior (logging, interception)
// can be layered around a connection.
package sqlw

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// Interface is the subset of sqlx that validators and wrappers rely on.
type Interface interface {
	sqlx.Queryer
	sqlx.QueryerContext
	sqlx.Execer
	sqlx.ExecerContext
	DBX() *sqlx.DB
}

// Open connects with sqlx and wraps the connection.
func Open(driver, dsn string) (Interface, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s database", driver)
	}
	return Wrap(db), nil
}

// Wrap wraps a sqlx.DB so it can be composed.
func Wrap(db *sqlx.DB) Interface {
	return &sqlxDB{db: db}
}

type sqlxDB struct {
	db *sqlx.DB
}

func (s *sqlxDB) DBX() *sqlx.DB { return s.db }

func (s *sqlxDB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return s.db.Query(query, args...)
}

func (s *sqlxDB) Queryx(query string, args ...interface{}) (*sqlx.Rows, error) {
	return s.db.Queryx(query, args...)
}

func (s *sqlxDB) QueryRowx(query string, args ...interface{}) *sqlx.Row {
	return s.db.QueryRowx(query, args...)
}

func (s *sqlxDB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, query, args...)
}

func (s *sqlxDB) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	return s.db.QueryxContext(ctx, query, args...)
}

func (s *sqlxDB) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	return s.db.QueryRowxContext(ctx, query, args...)
}

func (s *sqlxDB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return s.db.Exec(query, args...)
}

func (s *sqlxDB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return s.db.ExecContext(ctx, query, args...)
}
