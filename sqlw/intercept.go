package sqlw

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Interceptor runs before each call. ctx is nil for calls without a context.
type Interceptor func(ctx context.Context, query string, args []interface{}) error

// WithInterceptor calls interceptor before each statement and returns its error
// instead of running the statement. Row methods cannot return an error,
// so they panic with it.
// Usually this is used to simulate database failures in tests.
func WithInterceptor(db Interface, interceptor Interceptor) Interface {
	return &interceptDB{intercept: interceptor, db: db}
}

type interceptDB struct {
	intercept Interceptor
	db        Interface
}

func (p *interceptDB) DBX() *sqlx.DB {
	return p.db.DBX()
}

func (p *interceptDB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	if err := p.intercept(ctx, query, args); err != nil {
		return nil, err
	}
	return p.db.ExecContext(ctx, query, args...)
}

func (p *interceptDB) Exec(query string, args ...interface{}) (sql.Result, error) {
	if err := p.intercept(nil, query, args); err != nil {
		return nil, err
	}
	return p.db.Exec(query, args...)
}

func (p *interceptDB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	if err := p.intercept(ctx, query, args); err != nil {
		return nil, err
	}
	return p.db.QueryContext(ctx, query, args...)
}

func (p *interceptDB) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	if err := p.intercept(ctx, query, args); err != nil {
		return nil, err
	}
	return p.db.QueryxContext(ctx, query, args...)
}

func (p *interceptDB) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	if err := p.intercept(ctx, query, args); err != nil {
		panic(err)
	}
	return p.db.QueryRowxContext(ctx, query, args...)
}

func (p *interceptDB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	if err := p.intercept(nil, query, args); err != nil {
		return nil, err
	}
	return p.db.Query(query, args...)
}

func (p *interceptDB) Queryx(query string, args ...interface{}) (*sqlx.Rows, error) {
	if err := p.intercept(nil, query, args); err != nil {
		return nil, err
	}
	return p.db.Queryx(query, args...)
}

func (p *interceptDB) QueryRowx(query string, args ...interface{}) *sqlx.Row {
	if err := p.intercept(nil, query, args); err != nil {
		panic(err)
	}
	return p.db.QueryRowx(query, args...)
}

var _ Interface = &interceptDB{}
