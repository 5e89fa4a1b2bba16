package sqlw

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lithictech/go-assay/logctx"
)

// WithLogging logs every statement at debug level.
// The logger in the call's context is preferred; fallback is used otherwise.
func WithLogging(db Interface, fallback *slog.Logger) Interface {
	if db == nil {
		panic("must provide db")
	}
	if fallback == nil {
		panic("must provide logger")
	}
	return &loggingDB{fallback: fallback, db: db}
}

type loggingDB struct {
	fallback *slog.Logger
	db       Interface
}

func (p *loggingDB) DBX() *sqlx.DB {
	return p.db.DBX()
}

func (p *loggingDB) log(ctx context.Context, cmd, q string, args []interface{}) {
	logger := p.fallback
	if ctx != nil {
		if l := logctx.LoggerOrNil(ctx); l != nil {
			logger = l
		}
	} else {
		ctx = context.Background()
	}
	logger.DebugContext(ctx, "sql_"+cmd, "sql_statement", q, "sql_args", args)
}

func (p *loggingDB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	p.log(ctx, "exec", query, args)
	return p.db.ExecContext(ctx, query, args...)
}

func (p *loggingDB) Exec(query string, args ...interface{}) (sql.Result, error) {
	p.log(nil, "exec", query, args)
	return p.db.Exec(query, args...)
}

func (p *loggingDB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	p.log(ctx, "query", query, args)
	return p.db.QueryContext(ctx, query, args...)
}

func (p *loggingDB) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	p.log(ctx, "queryx", query, args)
	return p.db.QueryxContext(ctx, query, args...)
}

func (p *loggingDB) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	p.log(ctx, "queryxrow", query, args)
	return p.db.QueryRowxContext(ctx, query, args...)
}

func (p *loggingDB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	p.log(nil, "query", query, args)
	return p.db.Query(query, args...)
}

func (p *loggingDB) Queryx(query string, args ...interface{}) (*sqlx.Rows, error) {
	p.log(nil, "queryx", query, args)
	return p.db.Queryx(query, args...)
}

func (p *loggingDB) QueryRowx(query string, args ...interface{}) *sqlx.Row {
	p.log(nil, "queryxrow", query, args)
	return p.db.QueryRowx(query, args...)
}

var _ Interface = &loggingDB{}
