// Package records checks whether a value exists in a database table.
package records

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/lithictech/go-assay/check"
	"github.com/lithictech/go-assay/logctx"
	"github.com/lithictech/go-assay/sqlw"
	"github.com/pkg/errors"
)

const (
	NoRecordFound      = "noRecordFound"
	RecordFound        = "recordFound"
	RecordLookupFailed = "recordLookupFailed"
)

var Templates = check.Templates{
	NoRecordFound:      "No record matching the input was found",
	RecordFound:        "A record matching the input was found",
	RecordLookupFailed: "The record lookup could not be completed",
}

// DefaultTimeout bounds a lookup made through Validate.
const DefaultTimeout = 5 * time.Second

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Exclude leaves out rows where Field equals Value,
// usually the row being edited.
type Exclude struct {
	Field string      `option:"field"`
	Value interface{} `option:"value"`
}

type Options struct {
	DB sqlw.Interface
	// Table may be schema qualified, like "public.users".
	Table   string
	Field   string
	Exclude *Exclude
	// Timeout defaults to DefaultTimeout.
	Timeout time.Duration
	// Logger receives lookup failures from Validate.
	Logger   *slog.Logger
	Messages map[string]string
}

// Validator fails when a record does (NoRecordExists)
// or does not (RecordExists) match the value.
type Validator struct {
	db        sqlw.Interface
	query     string
	exclude   *Exclude
	timeout   time.Duration
	logger    *slog.Logger
	wantFound bool
	templates check.Templates
}

// NewRecordExists returns a validator that requires a matching record.
func NewRecordExists(opts Options) (*Validator, error) {
	return newValidator(opts, true)
}

// NewNoRecordExists returns a validator that requires no matching record.
func NewNoRecordExists(opts Options) (*Validator, error) {
	return newValidator(opts, false)
}

func newValidator(opts Options, wantFound bool) (*Validator, error) {
	if opts.DB == nil {
		return nil, errors.Wrap(check.ErrInvalidArgument, "db is required")
	}
	if err := checkIdentifier("table", opts.Table); err != nil {
		return nil, err
	}
	if err := checkIdentifier("field", opts.Field); err != nil {
		return nil, err
	}
	q := fmt.Sprintf("SELECT 1 FROM %s WHERE %s = ?", opts.Table, opts.Field)
	if opts.Exclude != nil {
		if err := checkIdentifier("exclude field", opts.Exclude.Field); err != nil {
			return nil, err
		}
		q += fmt.Sprintf(" AND %s != ?", opts.Exclude.Field)
	}
	q += " LIMIT 1"
	t, err := Templates.With(opts.Messages)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logctx.UnconfiguredLogger()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Validator{
		db:        opts.DB,
		query:     opts.DB.DBX().Rebind(q),
		exclude:   opts.Exclude,
		timeout:   timeout,
		logger:    logger,
		wantFound: wantFound,
		templates: t,
	}, nil
}

func checkIdentifier(what, s string) error {
	if !identifier.MatchString(s) {
		return errors.Wrapf(check.ErrInvalidArgument, "%s %q is not a valid identifier", what, s)
	}
	return nil
}

// Query is the statement run for each lookup.
func (v *Validator) Query() string {
	return v.query
}

// ValidateContext looks up value and returns the lookup error, if any,
// alongside a recordLookupFailed outcome.
func (v *Validator) ValidateContext(ctx context.Context, value interface{}, _ check.Context) (check.Outcome, error) {
	args := []interface{}{value}
	if v.exclude != nil {
		args = append(args, v.exclude.Value)
	}
	found, err := v.lookup(ctx, args)
	if err != nil {
		return v.templates.Fail(RecordLookupFailed), err
	}
	if found == v.wantFound {
		return check.Valid(), nil
	}
	key := NoRecordFound
	if found {
		key = RecordFound
	}
	return v.templates.Fail(key).WithVariable("value", check.ValueString(value)), nil
}

func (v *Validator) lookup(ctx context.Context, args []interface{}) (bool, error) {
	rows, err := v.db.QueryxContext(ctx, v.query, args...)
	if err != nil {
		return false, errors.Wrap(err, "record lookup")
	}
	defer rows.Close()
	found := rows.Next()
	if err := rows.Err(); err != nil {
		return false, errors.Wrap(err, "record lookup")
	}
	return found, nil
}

// Validate runs ValidateContext with the validator's timeout,
// logging any lookup error.
func (v *Validator) Validate(value interface{}, vctx check.Context) check.Outcome {
	ctx, cancel := context.WithTimeout(logctx.WithLogger(context.Background(), v.logger), v.timeout)
	defer cancel()
	o, err := v.ValidateContext(ctx, value, vctx)
	if err != nil {
		logctx.Logger(ctx).ErrorContext(ctx, "record_lookup_failed", "error", err, "sql_statement", v.query)
	}
	return o
}

var _ check.Validator = &Validator{}
