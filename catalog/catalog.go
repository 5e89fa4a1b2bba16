// Package catalog builds a check.Registry of every named validator,
// so validators can be described in configuration as check.Spec values.
package catalog

import (
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/lithictech/go-assay/barcode"
	"github.com/lithictech/go-assay/check"
	"github.com/lithictech/go-assay/compose"
	"github.com/lithictech/go-assay/pwned"
	"github.com/lithictech/go-assay/records"
	"github.com/lithictech/go-assay/rules"
	"github.com/lithictech/go-assay/sqlw"
	"github.com/pkg/errors"
)

// Validator names.
const (
	Barcode             = "barcode"
	NotEmpty            = "notempty"
	StringLength        = "stringlength"
	Regex               = "regex"
	Digits              = "digits"
	UUID                = "uuid"
	Explode             = "explode"
	Chain               = "chain"
	Conditional         = "conditional"
	RecordExists        = "recordexists"
	NoRecordExists      = "norecordexists"
	UndisclosedPassword = "undisclosedpassword"
)

type Options struct {
	// Symbologies resolves barcode symbology names. Defaults to barcode.Default().
	Symbologies *barcode.Registry
	// DB enables the record validators.
	DB sqlw.Interface
	// HTTPClient enables the breached password validator.
	HTTPClient *http.Client
	// PasswordAPI overrides pwned.DefaultBaseURL.
	PasswordAPI string
	// Rules are named predicates for conditional validators,
	// in addition to "always" and "never".
	Rules map[string]compose.Rule
	// Logger is given to validators that do I/O.
	Logger *slog.Logger
}

type catalog struct {
	opts  Options
	rules map[string]compose.Rule
}

// New returns a registry holding every validator Options allows.
func New(opts Options) *check.Registry {
	c := &catalog{opts: opts, rules: map[string]compose.Rule{
		"always": compose.Always,
		"never":  compose.Never,
	}}
	for name, rule := range opts.Rules {
		c.rules[strings.ToLower(name)] = rule
	}
	r := check.NewRegistry().
		Register(Barcode, c.barcode).
		Register(NotEmpty, notEmpty).
		Register(StringLength, stringLength).
		Register(Regex, regex).
		Register(Digits, digits).
		Register(UUID, uuidFactory).
		Register(Explode, explode).
		Register(Chain, chain).
		Register(Conditional, c.conditional)
	if opts.DB != nil {
		r.Register(RecordExists, c.records(records.NewRecordExists))
		r.Register(NoRecordExists, c.records(records.NewNoRecordExists))
	}
	if opts.HTTPClient != nil {
		r.Register(UndisclosedPassword, c.password)
	}
	return r
}

// RuleNames returns the names a conditional validator can refer to.
func RuleNames(opts Options) []string {
	names := []string{"always", "never"}
	for name := range opts.Rules {
		names = append(names, strings.ToLower(name))
	}
	sort.Strings(names)
	return names
}

func (c *catalog) barcode(_ check.Resolver, options map[string]interface{}) (check.Validator, error) {
	var o struct {
		Symbology string            `option:"symbology"`
		Checksum  *bool             `option:"checksum"`
		Messages  map[string]string `option:"messages"`
	}
	if err := check.DecodeOptions(options, &o); err != nil {
		return nil, err
	}
	return barcode.New(barcode.Options{
		Symbology: o.Symbology,
		Registry:  c.opts.Symbologies,
		Checksum:  barcode.ChecksumModeOf(o.Checksum),
		Messages:  o.Messages,
	})
}

func notEmpty(_ check.Resolver, options map[string]interface{}) (check.Validator, error) {
	var o rules.NotEmptyOptions
	if err := check.DecodeOptions(options, &o); err != nil {
		return nil, err
	}
	return rules.NewNotEmpty(o)
}

func stringLength(_ check.Resolver, options map[string]interface{}) (check.Validator, error) {
	var o rules.StringLengthOptions
	if err := check.DecodeOptions(options, &o); err != nil {
		return nil, err
	}
	return rules.NewStringLength(o)
}

func regex(_ check.Resolver, options map[string]interface{}) (check.Validator, error) {
	var o rules.RegexOptions
	if err := check.DecodeOptions(options, &o); err != nil {
		return nil, err
	}
	return rules.NewRegex(o)
}

func digits(_ check.Resolver, options map[string]interface{}) (check.Validator, error) {
	var o rules.DigitsOptions
	if err := check.DecodeOptions(options, &o); err != nil {
		return nil, err
	}
	return rules.NewDigits(o)
}

func uuidFactory(_ check.Resolver, options map[string]interface{}) (check.Validator, error) {
	var o rules.UUIDOptions
	if err := check.DecodeOptions(options, &o); err != nil {
		return nil, err
	}
	return rules.NewUUID(o)
}

func explode(r check.Resolver, options map[string]interface{}) (check.Validator, error) {
	var o struct {
		Validator           *check.Spec       `option:"validator"`
		ValueDelimiter      string            `option:"value_delimiter"`
		BreakOnFirstFailure bool              `option:"break_on_first_failure"`
		Messages            map[string]string `option:"messages"`
	}
	if err := check.DecodeOptions(options, &o); err != nil {
		return nil, err
	}
	if o.Validator == nil {
		return nil, errors.Wrap(check.ErrMissingValidator, "explode requires a validator")
	}
	inner, err := r.Resolve(*o.Validator)
	if err != nil {
		return nil, errors.Wrap(err, "validator")
	}
	return compose.NewExplode(compose.ExplodeOptions{
		Validator:           inner,
		ValueDelimiter:      o.ValueDelimiter,
		BreakOnFirstFailure: o.BreakOnFirstFailure,
		Messages:            o.Messages,
	})
}

func chain(r check.Resolver, options map[string]interface{}) (check.Validator, error) {
	var o struct {
		Validators []check.Spec `option:"validators"`
	}
	if err := check.DecodeOptions(options, &o); err != nil {
		return nil, err
	}
	return compose.BuildChain(r, o.Validators)
}

func (c *catalog) conditional(r check.Resolver, options map[string]interface{}) (check.Validator, error) {
	var o struct {
		Rule       string       `option:"rule"`
		Validators []check.Spec `option:"validators"`
	}
	if err := check.DecodeOptions(options, &o); err != nil {
		return nil, err
	}
	var rule compose.Rule
	if o.Rule != "" {
		var ok bool
		if rule, ok = c.rules[strings.ToLower(o.Rule)]; !ok {
			return nil, errors.Wrapf(check.ErrInvalidArgument, "unknown rule %q", o.Rule)
		}
	}
	validators, err := compose.BuildChain(r, o.Validators)
	if err != nil {
		return nil, err
	}
	return compose.NewConditional(compose.ConditionalOptions{Rule: rule, Validators: validators})
}

func (c *catalog) records(build func(records.Options) (*records.Validator, error)) check.Factory {
	return func(_ check.Resolver, options map[string]interface{}) (check.Validator, error) {
		var o struct {
			Table    string            `option:"table"`
			Field    string            `option:"field"`
			Exclude  *records.Exclude  `option:"exclude"`
			Timeout  time.Duration     `option:"timeout"`
			Messages map[string]string `option:"messages"`
		}
		if err := check.DecodeOptions(options, &o); err != nil {
			return nil, err
		}
		return build(records.Options{
			DB:       c.opts.DB,
			Table:    o.Table,
			Field:    o.Field,
			Exclude:  o.Exclude,
			Timeout:  o.Timeout,
			Logger:   c.opts.Logger,
			Messages: o.Messages,
		})
	}
}

func (c *catalog) password(_ check.Resolver, options map[string]interface{}) (check.Validator, error) {
	var o struct {
		Retries  *int              `option:"retries"`
		Messages map[string]string `option:"messages"`
	}
	if err := check.DecodeOptions(options, &o); err != nil {
		return nil, err
	}
	return pwned.New(pwned.Options{
		Client:   c.opts.HTTPClient,
		BaseURL:  c.opts.PasswordAPI,
		Retries:  o.Retries,
		Logger:   c.opts.Logger,
		Messages: o.Messages,
	})
}
