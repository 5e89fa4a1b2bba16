package rules

import (
	"regexp"

	"github.com/lithictech/go-assay/check"
	"github.com/pkg/errors"
)

const (
	RegexInvalid  = "regexInvalid"
	RegexNotMatch = "regexNotMatch"
)

var RegexTemplates = check.Templates{
	RegexInvalid:  "Invalid type given. String, integer or float expected",
	RegexNotMatch: "The input does not match against pattern '%pattern%'",
}

type RegexOptions struct {
	Pattern  string            `option:"pattern"`
	Messages map[string]string `option:"messages"`
}

// Regex checks strings and numbers against an RE2 pattern.
// Numbers are matched against their decimal form.
type Regex struct {
	re        *regexp.Regexp
	templates check.Templates
}

func NewRegex(opts RegexOptions) (*Regex, error) {
	if opts.Pattern == "" {
		return nil, errors.Wrap(check.ErrInvalidArgument, "pattern is required")
	}
	re, err := regexp.Compile(opts.Pattern)
	if err != nil {
		return nil, errors.Wrapf(check.ErrInvalidArgument, "bad pattern: %v", err)
	}
	t, err := RegexTemplates.With(opts.Messages)
	if err != nil {
		return nil, err
	}
	return &Regex{re: re, templates: t}, nil
}

func (v *Regex) Validate(value interface{}, _ check.Context) check.Outcome {
	s, ok := scalarString(value)
	if !ok {
		return v.templates.Fail(RegexInvalid)
	}
	if !v.re.MatchString(s) {
		return v.templates.Fail(RegexNotMatch).
			WithVariable("value", s).
			WithVariable("pattern", v.re.String())
	}
	return check.Valid()
}
