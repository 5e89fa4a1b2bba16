package rules

import (
	"github.com/google/uuid"
	"github.com/lithictech/go-assay/check"
)

const (
	ValueNotUUID   = "valueNotUuid"
	ValueNotString = "valueNotString"
)

var UUIDTemplates = check.Templates{
	ValueNotUUID:   "Invalid UUID format",
	ValueNotString: "Invalid type given; string expected",
}

type UUIDOptions struct {
	// Versions, if set, restricts the allowed UUID versions.
	Versions []int             `option:"versions"`
	Messages map[string]string `option:"messages"`
}

// UUID accepts only the canonical 36 character hyphenated form.
type UUID struct {
	versions  []int
	templates check.Templates
}

func NewUUID(opts UUIDOptions) (*UUID, error) {
	t, err := UUIDTemplates.With(opts.Messages)
	if err != nil {
		return nil, err
	}
	return &UUID{versions: opts.Versions, templates: t}, nil
}

func (v *UUID) Validate(value interface{}, _ check.Context) check.Outcome {
	s, ok := value.(string)
	if !ok {
		return v.templates.Fail(ValueNotString)
	}
	fail := v.templates.Fail(ValueNotUUID).WithVariable("value", s)
	// uuid.Parse also accepts urn and braced forms.
	if len(s) != 36 {
		return fail
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return fail
	}
	if len(v.versions) == 0 {
		return check.Valid()
	}
	for _, ver := range v.versions {
		if int(u.Version()) == ver {
			return check.Valid()
		}
	}
	return fail
}
