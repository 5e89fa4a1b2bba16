package compose

import (
	"github.com/hashicorp/go-multierror"
	"github.com/lithictech/go-assay/check"
	"github.com/pkg/errors"
)

// BuildChain resolves every spec and attaches it to a new chain.
// Every spec is tried, and all configuration errors are returned together.
func BuildChain(r check.Resolver, specs []check.Spec) (*Chain, error) {
	c := NewChain()
	var result error
	for i, spec := range specs {
		if err := c.AttachSpec(r, spec); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "validators[%d]", i))
		}
	}
	if result != nil {
		return nil, result
	}
	return c, nil
}
