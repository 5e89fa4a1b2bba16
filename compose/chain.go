package compose

import (
	"math"
	"sort"

	"github.com/lithictech/go-assay/check"
)

type entry struct {
	validator      check.Validator
	breakOnFailure bool
	priority       int
	seq            int
}

// Chain runs validators in priority order and merges their failures
// into one flat set of messages.
//
// Higher priorities run first; entries with the same priority run
// in the order they were attached. A failing entry with breakOnFailure set
// stops the chain. An empty chain is always valid.
//
// Attach, Prepend and Merge must not be called concurrently with Validate.
type Chain struct {
	entries []entry
	nextSeq int
	// prepended entries take sequence numbers below zero
	prevSeq int
}

// NewChain returns a chain with validators attached at the default priority.
func NewChain(validators ...check.Validator) *Chain {
	c := &Chain{}
	for _, v := range validators {
		c.Add(v)
	}
	return c
}

// Attach adds v at the given priority.
func (c *Chain) Attach(v check.Validator, breakOnFailure bool, priority int) *Chain {
	c.insert(entry{validator: v, breakOnFailure: breakOnFailure, priority: priority, seq: c.nextSeq})
	c.nextSeq++
	return c
}

func (c *Chain) insert(e entry) {
	c.entries = append(c.entries, e)
	sort.SliceStable(c.entries, func(i, j int) bool {
		a, b := c.entries[i], c.entries[j]
		if a.priority != b.priority {
			return a.priority > b.priority
		}
		return a.seq < b.seq
	})
}

// Add attaches v at check.DefaultPriority without breaking on failure.
func (c *Chain) Add(v check.Validator) *Chain {
	return c.Attach(v, false, check.DefaultPriority)
}

// Prepend attaches v so it runs before every current entry.
// When the first entry already has math.MaxInt priority, v shares it
// and runs ahead of it.
func (c *Chain) Prepend(v check.Validator, breakOnFailure bool) *Chain {
	priority := check.DefaultPriority
	if len(c.entries) > 0 {
		priority = c.entries[0].priority
		if priority < math.MaxInt {
			priority++
		}
	}
	c.prevSeq--
	c.insert(entry{validator: v, breakOnFailure: breakOnFailure, priority: priority, seq: c.prevSeq})
	return c
}

// Merge attaches every entry of other, keeping each entry's priority
// and break flag. Entries of other run after entries of c with the same priority.
func (c *Chain) Merge(other *Chain) *Chain {
	if other == nil {
		return c
	}
	for _, e := range other.entries {
		c.Attach(e.validator, e.breakOnFailure, e.priority)
	}
	return c
}

// AttachSpec resolves spec and attaches the result using the spec's priority
// and break flag.
func (c *Chain) AttachSpec(r check.Resolver, spec check.Spec) error {
	v, err := r.Resolve(spec)
	if err != nil {
		return err
	}
	c.Attach(v, spec.BreakChainOnFailure, spec.PriorityOrDefault())
	return nil
}

// Len is the number of attached validators.
func (c *Chain) Len() int {
	return len(c.entries)
}

func (c *Chain) Validate(value interface{}, vctx check.Context) check.Outcome {
	result := check.Valid()
	for _, e := range c.entries {
		o := e.validator.Validate(value, vctx)
		if o.IsValid() {
			continue
		}
		result = result.Merge(o)
		if e.breakOnFailure {
			break
		}
	}
	return result
}

var _ check.Validator = &Chain{}
