// Package compose builds validators out of other validators:
// priority-ordered chains, per-item validation of delimited strings,
// and chains gated behind a rule.
package compose
