package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lithictech/go-assay/check"
	"github.com/lithictech/go-assay/logctx"
	"github.com/lithictech/go-assay/parallel"
	"github.com/lithictech/go-assay/stopwatch"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type batchResult struct {
	Value   string        `json:"value"`
	Outcome check.Outcome `json:"outcome"`
}

// readValues returns args, or the non-blank lines of in if there are no args.
func readValues(args []string, in io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var values []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			values = append(values, line)
		}
	}
	return values, errors.Wrap(scanner.Err(), "reading values")
}

// runBatch validates every value, prints one result per line in input order,
// and returns ErrInvalidValues if any failed.
func (a *app) runBatch(cmd *cobra.Command, operation string, v check.Validator, vctx check.Context, values []string, asJSON bool) error {
	ctx := logctx.WithTracingLogger(logctx.WithTraceId(cmd.Context(), logctx.BatchTraceIdKey))
	sw := stopwatch.Start(
		a.batchLogger(cmd.ErrOrStderr()).WithField(string(logctx.BatchTraceIdKey), logctx.ActiveTraceIdValue(ctx)),
		operation,
	)
	outcomes, err := parallel.Map(ctx, values, a.cfg.Parallelism, func(_ context.Context, value string) (check.Outcome, error) {
		sw.Add(1)
		return v.Validate(value, vctx), nil
	})
	if err != nil {
		return err
	}
	invalid := 0
	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	for i, o := range outcomes {
		if !o.IsValid() {
			invalid++
		}
		if asJSON {
			if err := enc.Encode(batchResult{Value: values[i], Outcome: o}); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintln(out, formatResult(values[i], o)); err != nil {
			return err
		}
	}
	sw.FinishWith(stopwatch.FinishOpts{Fields: logrus.Fields{"invalid": invalid}})
	if invalid > 0 {
		return errors.Wrapf(ErrInvalidValues, "%d of %d", invalid, len(values))
	}
	return nil
}

func formatResult(value string, o check.Outcome) string {
	if o.IsValid() {
		return value + "\tvalid"
	}
	msgs := make([]string, 0, len(o.Keys()))
	for _, m := range o.Errors() {
		msgs = append(msgs, m.Key+": "+m.Message)
	}
	return value + "\tinvalid\t" + strings.Join(msgs, "; ")
}
