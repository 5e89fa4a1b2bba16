/*
Package stopwatch times batch operations.
Create a stopwatch with Start, count processed items with Add,
then record the timing with Finish.
*/
package stopwatch

import (
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

type Stopwatch struct {
	start     time.Time
	operation string
	logger    *logrus.Entry
	items     atomic.Int64
	now       func() time.Time
}

func Start(logger *logrus.Entry, operation string) *Stopwatch {
	return StartAt(logger, operation, time.Now)
}

// StartAt is Start with a custom clock.
func StartAt(logger *logrus.Entry, operation string, now func() time.Time) *Stopwatch {
	sw := &Stopwatch{
		start:     now(),
		operation: operation,
		logger:    logger,
		now:       now,
	}
	sw.logger.Debug(operation + "_started")
	return sw
}

// Add counts n processed items. It is safe for concurrent use.
func (sw *Stopwatch) Add(n int) {
	sw.items.Add(int64(n))
}

// Elapsed is the time since Start.
func (sw *Stopwatch) Elapsed() time.Duration {
	return sw.now().Sub(sw.start)
}

type FinishOpts struct {
	Logger *logrus.Entry
	Fields logrus.Fields
}

func (sw *Stopwatch) FinishWith(opts FinishOpts) {
	logger := sw.logger
	if opts.Logger != nil {
		logger = opts.Logger
	}
	elapsed := sw.Elapsed()
	logger = logger.WithFields(opts.Fields).WithField("elapsed", elapsed.Seconds())
	if items := sw.items.Load(); items > 0 {
		logger = logger.WithField("items", items)
		if elapsed > 0 {
			logger = logger.WithField("items_per_second", float64(items)/elapsed.Seconds())
		}
	}
	logger.Info(sw.operation + "_finished")
}

func (sw *Stopwatch) Finish() {
	sw.FinishWith(FinishOpts{})
}
