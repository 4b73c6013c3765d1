package batch

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/crewlog/crewlog/catalog"
)

// Creator sends validated entries to the log sink one at a time. There is
// no transaction spanning the batch: a failure on one entry never stops
// the next, and nothing is rolled back.
type Creator struct {
	sink    catalog.Sink
	limiter *rate.Limiter
	log     *zap.SugaredLogger
}

// Failure records one entry the sink rejected
type Failure struct {
	Entry Entry
	Err   error
}

// Report is the outcome of one batch submission
type Report struct {
	ID       string
	Created  []Entry
	Failures []Failure
}

// NewCreator creates a Creator. createsPerSecond paces the create loop;
// zero disables pacing.
func NewCreator(sink catalog.Sink, createsPerSecond float64, log *zap.SugaredLogger) *Creator {
	var limiter *rate.Limiter
	if createsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(createsPerSecond), 1)
	}
	return &Creator{sink: sink, limiter: limiter, log: log}
}

// CreateAll submits each entry sequentially, at most once per entry,
// collecting per-entry failures into the report.
func (c *Creator) CreateAll(ctx context.Context, entries []Entry) *Report {
	report := &Report{ID: uuid.NewString()}

	for _, entry := range entries {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				report.Failures = append(report.Failures, Failure{Entry: entry, Err: err})
				continue
			}
		}

		if err := c.sink.CreateLog(ctx, entry.ToRecord()); err != nil {
			if c.log != nil {
				c.log.Warnw("log creation failed",
					"report_id", report.ID,
					"line", entry.LineNumber,
					"squad", entry.SquadName,
					"error", err)
			}
			report.Failures = append(report.Failures, Failure{Entry: entry, Err: err})
			continue
		}
		report.Created = append(report.Created, entry)
	}

	if c.log != nil {
		c.log.Infow("batch submission finished",
			"report_id", report.ID,
			"created", len(report.Created),
			"failed", len(report.Failures))
	}
	return report
}
