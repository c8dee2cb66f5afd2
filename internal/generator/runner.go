package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/Rana718/sqlforge/internal/dataset"
	"github.com/Rana718/sqlforge/internal/metrics"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

type Delays struct {
	Empty   time.Duration // after a batch with no pairs
	Failure time.Duration // after a failed remote call
	Batch   time.Duration // after every processed batch
}

type RunnerOptions struct {
	Target      int
	Delays      Delays
	Metrics     *metrics.Recorder
	MetricsFile string
	Logger      zerolog.Logger
}

// Summary describes one call to Run.
type Summary struct {
	Resumed       int // lines found before the run started
	Total         int
	Written       int
	Batches       int
	EmptyBatches  int
	FailedBatches int
	Rejected      int
}

type Runner struct {
	batcher   Batcher
	validator PairValidator
	store     *dataset.Store
	opts      RunnerOptions
	sleep     func(ctx context.Context, d time.Duration) error
}

func NewRunner(batcher Batcher, validator PairValidator, store *dataset.Store, opts RunnerOptions) *Runner {
	return &Runner{
		batcher:   batcher,
		validator: validator,
		store:     store,
		opts:      opts,
		sleep:     sleepContext,
	}
}

// Run generates until the dataset holds at least Target records. There is
// no attempt limit; cancelling ctx is the only other way out.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	total, err := r.store.Count()
	if err != nil {
		return nil, err
	}

	summary := &Summary{Resumed: total, Total: total}
	if total > 0 {
		color.Cyan("🔄 Resuming... found %d existing examples.", total)
	}
	r.opts.Metrics.SetDatasetRecords(total)

	for summary.Total < r.opts.Target {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		color.Cyan("\n--- Generating batch (Current Total: %d/%d) ---", summary.Total, r.opts.Target)

		result := r.batcher.Generate(ctx)
		r.opts.Metrics.ObserveBatch(result.Outcome.String(), result.Took)

		switch result.Outcome {
		case BatchFailed:
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			summary.FailedBatches++
			color.Red("❌ Error generating batch: %v", result.Err)
			r.opts.Logger.Warn().Err(result.Err).Dur("took", result.Took).Msg("batch failed")
			if err := r.sleep(ctx, r.opts.Delays.Failure); err != nil {
				return summary, err
			}
			continue

		case BatchEmpty:
			summary.EmptyBatches++
			color.Yellow("⚠️  Model returned no pairs, retrying")
			if err := r.sleep(ctx, r.opts.Delays.Empty); err != nil {
				return summary, err
			}
			continue
		}

		report, err := r.validator.Validate(ctx, result.Pairs)
		if err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			summary.FailedBatches++
			color.Red("❌ Error validating batch: %v", err)
			r.opts.Logger.Warn().Err(err).Int("pairs", len(result.Pairs)).Msg("validation failed")
			if err := r.sleep(ctx, r.opts.Delays.Failure); err != nil {
				return summary, err
			}
			continue
		}

		written, err := r.store.Append(report.Accepted...)
		summary.Written += written
		summary.Total += written
		summary.Rejected += len(report.Rejected)
		summary.Batches++

		r.opts.Metrics.ObserveValidation(len(report.Accepted), len(report.Rejected))
		r.opts.Metrics.ObserveWritten(written, summary.Total)
		r.writeMetrics()

		if err != nil {
			return summary, fmt.Errorf("failed to append records: %w", err)
		}

		r.opts.Logger.Debug().
			Int("accepted", len(report.Accepted)).
			Int("rejected", len(report.Rejected)).
			Int("total", summary.Total).
			Msg("batch processed")

		if err := r.sleep(ctx, r.opts.Delays.Batch); err != nil {
			return summary, err
		}
	}

	r.writeMetrics()
	color.Green("\n🎉 DONE! Generated %d validated examples in %s", summary.Total, r.store.Path())
	return summary, nil
}

func (r *Runner) writeMetrics() {
	if err := r.opts.Metrics.WriteFile(r.opts.MetricsFile); err != nil {
		r.opts.Logger.Warn().Err(err).Msg("metrics not written")
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
