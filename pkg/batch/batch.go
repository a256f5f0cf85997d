// Package batch fans a set of sentences out across a bounded worker pool
// and parses each one independently, returning results in input order
// regardless of completion order. Uses golang.org/x/sync/errgroup rather
// than a hand-rolled channel pool: a batch of independent,
// uniformly-shaped parse jobs is exactly the bounded-fan-out-with-
// shared-cancellation case errgroup.WithContext exists for, and it needs
// none of the dynamic rescaling, work-stealing, or deadlock-detection
// machinery a long-lived generic goal-evaluation pool would carry.
package batch

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/nlpstack/ccgparse/pkg/astar"
	"github.com/nlpstack/ccgparse/pkg/chart"
	"github.com/nlpstack/ccgparse/pkg/constraint"
	"github.com/nlpstack/ccgparse/pkg/grammar"
	"github.com/nlpstack/ccgparse/pkg/metrics"
	"github.com/nlpstack/ccgparse/pkg/obslog"
	"github.com/nlpstack/ccgparse/pkg/scorer"
	"github.com/nlpstack/ccgparse/pkg/token"
)

// Job is one sentence submitted to a batch run.
type Job struct {
	Sentence    []token.Token
	Constraints *constraint.Set // may be nil
}

// Item is one job's outcome. Exactly one of Result/Err is non-nil, unless
// the parse succeeded with a genuine "no parse" empty Result, in which
// case Err is nil and Result.NBest is empty — NoParse is never an error.
type Item struct {
	Index  int
	Result *astar.Result
	Err    error

	// CorrelationID threads through obslog for this job's log lines.
	CorrelationID string
}

// Options configures a Run.
type Options struct {
	Workers   int // 0 means runtime.GOMAXPROCS(0)
	Log       *obslog.Logger
	Metrics   *metrics.Metrics
	StopOnErr bool // abort remaining jobs on the first non-per-sentence error
}

// Run parses every job in jobs against pack using scr for scoring,
// respecting cfg, and returns one Item per job in the same order as jobs.
// A job's own SentenceTooLong/BudgetExceeded/InvalidInput failure never
// aborts the rest of the batch; only a scorer error (when opts.StopOnErr
// is set) or a cancellation of ctx can. A job aborted before it started
// gets an Item whose Err is the context error.
func Run(ctx context.Context, pack *grammar.Pack, scr scorer.Scorer, cfg astar.Config, jobs []Job, opts Options) ([]Item, error) {
	if len(jobs) == 0 {
		return nil, nil
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log := opts.Log
	if log == nil {
		log = obslog.Nop()
	}

	items := make([]Item, len(jobs))
	sem := make(chan struct{}, workers)

	g, gctx := errgroup.WithContext(ctx)
	var errsMu sync.Mutex
	var errs *multierror.Error

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				items[i] = Item{Index: i, Err: gctx.Err()}
				return gctx.Err()
			}
			defer func() { <-sem }()

			if opts.Metrics != nil {
				opts.Metrics.ActiveWorkers.Inc()
				defer opts.Metrics.ActiveWorkers.Dec()
			}

			corrID := uuid.NewString()
			items[i] = parseOne(gctx, pack, scr, cfg, job, corrID, log, opts.Metrics)
			items[i].Index = i

			if items[i].Err != nil && !isPerSentenceError(items[i].Err) {
				errsMu.Lock()
				errs = multierror.Append(errs, items[i].Err)
				errsMu.Unlock()
				if opts.StopOnErr {
					return items[i].Err
				}
			}
			return nil
		})
	}

	waitErr := g.Wait()
	if waitErr != nil && !isPerSentenceError(waitErr) {
		errs = multierror.Append(errs, waitErr)
	}
	return items, errs.ErrorOrNil()
}

// isPerSentenceError reports whether err is a documented per-sentence
// failure a batch continues past, rather than a systemic scorer/context
// failure that should abort the run.
func isPerSentenceError(err error) bool {
	return errors.Is(err, astar.ErrSentenceTooLong) ||
		errors.Is(err, astar.ErrBudgetExceeded) ||
		errors.Is(err, astar.ErrInvalidInput) ||
		errors.Is(err, scorer.ErrInvalidInput)
}

func parseOne(ctx context.Context, pack *grammar.Pack, scr scorer.Scorer, cfg astar.Config, job Job, corrID string, log *obslog.Logger, m *metrics.Metrics) (item Item) {
	item.CorrelationID = corrID

	defer func() {
		if r := recover(); r != nil {
			iv, ok := r.(chart.InvariantViolation)
			if !ok {
				panic(r)
			}
			log.InvariantViolation(corrID, iv)
			item.Err = iv
		}
	}()

	words := token.Surfaces(job.Sentence)
	tensors, err := scr.Score(ctx, words)
	if err != nil {
		item.Err = err
		log.ParseFailed(corrID, len(job.Sentence), err)
		return item
	}

	start := time.Now()
	res, err := astar.Parse(pack, job.Sentence, tensors, cfg, job.Constraints)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		item.Err = err
		log.ParseFailed(corrID, len(job.Sentence), err)
		if m != nil {
			m.RecordParse(outcomeFor(err), elapsed, 0, 0)
		}
		return item
	}
	item.Result = res
	log.ParseCompleted(corrID, len(job.Sentence), res.PopCount, res.ChartLen, len(res.NBest))
	if m != nil {
		outcome := metrics.OutcomeOK
		if len(res.NBest) == 0 {
			outcome = metrics.OutcomeNoParse
		}
		m.RecordParse(outcome, elapsed, res.PopCount, res.ChartLen)
	}
	return item
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, astar.ErrSentenceTooLong):
		return metrics.OutcomeTooLong
	case errors.Is(err, astar.ErrBudgetExceeded):
		return metrics.OutcomeBudgetExceeded
	default:
		return metrics.OutcomeInvalid
	}
}
