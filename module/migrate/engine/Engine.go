package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Option func(*Engine)

// WithFailFast stops handing out jobs after the first job error. Jobs already
// running see a cancelled context.
func WithFailFast(failFast bool) Option {
	return func(e *Engine) {
		e.failFast = failFast
	}
}

// Engine runs jobs on a bounded pool of workers. Jobs are handed out in slice
// order, so a single worker runs them strictly sequentially.
type Engine struct {
	concurrency int
	failFast    bool
	jobs        []Job
}

type indexedJob struct {
	index int
	job   Job
}

func NewEngine(concurrency int, jobs []Job, opts ...Option) *Engine {
	e := &Engine{
		concurrency: concurrency,
		jobs:        jobs,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Execute(parent context.Context) error {
	mainLogger := log.With().
		Int("concurrency", e.concurrency).
		Int("total_jobs", len(e.jobs)).
		Logger()

	if len(e.jobs) == 0 {
		mainLogger.Info().Msg("No jobs to execute")
		return nil
	}

	// Create a trace ID for the entire migration operation
	traceID := uuid.New().String()
	ctx, cancel := context.WithCancel(WithTraceID(parent, traceID))
	defer cancel()

	mainLogger = mainLogger.With().Str("trace_id", traceID).Logger()
	mainLogger.Info().Msg("Starting engine execution")

	if e.concurrency <= 0 {
		e.concurrency = runtime.NumCPU()
		mainLogger.Debug().Int("adjusted_concurrency", e.concurrency).Msg("Adjusted concurrency")
	}

	work := make(chan indexedJob)
	errCh := make(chan error, len(e.jobs))
	var wg sync.WaitGroup

	for w := 0; w < e.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range work {
				if ctx.Err() != nil {
					continue
				}
				if err := e.run(ctx, mainLogger, item); err != nil {
					errCh <- err
					if e.failFast {
						cancel()
					}
				}
			}
		}()
	}

dispatch:
	for i, jb := range e.jobs {
		select {
		case work <- indexedJob{index: i, job: jb}:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(work)
	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	if err := parent.Err(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		mainLogger.Warn().Int("failed_jobs", len(errs)).Msg("Engine execution finished with errors")
	} else {
		mainLogger.Info().Msg("Engine execution finished")
	}
	return errors.Join(errs...)
}

func (e *Engine) run(ctx context.Context, mainLogger zerolog.Logger, item indexedJob) error {
	info := item.job.Info()
	jobLogger := mainLogger.With().
		Int("job_index", item.index).
		Str("job_info", info).
		Logger()

	jobLogger.Debug().Msg("Starting job execution")
	jobStartTime := time.Now()

	var jobErr error
	step := func(name string, fn func(context.Context) error) bool {
		stepLogger := jobLogger.With().Str("step", name).Logger()
		stepLogger.Debug().Msg("Starting step")
		stepStartTime := time.Now()

		if err := fn(ctx); err != nil {
			stepLogger.Warn().
				Err(err).
				Dur("duration", time.Since(stepStartTime)).
				Msgf("%s: %s-step failed: %v", info, name, err)

			jobErr = fmt.Errorf("job %d|%s: %s-step: %w", item.index, info, name, err)
			return false
		}
		stepLogger.Debug().
			Dur("duration", time.Since(stepStartTime)).
			Msg("Step completed successfully")
		return true
	}

	if !step("pre", item.job.Pre) || !step("migrate", item.job.Migrate) || !step("post", item.job.Post) {
		jobLogger.Warn().
			Dur("duration", time.Since(jobStartTime)).
			Msg("Job execution terminated with errors")
		return jobErr
	}

	jobLogger.Debug().
		Dur("duration", time.Since(jobStartTime)).
		Msg("Job completed successfully")
	return nil
}
