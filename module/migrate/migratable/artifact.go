package migratable

import (
	"context"
	"fmt"
	"time"

	"github.com/harness/nexus-migrate/module/migrate/adapter"
	"github.com/harness/nexus-migrate/module/migrate/engine"
	"github.com/harness/nexus-migrate/module/migrate/format"
	"github.com/harness/nexus-migrate/module/migrate/types"
	"github.com/harness/nexus-migrate/module/migrate/util"
	"github.com/harness/nexus-migrate/util/common"
	"github.com/harness/nexus-migrate/util/common/errors"
	"github.com/harness/nexus-migrate/util/common/fileutil"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Artifact moves a single file from the source to the destination registry
// unless the destination already has it.
type Artifact struct {
	src             adapter.Source
	dest            adapter.Destination
	format          format.Format
	path            string
	failureMode     types.FailureMode
	tempDir         string
	knownExceptions []string
	report          *types.RunReport
	logger          zerolog.Logger
	stat            *types.FileStat
}

func NewArtifactJob(
	src adapter.Source,
	dest adapter.Destination,
	f format.Format,
	relativePath string,
	config *types.Config,
	report *types.RunReport,
) engine.Job {
	jobID := uuid.New().String()

	jobLogger := log.With().
		Str("job_type", "artifact").
		Str("job_id", jobID).
		Str("format", string(f.Type())).
		Str("path", relativePath).
		Logger()

	return &Artifact{
		src:             src,
		dest:            dest,
		format:          f,
		path:            relativePath,
		failureMode:     config.Migration.FailureMode,
		tempDir:         config.Migration.TempDir,
		knownExceptions: config.KnownExceptions,
		report:          report,
		logger:          jobLogger,
	}
}

func (r *Artifact) Info() string {
	return string(r.format.Type()) + ":" + r.path
}

func (r *Artifact) stepLogger(ctx context.Context, step string) zerolog.Logger {
	return r.logger.With().
		Str("step", step).
		Str("trace_id", engine.TraceID(ctx)).
		Logger()
}

func (r *Artifact) Pre(ctx context.Context) error {
	logger := r.stepLogger(ctx, "pre")
	startTime := time.Now()

	probe := r.format.ProbePath(r.path)
	exists, err := r.dest.Exists(ctx, probe)
	if err != nil {
		return r.fail(ctx, logger, fmt.Errorf("check existence of %s: %w", probe, err))
	}
	if exists {
		r.stat = &types.FileStat{Path: r.path, Status: types.StatusSkip}
	}

	logger.Debug().
		Str("probe", probe).
		Bool("exists", exists).
		Dur("duration", time.Since(startTime)).
		Msg("Completed artifact pre-migration step")
	return nil
}

func (r *Artifact) Migrate(ctx context.Context) error {
	if r.stat != nil {
		return nil
	}
	logger := r.stepLogger(ctx, "migrate")
	startTime := time.Now()

	localPath, size, err := r.src.Download(ctx, r.path, r.tempDir)
	if err != nil {
		return r.fail(ctx, logger, err)
	}
	defer func() {
		if err := fileutil.RemoveFile(localPath); err != nil {
			logger.Warn().Err(err).Str("file", localPath).Msg("Failed to remove temporary file")
		}
	}()

	err = r.dest.UploadArtifact(ctx, r.format, localPath, r.path)
	switch {
	case err == nil:
		r.stat = &types.FileStat{Path: r.path, Status: types.StatusUpload, Size: size}
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		r.stat = &types.FileStat{Path: r.path, Status: r.classify(err), Size: size, Error: err.Error()}
		logger.Warn().Err(err).Str("status", string(r.stat.Status)).Msg("Upload rejected")
	}

	logger.Debug().
		Str("size", common.GetSize(size)).
		Dur("duration", time.Since(startTime)).
		Msg("Completed artifact migration step")
	return nil
}

func (r *Artifact) Post(ctx context.Context) error {
	if r.stat == nil {
		return nil
	}
	r.report.Record(*r.stat)

	switch r.stat.Status {
	case types.StatusSkip:
		util.GetSkipPrinter().Println(fmt.Sprintf("%s already exists", r.path))
	case types.StatusUpload:
		pterm.Success.Println(fmt.Sprintf("%s (%s)", r.path, common.GetSize(r.stat.Size)))
	case types.StatusHacked:
		util.GetHackedPrinter().Println(fmt.Sprintf("%s was rejected but is a known exception", r.path))
	case types.StatusFail:
		pterm.Error.Println(fmt.Sprintf("%s: %s", r.path, r.stat.Error))
	}

	logger := r.stepLogger(ctx, "post")
	logger.Debug().Str("status", string(r.stat.Status)).Msg("Recorded outcome")
	return nil
}

// classify decides the outcome of a rejected upload. A path that can not be
// laid out as a component never counts as a known exception.
func (r *Artifact) classify(err error) types.Status {
	var invalid *errors.InvalidPathError
	if errors.As(err, &invalid) {
		return types.StatusFail
	}
	if util.MatchesAnyPattern(r.path, r.knownExceptions) {
		return types.StatusHacked
	}
	return types.StatusFail
}

// fail handles an error that prevents the artifact from being attempted at
// all. It aborts the run unless failures are configured to be recorded.
func (r *Artifact) fail(ctx context.Context, logger zerolog.Logger, err error) error {
	if ctx.Err() != nil || r.failureMode != types.FailureModeContinue {
		return err
	}
	logger.Warn().Err(err).Msg("Recording artifact as failed")
	r.stat = &types.FileStat{Path: r.path, Status: types.StatusFail, Error: err.Error()}
	return nil
}
