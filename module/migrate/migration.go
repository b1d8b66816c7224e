package migrate

import (
	"context"
	"fmt"
	"sort"

	"github.com/harness/nexus-migrate/module/migrate/adapter"
	"github.com/harness/nexus-migrate/module/migrate/adapter/nexus2"
	"github.com/harness/nexus-migrate/module/migrate/adapter/nexus3"
	"github.com/harness/nexus-migrate/module/migrate/crawler"
	"github.com/harness/nexus-migrate/module/migrate/engine"
	"github.com/harness/nexus-migrate/module/migrate/format"
	"github.com/harness/nexus-migrate/module/migrate/migratable"
	"github.com/harness/nexus-migrate/module/migrate/types"
	"github.com/harness/nexus-migrate/module/migrate/util"
	"github.com/harness/nexus-migrate/util/common/errors"
	"github.com/harness/nexus-migrate/util/common/fileutil"

	"github.com/rs/zerolog/log"
)

// Option customises a MigrationService.
type Option func(*MigrationService)

// WithSource replaces the Nexus 2 source adapter.
func WithSource(src adapter.Source) Option {
	return func(m *MigrationService) {
		m.source = src
	}
}

// WithDestination replaces the Nexus 3 destination adapter.
func WithDestination(dest adapter.Destination) Option {
	return func(m *MigrationService) {
		m.destination = dest
	}
}

// WithCrawlerOptions passes options to the crawler of the default source.
func WithCrawlerOptions(opts ...crawler.Option) Option {
	return func(m *MigrationService) {
		m.crawlerOpts = append(m.crawlerOpts, opts...)
	}
}

// WithOnCandidates registers fn to be called once the crawl is done, with the
// number of artifacts about to be migrated.
func WithOnCandidates(fn func(count int)) Option {
	return func(m *MigrationService) {
		m.onCandidates = fn
	}
}

// MigrationService handles the migration process
type MigrationService struct {
	config       *types.Config
	format       format.Format
	source       adapter.Source
	destination  adapter.Destination
	crawlerOpts  []crawler.Option
	onCandidates func(int)
}

// NewMigrationService creates a new migration service. cfg must already be
// completed, see types.Config.Complete.
func NewMigrationService(cfg *types.Config, opts ...Option) (*MigrationService, error) {
	m, err := NewDiscoveryService(cfg, opts...)
	if err != nil {
		return nil, err
	}

	if err := fileutil.EnsureWritableDir(cfg.Migration.TempDir); err != nil {
		return nil, fmt.Errorf("temporary directory unusable: %w", err)
	}

	if m.destination == nil {
		dest, err := nexus3.New(cfg.Dest)
		if err != nil {
			return nil, fmt.Errorf("failed to get destination adapter: %w", err)
		}
		m.destination = dest
	}
	return m, nil
}

// NewDiscoveryService creates a service that only reads the source repository.
// cfg must have passed types.Config.CompleteSource. Neither the destination nor
// the temporary directory is touched, so Run fails on the result unless a
// destination is passed with WithDestination.
func NewDiscoveryService(cfg *types.Config, opts ...Option) (*MigrationService, error) {
	f, err := format.Get(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to get format: %w", err)
	}

	m := &MigrationService{
		config: cfg,
		format: f,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.source == nil {
		m.source = nexus2.New(cfg.Source, m.crawlerOpts...)
	}
	return m, nil
}

// Discover crawls the source repository and returns every relative path below
// its root, sorted.
func (m *MigrationService) Discover(ctx context.Context) ([]string, error) {
	urls, err := m.source.Crawl(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "crawl failed")
	}
	return m.source.RelativePaths(urls), nil
}

// Filter keeps the paths accepted by the format and the configured
// include/exclude patterns.
func (m *MigrationService) Filter(paths []string) []string {
	var accepted []string
	for _, p := range paths {
		if m.format.Accept(p) {
			accepted = append(accepted, p)
		}
	}
	accepted = util.FilterPaths(accepted, m.config.Filters.Include, m.config.Filters.Exclude)
	sort.Strings(accepted)
	return accepted
}

// Candidates returns the sorted paths a sync would attempt.
func (m *MigrationService) Candidates(ctx context.Context) ([]string, error) {
	paths, err := m.Discover(ctx)
	if err != nil {
		return nil, err
	}
	return m.Filter(paths), nil
}

// Run executes the migration process. The report is returned even when the
// run is aborted, holding every outcome decided up to that point.
func (m *MigrationService) Run(ctx context.Context) (*types.RunReport, error) {
	logger := log.With().
		Str("format", string(m.config.Format)).
		Str("source", m.config.Source.RepositoryURL()).
		Str("destination", m.config.Dest.RepositoryURL()).
		Logger()

	logger.Info().Msg("Starting migration process")
	report := types.NewRunReport()
	if m.destination == nil {
		return report, fmt.Errorf("migration service has no destination adapter")
	}

	candidates, err := m.Candidates(ctx)
	if err != nil {
		return report, err
	}
	logger.Info().Int("candidates", len(candidates)).Msg("Collected migration candidates")
	if m.onCandidates != nil {
		m.onCandidates(len(candidates))
	}

	jobs := make([]engine.Job, 0, len(candidates))
	for _, p := range candidates {
		jobs = append(jobs, migratable.NewArtifactJob(m.source, m.destination, m.format, p, m.config, report))
	}

	eng := engine.NewEngine(m.config.Migration.Concurrency, jobs,
		engine.WithFailFast(m.config.Migration.FailureMode != types.FailureModeContinue))
	if err := eng.Execute(ctx); err != nil {
		logger.Debug().Err(err).Msg("Engine execution failed")
		return report, fmt.Errorf("migration aborted: %w", err)
	}

	logger.Info().
		Int("skipped", report.Skipped()).
		Int("uploaded", report.Uploaded()).
		Int("hacked", report.Hacked()).
		Int("failed", report.Failed()).
		Msg("Migration process completed")
	return report, nil
}
