package config

// GlobalFlags contains common flags used across commands
type GlobalFlags struct {
	ConfigPath string
	Verbose    bool
	NoColor    bool
	// Output selects how results are printed, table or json
	Output string

	// Overrides for the migration block of the config file. Zero values keep
	// what the file says.
	Format      string
	Concurrency int
	FailureMode string
	TempDir     string

	// Details adds a per-artifact table to the sync report
	Details bool

	// For crawl command
	Crawl CrawlConfig
}

// CrawlConfig holds crawl command specific configurations
type CrawlConfig struct {
	Tree bool
	All  bool
	Path string
}

// Global is the shared instance of GlobalFlags
var Global = GlobalFlags{}
