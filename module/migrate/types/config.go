package types

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

const restComponentsPath = "/service/rest/v1/components"

// ConfigVersion is the only config file layout this build understands.
const ConfigVersion = "1.0"

// DefaultKnownExceptions matches the artifact family with a history of case
// changes in its name. The target registry rejects those uploads even though
// the component is usually already present.
var DefaultKnownExceptions = []string{"Artifact*", "Artifact*/**", "**/Artifact*", "**/Artifact*/**"}

// Config represents the top-level configuration structure
type Config struct {
	Version         string           `yaml:"version"`
	Format          RepositoryFormat `yaml:"format"`
	Source          RegistryConfig   `yaml:"source"`
	Dest            RegistryConfig   `yaml:"destination"`
	Migration       MigrationConfig  `yaml:"migration"`
	Filters         FiltersConfig    `yaml:"filters"`
	KnownExceptions []string         `yaml:"knownExceptions"`
}

// MigrationConfig contains settings for a migration process
type MigrationConfig struct {
	Concurrency int         `yaml:"concurrency"`
	FailureMode FailureMode `yaml:"failureMode"`
	TempDir     string      `yaml:"tempDir"`
}

// RegistryConfig describes one side of the migration. Endpoint is the base
// that repositories hang off, e.g. https://nexus:8443/content/repositories/
// for Nexus 2 or https://nexus/repository/ for Nexus 3.
type RegistryConfig struct {
	Endpoint    string            `yaml:"endpoint"`
	Repository  string            `yaml:"repository"`
	RestAPI     string            `yaml:"restApi,omitempty"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Insecure    bool              `yaml:"insecure"`
}

// FiltersConfig narrows the set of crawled paths considered for migration
type FiltersConfig struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// CredentialsConfig defines the credential configuration
type CredentialsConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password,omitempty"`
}

// RepositoryURL returns <endpoint>/<repository>/ with exactly one slash at
// each join.
func (r RegistryConfig) RepositoryURL() string {
	return strings.TrimSuffix(r.Endpoint, "/") + "/" + strings.Trim(r.Repository, "/") + "/"
}

// UploadURL returns the component upload endpoint scoped to the repository.
func (r RegistryConfig) UploadURL() (string, error) {
	u, err := url.Parse(r.RestAPI)
	if err != nil {
		return "", fmt.Errorf("failed to parse [%s], err: %w", r.RestAPI, err)
	}
	q := u.Query()
	q.Set("repository", strings.Trim(r.Repository, "/"))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ReadConfig reads and decodes a config file without completing it.
func ReadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return DecodeConfig(data)
}

// DecodeConfig expands environment variables in data and unmarshals it. The
// result still needs Complete or CompleteSource.
func DecodeConfig(data []byte) (*Config, error) {
	// Expand environment variables in the file
	expandedData := expandEnvInYaml(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return &config, nil
}

// Complete applies defaults and validates the configuration. Call it after
// command line overrides are applied.
func (c *Config) Complete() error {
	applyDefaults(c)
	return validateConfig(c)
}

// CompleteSource is Complete for read-only commands: the destination block
// and the migration settings are defaulted but not validated.
func (c *Config) CompleteSource() error {
	applyDefaults(c)
	return validateSource(c)
}

// expandEnvInYaml expands environment variables in YAML content
func expandEnvInYaml(content string) string {
	// Process ${VAR} style environment variables
	result := os.Expand(content, func(key string) string {
		return os.Getenv(key)
	})

	return result
}

func applyDefaults(config *Config) {
	if config.Version == "" {
		config.Version = ConfigVersion
	}
	if config.Migration.Concurrency == 0 {
		config.Migration.Concurrency = 1
	}
	if config.Migration.FailureMode == "" {
		config.Migration.FailureMode = FailureModeStop
	}
	config.Migration.FailureMode = FailureMode(strings.ToLower(string(config.Migration.FailureMode)))
	if config.Migration.TempDir == "" {
		config.Migration.TempDir = os.TempDir()
	}
	if config.KnownExceptions == nil {
		config.KnownExceptions = append([]string(nil), DefaultKnownExceptions...)
	}
	if config.Dest.RestAPI == "" {
		if u, err := url.Parse(config.Dest.Endpoint); err == nil && u.Host != "" {
			config.Dest.RestAPI = u.Scheme + "://" + u.Host + restComponentsPath
		}
	}
}

// validateConfig performs basic validation on the configuration
func validateConfig(config *Config) error {
	if err := validateSource(config); err != nil {
		return err
	}

	if config.Migration.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be greater than 0")
	}

	switch config.Migration.FailureMode {
	case FailureModeStop, FailureModeContinue:
		// Valid values
	default:
		return fmt.Errorf("invalid failure mode: %s, must be 'continue' or 'stop'", config.Migration.FailureMode)
	}

	if err := validateRegistry(config.Dest); err != nil {
		return fmt.Errorf("invalid destination block provided in config: %w", err)
	}
	if err := validateURL(config.Dest.RestAPI); err != nil {
		return fmt.Errorf("invalid destination restApi: %w", err)
	}

	// Uploads always need credentials, the source may be anonymous
	if config.Dest.Credentials.Username == "" || config.Dest.Credentials.Password == "" {
		return fmt.Errorf("invalid destination credentials block provided in config: username and password must be provided")
	}
	return nil
}

// validateSource checks everything a crawl of the source depends on.
func validateSource(config *Config) error {
	if config.Version != ConfigVersion {
		return fmt.Errorf("unsupported config version %q, must be %q", config.Version, ConfigVersion)
	}

	format, err := ParseRepositoryFormat(string(config.Format))
	if err != nil {
		return err
	}
	config.Format = format

	if err := validateRegistry(config.Source); err != nil {
		return fmt.Errorf("invalid source block provided in config: %w", err)
	}
	if config.Source.Credentials.Username != "" && config.Source.Credentials.Password == "" {
		return fmt.Errorf("invalid source credentials block provided in config: password must be provided when using username authentication")
	}

	for _, group := range [][]string{config.Filters.Include, config.Filters.Exclude, config.KnownExceptions} {
		for i, pattern := range group {
			if pattern == "" {
				return fmt.Errorf("pattern %d cannot be empty", i)
			}
			if _, err := glob.Compile(strings.TrimPrefix(pattern, "/"), '/'); err != nil {
				return fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
		}
	}
	return nil
}

func validateRegistry(registry RegistryConfig) error {
	if registry.Endpoint == "" {
		return fmt.Errorf("registry endpoint cannot be empty")
	}
	if err := validateURL(registry.Endpoint); err != nil {
		return err
	}
	if strings.Trim(registry.Repository, "/") == "" {
		return fmt.Errorf("registry repository cannot be empty")
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("failed to parse [%s], err: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%q must be an absolute http(s) URL", raw)
	}
	return nil
}
