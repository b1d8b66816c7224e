package types

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
version: 1.0
format: maven2
source:
  endpoint: https://nexus.company.com:8443/content/repositories/
  repository: releases
destination:
  endpoint: https://nexus.company.com/repository
  repository: maven-releases
  credentials:
    username: ${TEST_NEXUS3_USER}
    password: ${TEST_NEXUS3_PASS}
`

func TestLoadConfig(t *testing.T) {
	t.Setenv("TEST_NEXUS3_USER", "deployer")
	t.Setenv("TEST_NEXUS3_PASS", "s3cret")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validConfig), 0600))

	cfg, err := ReadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Complete())

	assert.Equal(t, ConfigVersion, cfg.Version)
	assert.Equal(t, MAVEN2, cfg.Format)
	assert.Equal(t, "deployer", cfg.Dest.Credentials.Username)
	assert.Equal(t, "s3cret", cfg.Dest.Credentials.Password)
	assert.Equal(t, 1, cfg.Migration.Concurrency)
	assert.Equal(t, FailureModeStop, cfg.Migration.FailureMode)
	assert.Equal(t, os.TempDir(), cfg.Migration.TempDir)
	assert.Equal(t, DefaultKnownExceptions, cfg.KnownExceptions)
	assert.Equal(t, "https://nexus.company.com/service/rest/v1/components", cfg.Dest.RestAPI)

	assert.Equal(t, "https://nexus.company.com:8443/content/repositories/releases/", cfg.Source.RepositoryURL())
	assert.Equal(t, "https://nexus.company.com/repository/maven-releases/", cfg.Dest.RepositoryURL())

	upload, err := cfg.Dest.UploadURL()
	require.NoError(t, err)
	assert.Equal(t, "https://nexus.company.com/service/rest/v1/components?repository=maven-releases", upload)
}

func TestCompleteValidation(t *testing.T) {
	base := func() *Config {
		return &Config{
			Format: MAVEN2,
			Source: RegistryConfig{Endpoint: "http://old/content/repositories/", Repository: "r"},
			Dest: RegistryConfig{Endpoint: "http://new/repository/", Repository: "r",
				Credentials: CredentialsConfig{Username: "u", Password: "p"}},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"unsupported version", func(c *Config) { c.Version = "2.0" }, `unsupported config version "2.0"`},
		{"unknown format", func(c *Config) { c.Format = "npm" }, "unsupported repository format"},
		{"negative concurrency", func(c *Config) { c.Migration.Concurrency = -1 }, "concurrency must be greater than 0"},
		{"bad failure mode", func(c *Config) { c.Migration.FailureMode = "retry" }, "invalid failure mode"},
		{"relative source", func(c *Config) { c.Source.Endpoint = "content/repositories" }, "invalid source block"},
		{"missing dest repository", func(c *Config) { c.Dest.Repository = "/" }, "registry repository cannot be empty"},
		{"missing dest password", func(c *Config) { c.Dest.Credentials.Password = "" }, "username and password must be provided"},
		{"bad pattern", func(c *Config) { c.Filters.Include = []string{"com/[acme"} }, "invalid pattern"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Complete()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("valid", func(t *testing.T) {
		c := base()
		c.Migration.FailureMode = "CONTINUE"
		c.KnownExceptions = []string{}
		require.NoError(t, c.Complete())
		assert.Equal(t, FailureModeContinue, c.Migration.FailureMode)
		assert.Empty(t, c.KnownExceptions)
		assert.Equal(t, ConfigVersion, c.Version)
	})
}

func TestConfigVersion(t *testing.T) {
	t.Setenv("TEST_NEXUS3_USER", "deployer")
	t.Setenv("TEST_NEXUS3_PASS", "s3cret")

	cfg, err := DecodeConfig([]byte(strings.Replace(validConfig, "version: 1.0", "version: 2", 1)))
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.Complete(), "unsupported config version")

	cfg, err = DecodeConfig([]byte(strings.Replace(validConfig, "version: 1.0\n", "", 1)))
	require.NoError(t, err)
	require.NoError(t, cfg.Complete())
	assert.Equal(t, ConfigVersion, cfg.Version)
}

func TestCompleteSourceSkipsDestination(t *testing.T) {
	c := &Config{
		Format: NUGET,
		Source: RegistryConfig{Endpoint: "http://old/content/repositories/", Repository: "r"},
	}
	require.NoError(t, c.CompleteSource())
	assert.Error(t, c.Complete(), "a full migration still needs the destination")

	c.Version = "0.9"
	assert.ErrorContains(t, c.CompleteSource(), "unsupported config version")

	c.Version = ""
	c.Source.Credentials.Username = "reader"
	assert.ErrorContains(t, c.CompleteSource(), "password must be provided")
}
