package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/kubectl-sandbox/internal/catalog"
	"github.com/giantswarm/kubectl-sandbox/internal/logging"
	"github.com/giantswarm/kubectl-sandbox/internal/server"
)

const testCatalogPath = "../internal/catalog/testdata/catalog.yaml"

func validServeConfig() ServeConfig {
	return ServeConfig{
		Transport:       transportHTTP,
		HTTPAddr:        defaultHTTPAddr,
		APIPath:         server.DefaultAPIPath,
		MCPEndpoint:     defaultMCPEndpoint,
		MetricsAddr:     server.DefaultMetricsAddr,
		Namespace:       catalog.DefaultNamespace,
		LogFormat:       logging.FormatJSON,
		MaxRequestBytes: defaultMaxRequestBytes,
	}
}

func TestServeConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *ServeConfig)
		wantErr string
	}{
		{
			name:   "defaults",
			modify: func(c *ServeConfig) {},
		},
		{
			name:   "stdio ignores http settings",
			modify: func(c *ServeConfig) { c.Transport = transportStdio; c.APIPath = "nope"; c.MaxRequestBytes = -1 },
		},
		{
			name:   "text log format in any case",
			modify: func(c *ServeConfig) { c.LogFormat = "TEXT" },
		},
		{
			name:   "valid origins",
			modify: func(c *ServeConfig) { c.AllowedOrigins = "https://learn.example.com, http://localhost:3000" },
		},
		{
			name:   "zero disables the body limit",
			modify: func(c *ServeConfig) { c.MaxRequestBytes = 0 },
		},
		{
			name:    "unknown transport",
			modify:  func(c *ServeConfig) { c.Transport = "sse" },
			wantErr: "unsupported transport type: sse",
		},
		{
			name:    "blank namespace",
			modify:  func(c *ServeConfig) { c.Namespace = "  " },
			wantErr: "namespace must not be empty",
		},
		{
			name:    "unknown log format",
			modify:  func(c *ServeConfig) { c.LogFormat = "xml" },
			wantErr: `invalid log format "xml"`,
		},
		{
			name:    "relative api path",
			modify:  func(c *ServeConfig) { c.APIPath = "api/kubectl" },
			wantErr: "--api-path must start with /",
		},
		{
			name:    "mcp endpoint on a health path",
			modify:  func(c *ServeConfig) { c.MCPEndpoint = "/readyz" },
			wantErr: "--mcp-endpoint cannot use the reserved path /readyz",
		},
		{
			name:    "same api and mcp path",
			modify:  func(c *ServeConfig) { c.MCPEndpoint = c.APIPath },
			wantErr: "--api-path and --mcp-endpoint must differ",
		},
		{
			name:    "negative body limit",
			modify:  func(c *ServeConfig) { c.MaxRequestBytes = -5 },
			wantErr: "--max-request-bytes must not be negative",
		},
		{
			name:    "origin with path",
			modify:  func(c *ServeConfig) { c.AllowedOrigins = "https://example.com/app" },
			wantErr: "invalid allowed origins",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validServeConfig()
			tt.modify(&config)

			err := config.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadServeEnvVars(t *testing.T) {
	t.Run("environment fills unset flags", func(t *testing.T) {
		t.Setenv(envCatalog, testCatalogPath)
		t.Setenv(envNamespace, "jobs")
		t.Setenv(envAllowedOrigins, "https://learn.example.com")
		t.Setenv(envLogFormat, "text")
		t.Setenv(envEnableHSTS, "true")

		cmd := newServeCmd()
		require.NoError(t, cmd.ParseFlags([]string{}))
		config := validServeConfig()

		loadServeEnvVars(cmd, &config)

		assert.Equal(t, testCatalogPath, config.CatalogPath)
		assert.Equal(t, "jobs", config.Namespace)
		assert.Equal(t, "https://learn.example.com", config.AllowedOrigins)
		assert.Equal(t, "text", config.LogFormat)
		assert.True(t, config.EnableHSTS)
	})

	t.Run("explicit flags win", func(t *testing.T) {
		t.Setenv(envCatalog, testCatalogPath)
		t.Setenv(envNamespace, "jobs")
		t.Setenv(envLogFormat, "text")
		t.Setenv(envEnableHSTS, "true")

		cmd := newServeCmd()
		require.NoError(t, cmd.ParseFlags([]string{
			"--catalog=other.yaml",
			"--namespace=staging",
			"--log-format=json",
			"--enable-hsts=false",
		}))
		config := validServeConfig()
		config.CatalogPath = "other.yaml"
		config.Namespace = "staging"

		loadServeEnvVars(cmd, &config)

		assert.Equal(t, "other.yaml", config.CatalogPath)
		assert.Equal(t, "staging", config.Namespace)
		assert.Equal(t, logging.FormatJSON, config.LogFormat)
		assert.False(t, config.EnableHSTS)
	})

	t.Run("hsts needs the exact true value", func(t *testing.T) {
		t.Setenv(envEnableHSTS, "yes")

		cmd := newServeCmd()
		require.NoError(t, cmd.ParseFlags([]string{}))
		config := validServeConfig()

		loadServeEnvVars(cmd, &config)

		assert.False(t, config.EnableHSTS)
	})
}

func TestServeConfigServerConfig(t *testing.T) {
	config := validServeConfig()
	config.Namespace = "jobs"
	config.CatalogPath = testCatalogPath
	config.APIPath = "/v1/kubectl"
	config.AllowedOrigins = "https://learn.example.com/"
	config.LogFormat = "TEXT"
	config.DebugMode = true

	cfg, err := config.serverConfig("v2.0.0")
	require.NoError(t, err)

	assert.Equal(t, "kubectl-sandbox", cfg.ServerName)
	assert.Equal(t, "v2.0.0", cfg.Version)
	assert.Equal(t, "jobs", cfg.DefaultNamespace)
	assert.Equal(t, testCatalogPath, cfg.CatalogPath)
	assert.Equal(t, "/v1/kubectl", cfg.APIPath)
	assert.Equal(t, []string{"https://learn.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, logging.FormatText, cfg.LogFormat)

	cfg, err = validServeConfig().serverConfig("")
	require.NoError(t, err)
	assert.Equal(t, server.NewDefaultConfig().Version, cfg.Version)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadCatalog(t *testing.T) {
	c, err := loadCatalog("")
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().Count("pods", ""), c.Count("pods", ""))

	c, err = loadCatalog(testCatalogPath)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Count("pods", "jobs"))

	_, err = loadCatalog("does-not-exist.yaml")
	assert.Error(t, err)
}
