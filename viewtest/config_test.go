package viewtest

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	settings, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "warn", settings.Logging.Level)
	assert.Equal(t, "stderr", settings.Logging.Output)
	assert.Equal(t, "json", settings.Logging.Format)
	assert.Equal(t, "testserver", settings.Factory.ServerName)
	assert.Equal(t, "127.0.0.1", settings.Factory.RemoteAddr)
	assert.False(t, settings.Factory.Secure)
}

func TestLoadConfigFlags(t *testing.T) {
	settings, err := LoadConfig([]string{
		"--factory.server_name", "example.com",
		"--factory.secure",
		"--logging.output", "discard",
		"--test.v=true",
	})
	require.NoError(t, err)

	assert.Equal(t, "example.com", settings.Factory.ServerName)
	assert.True(t, settings.Factory.Secure)
	assert.Equal(t, "discard", settings.Logging.Output)
}

func TestLoadConfigEnv(t *testing.T) {
	require.NoError(t, os.Setenv("VIEWTEST_FACTORY_REMOTE_ADDR", "10.0.0.1"))
	defer os.Unsetenv("VIEWTEST_FACTORY_REMOTE_ADDR")

	settings, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.1", settings.Factory.RemoteAddr)
}

func TestSettingsApply(t *testing.T) {
	settings, err := LoadConfig([]string{
		"--factory.server_name", "example.com",
		"--logging.output", "discard",
	})
	require.NoError(t, err)

	config := Config{ViewFunction: mockFunctionView}
	settings.Apply(&config)

	tc, err := New(config)
	require.NoError(t, err)

	req, err := tc.Factory.Get("/path")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/path", req.URL.String())
}
