package qconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gabereiser/qalg/qconfig"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	require := require.New(t)

	cfg, err := qconfig.Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(err)
	require.Equal(qconfig.Default(), cfg)
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "qalg.toml")
	require.NoError(os.WriteFile(path, []byte(`query_timeout_seconds = 5`), 0o644))

	cfg, err := qconfig.Load(path)
	require.NoError(err)
	require.Equal("info", cfg.LogLevel)
	require.Equal(5, cfg.QueryTimeoutSeconds)
}
