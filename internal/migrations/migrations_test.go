package migrations

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uiTest/internal/config"
	"uiTest/internal/logger"
)

func TestEmbeddedSource(t *testing.T) {
	src, err := Source()
	require.NoError(t, err)
	defer src.Close()

	version, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	r, name, err := src.ReadUp(version)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, "scenario_runs", name)

	body, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS scenario_runs")

	_, _, err = src.ReadDown(version)
	assert.NoError(t, err)
}

func TestRunSkipsNonPostgres(t *testing.T) {
	for _, driver := range []string{"sqlite", "none"} {
		cfg := &config.Cfg{Database: config.Database{Driver: driver, DSN: "ignored"}}
		assert.NoError(t, Run(cfg, logger.Nop()), driver)
	}
}
