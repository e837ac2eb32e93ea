package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"uiTest/internal/config"
	"uiTest/internal/database"
	"uiTest/internal/fixtures"
	"uiTest/internal/logger"
)

type fakeHistory struct {
	runs []database.ScenarioRun
	err  error
}

func (h *fakeHistory) ListByRun(ctx context.Context, runID string) ([]database.ScenarioRun, error) {
	var out []database.ScenarioRun
	for _, r := range h.runs {
		if r.RunID == runID {
			out = append(out, r)
		}
	}
	return out, h.err
}

func (h *fakeHistory) ListFailed(ctx context.Context, limit int) ([]database.ScenarioRun, error) {
	var out []database.ScenarioRun
	for _, r := range h.runs {
		if r.Failed() {
			out = append(out, r)
		}
	}
	return out, h.err
}

func testDeps(t *testing.T) Deps {
	t.Helper()
	cfg, err := config.Resolve(func(key string) (string, bool) {
		if key == "REPORT_DIR" {
			return t.TempDir(), true
		}
		return "", false
	})
	require.NoError(t, err)
	store, err := fixtures.Default()
	require.NoError(t, err)
	return Deps{Cfg: cfg, Log: logger.Nop(), Data: store, Run: func(context.Context) int { return 0 }}
}

func execute(t *testing.T, d Deps, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd(d)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	code := Execute(context.Background(), root, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestRunExitCode(t *testing.T) {
	d := testDeps(t)
	calls := 0
	d.Run = func(context.Context) int {
		calls++
		return 1
	}

	out, _, code := execute(t, d, "run")
	assert.Equal(t, 1, code)
	assert.Equal(t, 1, calls)
	assert.Contains(t, out, "chrome")
}

func TestDataGet(t *testing.T) {
	d := testDeps(t)

	out, _, code := execute(t, d, "data", "get", "default_user")
	require.Equal(t, 0, code)

	var rec map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "testuser", rec["username"])
	assert.Equal(t, "[FILTERED]", rec["password"])

	out, _, code = execute(t, d, "data", "get", "--reveal", "default_user", "password")
	require.Equal(t, 0, code)
	assert.Equal(t, "password123\n", out)

	out, _, code = execute(t, d, "data", "get", "age_verification", "expected_result.minor")
	require.Equal(t, 0, code)
	assert.Equal(t, "Access denied to age-restricted content\n", out)
}

func TestDataGetErrors(t *testing.T) {
	d := testDeps(t)

	_, stderr, code := execute(t, d, "data", "get", "default_user", "profile.name")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "profile.name")

	_, _, code = execute(t, d, "data", "get")
	assert.Equal(t, 1, code)
}

func TestDataRandom(t *testing.T) {
	out, _, code := execute(t, testDeps(t), "data", "random", "12")
	require.Equal(t, 0, code)
	assert.Len(t, out, 13)

	_, _, code = execute(t, testDeps(t), "data", "random", "-3")
	assert.Equal(t, 1, code)
}

func TestConfigCommand(t *testing.T) {
	d := testDeps(t)
	d.Cfg.Database.DSN = "postgres://qa:pa55@db:5432/results"

	out, _, code := execute(t, d, "config")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "https://example.com")
	assert.Contains(t, out, "1920x1080")
	assert.Contains(t, out, "dev (https://dev.example.com)")
	assert.NotContains(t, out, "pa55")
}

func TestHistory(t *testing.T) {
	d := testDeps(t)
	started := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	d.History = &fakeHistory{runs: []database.ScenarioRun{
		{RunID: "r1", Scenario: "Successful login", Status: database.StatusPassed, StartedAt: started},
		{RunID: "r1", Scenario: "Bad password", Status: database.StatusFailed, Error: "element timeout", ScreenshotPath: "reports/screenshots/failed_bad_password.png", StartedAt: started},
	}}

	out, _, code := execute(t, d, "history")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Bad password")
	assert.Contains(t, out, "element timeout")
	assert.NotContains(t, out, "Successful login")

	out, _, code = execute(t, d, "history", "--run", "r1")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Successful login")
}

func TestHistoryDisabled(t *testing.T) {
	_, stderr, code := execute(t, testDeps(t), "history")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "RESULTS_DB_DRIVER")
}

func TestHistoryError(t *testing.T) {
	d := testDeps(t)
	d.History = &fakeHistory{err: errors.New("connection refused")}

	_, stderr, code := execute(t, d, "history")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "connection refused")
}
