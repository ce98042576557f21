package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestSummary(t *testing.T) {
	chdir(t, t.TempDir())

	out, _, err := run(t, "summary", "--source", "memory")
	require.NoError(t, err)
	assert.Contains(t, out, "AIR QUALITY SUMMARY")
	assert.Contains(t, out, "Cities     : Almaty, Astana, Delhi")
	assert.Contains(t, out, "Rows         : 21")
	assert.Contains(t, out, "City with highest average AQI: Delhi")
}

func TestSummary_EmptySelection(t *testing.T) {
	chdir(t, t.TempDir())

	out, _, err := run(t, "summary", "--source", "memory", "--cities", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Cities     : (none)")
	assert.Contains(t, out, "Mean AQI     : no data")
	assert.Contains(t, out, "No insights available for the current filtered data.")
}

func TestSummary_InvalidRange(t *testing.T) {
	chdir(t, t.TempDir())

	_, _, err := run(t, "summary", "--source", "memory", "--from", "2024-01-05", "--to", "2024-01-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date range")

	_, _, err = run(t, "summary", "--source", "memory", "--from", "yesterday")
	require.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	_, stderr, err := run(t, "export", "--source", "memory", "--cities", "Oslo", "--to", "2024-01-03")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Wrote 3 rows")

	b, err := os.ReadFile(filepath.Join(dir, "filtered_pollution_data.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	assert.Len(t, lines, 4)

	out, _, err := run(t, "export", "--source", "memory", "--all-cities", "-o", "-")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 29)
}

func TestChartCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	_, _, err := run(t, "chart", "--source", "memory", "--kind", "city-aqi", "-o", "bars.png")
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(dir, "bars.png"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG")))

	_, _, err = run(t, "chart", "--source", "memory", "--kind", "pie")
	assert.Error(t, err)
}

func TestConfigCommand(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://u:hunter2@db/aq")

	out, _, err := run(t, "config", "--source", "memory")
	require.NoError(t, err)
	assert.Contains(t, out, "data_source: memory")
	assert.NotContains(t, out, "hunter2")
}

func TestCSVFlagSelectsFileSource(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "air.csv")
	content := "City,Date,AQI,PM2.5,Temperature,Humidity\nOslo,2024-01-01,30,8,-2,80\nOslo,2024-01-02,40,9,-1,79\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, _, err := run(t, "summary", "--csv", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Rows         : 2")
	assert.Contains(t, out, "Mean AQI     : 35.0")
}
