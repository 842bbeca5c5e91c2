package main

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thokas/zombie-survival/internal/config"
	apperrors "github.com/Thokas/zombie-survival/internal/errors"
	"github.com/Thokas/zombie-survival/internal/models"
	"github.com/Thokas/zombie-survival/internal/server"
	"github.com/Thokas/zombie-survival/internal/stats"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), err
}

func TestSingleRunTerse(t *testing.T) {
	out, err := runCLI(t, "", "-zombies", "6", "-survivors", "2", "-seed", "3", "-serial", "-story=false", "-color=false")

	require.NoError(t, err)
	assert.Contains(t, out, "Grrrrr\n")
	assert.Regexp(t, `Winner: (Survivors|Zombies)\nCount: \d+\n$`, out)
}

func TestSingleRunIsReproducible(t *testing.T) {
	args := []string{"-zombies", "10", "-survivors", "3", "-seed", "11", "-serial", "-color=false", "-locale", "de"}
	first, err := runCLI(t, "", args...)
	require.NoError(t, err)
	second, err := runCLI(t, "", args...)
	require.NoError(t, err)

	// Only the duration line may differ.
	strip := func(s string) string {
		var keep []string
		for _, line := range strings.Split(s, "\n") {
			if !strings.HasPrefix(line, "Nach grade mal") {
				keep = append(keep, line)
			}
		}
		return strings.Join(keep, "\n")
	}
	assert.Equal(t, strip(first), strip(second))
	assert.Contains(t, first, "Die Nacht bricht an und die Zombies regen sich...")
}

func TestBatch(t *testing.T) {
	out, err := runCLI(t, "", "-batch", "3", "-zombies", "5", "-survivors", "2", "-seed", "1", "-color=false")

	require.NoError(t, err)
	assert.Contains(t, out, "Run 1: ")
	assert.Contains(t, out, "Run 3: ")
	assert.Contains(t, out, "3 runs: survivors won ")
	assert.NotContains(t, out, "Night falls")
}

func TestDumpScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "siege.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: siege\nruns: 4\nzombie_count: 50\n"), 0o644))

	out, err := runCLI(t, "", "-scenario", path, "-survivors", "8", "-dump")

	require.NoError(t, err)
	sc, err := config.ParseScenario([]byte(out), models.Settings{})
	require.NoError(t, err)
	assert.Equal(t, "siege", sc.Name)
	assert.Equal(t, 4, sc.Runs)
	assert.Equal(t, 50, sc.ZombieCount)
	assert.Equal(t, 8, sc.SurvivorCount)
}

func TestInvalidSettings(t *testing.T) {
	_, err := runCLI(t, "", "-zombies", "0")

	require.ErrorIs(t, err, apperrors.InvalidConfiguration)
	assert.Contains(t, err.Error(), "zombie_count")
}

func TestFlagErrors(t *testing.T) {
	_, err := runCLI(t, "", "-profile", "gpu")
	assert.EqualError(t, err, `unknown profile mode "gpu"`)

	_, err = runCLI(t, "", "-batch", "-2")
	assert.Error(t, err)

	_, err = runCLI(t, "", "-log-level", "loud")
	assert.Error(t, err)

	_, err = runCLI(t, "", "-no-such-flag")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "", "-version")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "zombie-survival dev"))
}

func TestInteractiveStartThenQuit(t *testing.T) {
	out, err := runCLI(t, "2\n1\n4\n9\n1\n3\n", "-interactive", "-survivors", "1", "-story=false", "-color=false")

	require.NoError(t, err)
	assert.Contains(t, out, "Welcome to ZombieSurvival")
	assert.Contains(t, out, "Number of zombies (4)")
	assert.Regexp(t, `Winner: (Survivors|Zombies)`, out)
}

func TestRemote(t *testing.T) {
	cfg := config.Server{HistorySize: 5, MaxPopulation: 100}
	store := stats.NewStore(cfg.HistorySize)
	ts := httptest.NewServer(server.New(cfg, store, log.New(io.Discard)).Handler())
	t.Cleanup(ts.Close)

	out, err := runCLI(t, "", "-remote", ts.URL, "-zombies", "8", "-survivors", "2", "-story=false", "-color=false")

	require.NoError(t, err)
	assert.Regexp(t, `^Winner: (Survivors|Zombies)\nCount: \d+\n$`, out)
	assert.Len(t, store.Recent(10), 1)

	_, err = runCLI(t, "", "-remote", ts.URL, "-zombies", "200")
	assert.ErrorIs(t, err, apperrors.InvalidConfiguration)
}
