package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dice-roller/internal/config"
	"github.com/KirkDiggler/dice-roller/internal/entities/rolls"
	"github.com/KirkDiggler/dice-roller/internal/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	stdout, _, err := executeWithStderr(t, args...)
	return stdout, err
}

func executeWithStderr(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRollIsReproducibleWithSeed(t *testing.T) {
	args := []string{"roll", "--sides", "6", "--dice", "2", "--rolls", "50", "--seed", "7", "--no-color", "--width", "60"}

	first, err := execute(t, args...)
	require.NoError(t, err)
	second, err := execute(t, args...)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "Roll Totals:\n")
	assert.Contains(t, first, "Count: 50\n")
	assert.Contains(t, first, "Tally of 50 Roll Totals (50x2 d6)\n")
	assert.Contains(t, first, "12 | ")
}

func TestRollLogsGeneratedSeedForReplay(t *testing.T) {
	args := []string{"roll", "--sides", "6", "--dice", "3", "--rolls", "40", "--no-color", "--width", "60"}

	first, logs, err := executeWithStderr(t, append(args, "--verbose")...)
	require.NoError(t, err)

	match := regexp.MustCompile(`seed=(-?\d+)`).FindStringSubmatch(logs)
	require.Len(t, match, 2, "seed not logged: %s", logs)

	replayed, err := execute(t, append(args, "--seed", match[1])...)
	require.NoError(t, err)
	assert.Equal(t, first, replayed)
}

func TestErrorMessage(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "invalid input shows only the fixed sentence",
			err:      errors.InvalidInput("sides"),
			expected: errors.InvalidInputMessage,
		},
		{
			name:     "invalid input wrapped by a client",
			err:      fmt.Errorf("failed to roll dice: %w", errors.InvalidInput("num_rolls")),
			expected: errors.InvalidInputMessage,
		},
		{
			name:     "limit shows its message",
			err:      errors.InvalidArgumentf("sides must be at most %d", 10),
			expected: "sides must be at most 10",
		},
		{
			name:     "wrapped validation keeps its cause",
			err:      errors.Wrap(errors.InvalidArgument("storage.backend: must be one of: memory, redis"), "invalid config"),
			expected: "INVALID_ARGUMENT: invalid config: INVALID_ARGUMENT: storage.backend: must be one of: memory, redis",
		},
		{
			name:     "other codes keep the code",
			err:      errors.NotFound("no display for viewer tty"),
			expected: "NOT_FOUND: no display for viewer tty",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, errorMessage(tc.err))
		})
	}
}

func TestRollJSONOutput(t *testing.T) {
	out, err := execute(t, "roll", "--sides", "6", "--dice", "2", "--rolls", "50", "--seed", "7", "-o", "json")
	require.NoError(t, err)

	var d rolls.Display
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Len(t, d.Totals, 50)
	assert.Len(t, d.Histogram.Bins, 11)
	assert.Equal(t, rolls.Request{Sides: 6, NumDice: 2, NumRolls: 50}, d.Request)
	assert.Equal(t, rolls.DefaultViewerID, d.ViewerID)
}

func TestRollInspect(t *testing.T) {
	out, err := execute(t, "roll", "--sides", "1", "--dice", "3", "--rolls", "4", "--inspect", "3", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 3\nCount: 4\nChance: 1 in 1\n")
}

func TestRollInspectOutsideRange(t *testing.T) {
	_, err := execute(t, "roll", "--sides", "6", "--dice", "1", "--rolls", "10", "--inspect", "7", "--no-color")
	require.Error(t, err)
	assert.True(t, errors.IsOutOfRange(err))
}

func TestRollRejectsInvalidInput(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "non numeric sides", args: []string{"--sides", "abc"}},
		{name: "zero dice", args: []string{"--dice", "0"}},
		{name: "fractional rolls", args: []string{"--rolls", "2.5"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"roll"}, tc.args...)...)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidInput(err))
			assert.Equal(t, errors.InvalidInputMessage, errors.GetMessage(err))
			assert.Empty(t, out)
		})
	}
}

func TestRollEnforcesConfiguredLimits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("limits:\n  max_sides: 10\n"), 0o600))

	_, err := execute(t, "--config", path, "roll", "--sides", "12")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = execute(t, "--config", path, "roll", "--sides", "10", "--no-color")
	assert.NoError(t, err)
}

func TestRollRejectsUnknownOutput(t *testing.T) {
	_, err := execute(t, "roll", "-o", "xml")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestServerFlagsOverrideConfig(t *testing.T) {
	cmd := newServerCmd(new(string))
	require.NoError(t, cmd.Flags().Set("grpc-port", "6000"))
	require.NoError(t, cmd.Flags().Set("storage", config.BackendRedis))
	require.NoError(t, cmd.Flags().Set("log-format", "json"))

	v, err := config.NewViper("")
	require.NoError(t, err)
	require.NoError(t, bindServerFlags(cmd, v))

	cfg, err := config.LoadFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 6000, cfg.Server.GRPCPort)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, config.BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "localhost:6379", cfg.Storage.RedisAddr)
	assert.Equal(t, "json", cfg.Logging.Format)
}
