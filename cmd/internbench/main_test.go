package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/logx"

	"internbench/config"
	"internbench/dedup"
	"internbench/harness"
)

func TestMain(m *testing.M) {
	logx.Disable()
	os.Exit(m.Run())
}

func TestListCommand(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"list"})
	require.NoError(t, root.Execute())

	assert.Equal(t, dedup.Names(), strings.Fields(out.String()))
}

func TestApplyFlags(t *testing.T) {
	cmd := newRunCmd()
	require.NoError(t, cmd.Flags().Parse([]string{
		"--strategy", "strong,weak",
		"--strings", "1,100",
		"--cache-hit", "false",
		"--threads", "8",
		"--time", "250ms",
		"--kafka-brokers", "a:9092,b:9092",
	}))

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, applyFlags(cmd.Flags(), &cfg))

	assert.Equal(t, []string{"strong", "weak"}, cfg.Strategies)
	assert.Equal(t, []int{1, 100}, cfg.StringCounts)
	assert.Equal(t, []bool{false}, cfg.CacheHits)
	assert.Equal(t, 8, cfg.Threads)
	assert.Equal(t, 250*time.Millisecond, cfg.Measure.Time)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Report.Kafka.Brokers)
	// 未设置的 flag 保留默认值
	assert.Equal(t, 5, cfg.Measure.Iterations)
	assert.Equal(t, "text", cfg.Report.Format)
}

func quickConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Strategies = []string{dedup.Builtin, dedup.Strong, dedup.Weak}
	cfg.StringCounts = []int{1, 10}
	cfg.CacheHits = []bool{true, false}
	cfg.Threads = 2
	cfg.Warmup = config.Phase{Iterations: 1, Time: 2 * time.Millisecond}
	cfg.Measure = config.Phase{Iterations: 2, Time: 5 * time.Millisecond}
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestRunSuite(t *testing.T) {
	results, err := runSuite(context.Background(), quickConfig(t))
	require.NoError(t, err)
	require.Len(t, results, 3*4)

	for i, res := range results {
		assert.Equal(t, []string{dedup.Builtin, dedup.Strong, dedup.Weak}[i/4], res.Strategy)
		assert.Len(t, res.Scores, 2)
		assert.Greater(t, res.Mean, 0.0)
	}
}

func TestRunSuiteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runSuite(ctx, quickConfig(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunCommandJSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "results.json")
	root := newRootCmd()
	root.SetArgs([]string{"run",
		"--strategy", "strong",
		"--strings", "5",
		"--cache-hit", "true",
		"--warmup", "0",
		"--iterations", "1",
		"--time", "5ms",
		"--format", "json",
		"--log-level", "severe",
		"-o", out,
	})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var results []harness.Result
	require.NoError(t, sonic.Unmarshal(data, &results))
	require.Len(t, results, 1)
	assert.Equal(t, "strong", results[0].Strategy)
	assert.Equal(t, 5, results[0].StringCount)
	assert.LessOrEqual(t, results[0].TableSize, 5)
}

func TestRunCommandFlagOverridesInvalidFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bench.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("Strategies: [btree]\nStringCounts: [3]\n"), 0o644))
	out := filepath.Join(dir, "results.json")

	root := newRootCmd()
	root.SetArgs([]string{"run",
		"-c", cfgPath,
		"--strategy", "strong",
		"--warmup", "0",
		"--iterations", "1",
		"--time", "5ms",
		"--format", "json",
		"--log-level", "severe",
		"-o", out,
	})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var results []harness.Result
	require.NoError(t, sonic.Unmarshal(data, &results))
	require.Len(t, results, 1)
	assert.Equal(t, "strong", results[0].Strategy)
	assert.Equal(t, 3, results[0].StringCount)
}

func TestRunCommandRejectsInvalidFileWithoutOverride(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("Strategies: [btree]\n"), 0o644))

	root := newRootCmd()
	root.SetArgs([]string{"run", "-c", cfgPath})
	assert.ErrorIs(t, root.Execute(), dedup.ErrUnknownStrategy)
}

func TestRunCommandRejectsUnknownStrategy(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"run", "--strategy", "btree"})
	err := root.Execute()
	assert.ErrorIs(t, err, dedup.ErrUnknownStrategy)
}
