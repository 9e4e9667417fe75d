// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dequad/catalog"
	"github.com/katalvlaran/dequad/internal/config"
	"github.com/katalvlaran/dequad/tanhsinh"
)

// execute runs the CLI with args and returns stdout, stderr and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dequad version 0.1.0\n", out)
}

func TestList(t *testing.T) {
	out, _, err := execute(t, "list", "bailey")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 15, "header plus fourteen entries")
	assert.Contains(t, out, "√x·log x")
	assert.Contains(t, out, "[0, π/2]")

	_, _, err = execute(t, "list", "nothing-matches")
	assert.ErrorIs(t, err, catalog.ErrUnknownEntry)
}

func TestRun(t *testing.T) {
	out, _, err := execute(t, "run", "bailey5", "linear")
	require.NoError(t, err)
	assert.Contains(t, out, "-0.4444444444444")
	assert.Contains(t, out, "converged")
	assert.Contains(t, out, "linear")
}

func TestRun_Arbitrary(t *testing.T) {
	out, _, err := execute(t, "run", "bailey1", "--mode", "arbitrary", "--digits", "40", "--tol", "1e-30")
	require.NoError(t, err)
	assert.Contains(t, out, "bailey1")
	assert.Contains(t, out, "converged")
}

func TestRun_Errors(t *testing.T) {
	_, _, err := execute(t, "run", "bailey99")
	assert.ErrorIs(t, err, catalog.ErrUnknownEntry)

	_, _, err = execute(t, "run")
	assert.Error(t, err, "at least one entry is required")

	_, _, err = execute(t, "run", "const", "--tol", "-1")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	_, _, err = execute(t, "run", "const", "--tol", "small")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	out, _, err := execute(t, "run", "bailey8", "--max-level", "1", "--strict")
	assert.ErrorIs(t, err, tanhsinh.ErrNonConvergence)
	assert.Contains(t, out, "max_level_reached", "the row is printed before failing")
}

// TestRun_ToleranceBelowFloat64 passes a tolerance float64 cannot hold
// through to arbitrary mode.
func TestRun_ToleranceBelowFloat64(t *testing.T) {
	out, _, err := execute(t, "run", "linear", "--mode", "arbitrary", "--digits", "30",
		"--tol", "1e-400", "--max-level", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "max_level_reached")

	_, _, err = execute(t, "run", "linear", "--mode", "arbitrary", "--digits", "30",
		"--tol", "1e-400", "--max-level", "2", "--strict")
	assert.ErrorIs(t, err, tanhsinh.ErrNonConvergence)
}

func TestParseTol(t *testing.T) {
	v, err := parseTol(" 1e-12 ")
	require.NoError(t, err)
	assert.Equal(t, 1e-12, v)

	v, err = parseTol("1e-400")
	require.NoError(t, err)
	assert.Positive(t, v, "clamped into float64 range")

	for _, bad := range []string{"0", "-3", "inf", "x"} {
		_, err = parseTol(bad)
		assert.ErrorIs(t, err, config.ErrInvalidConfig, bad)
	}
}

func TestRun_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dequad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_level: 1\nstrict: true\n"), 0o600))

	_, _, err := execute(t, "run", "bailey8", "--config", path)
	assert.ErrorIs(t, err, tanhsinh.ErrNonConvergence)

	_, _, err = execute(t, "run", "bailey8", "--config", path, "--max-level", "10")
	assert.NoError(t, err, "flags override the file")
}

func TestRun_Metrics(t *testing.T) {
	_, stderr, err := execute(t, "run", "const", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, stderr, `dequad_integrations_total{mode="fixed",status="converged"} 1`)
	assert.Contains(t, stderr, "dequad_evaluations_total")
}

func TestRun_DebugLogging(t *testing.T) {
	_, stderr, err := execute(t, "run", "const", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "configuration resolved")
	assert.Contains(t, stderr, "level folded")
}

func TestBench_Plain(t *testing.T) {
	out, _, err := execute(t, "bench", "bailey1", "--plain")
	require.NoError(t, err)
	for _, name := range []string{"bailey1", "bailey10", "bailey11", "bailey12", "bailey13", "bailey14"} {
		assert.Contains(t, out, name)
	}
	assert.NotContains(t, out, "MISS")
}

func TestBench_Miss(t *testing.T) {
	out, _, err := execute(t, "bench", "bailey8", "--plain", "--max-level", "1")
	assert.ErrorIs(t, err, errBenchMiss)
	assert.Contains(t, out, "MISS (error)")
}

// TestBench_ArbitraryTrig runs the entries built on sin and cos at 30 digits.
func TestBench_ArbitraryTrig(t *testing.T) {
	for _, name := range []string{"bailey3", "bailey9"} {
		out, _, err := execute(t, "bench", name, "--plain", "--mode", "arbitrary", "--digits", "30")
		require.NoError(t, err, name)
		assert.Contains(t, out, name)
		assert.NotContains(t, out, "MISS")
	}
}

func TestBench_Rendered(t *testing.T) {
	out, _, err := execute(t, "bench", "linear")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestBenchMarkdown(t *testing.T) {
	rows := []benchRow{{
		Outcome: catalog.Outcome{Entry: "linear", Level: 1, Evaluations: 9, Status: tanhsinh.Converged},
		formula: "x",
	}}
	md := benchMarkdown(rows, 1e-12)
	assert.Contains(t, md, "tol 1e-12")
	assert.Contains(t, md, "| linear | `x` | 1 | 9 |")
	assert.Contains(t, md, "| ok |")
}

func TestNodes(t *testing.T) {
	out, _, err := execute(t, "nodes", "--level", "0", "--limit", "3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "0 "), "level 0 starts at t=0")

	out, _, err = execute(t, "nodes", "--level", "1", "--limit", "1", "--mode", "arbitrary", "--digits", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "0.5")

	_, _, err = execute(t, "nodes", "--level", "99")
	assert.ErrorIs(t, err, tanhsinh.ErrBadMaxLevel)
}
