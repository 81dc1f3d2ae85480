package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/orbitsim/orbit"
	"github.com/plus3/orbitsim/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCommand(&out)
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestRunReference(t *testing.T) {
	out, err := execute(t, "run", "--steps", "1000", "--sample", "250")
	require.NoError(t, err)

	assert.Contains(t, out, "**Scenario:** reference")
	assert.Contains(t, out, "**Completed Ticks:** 1000")
	assert.Contains(t, out, "**Failed Ticks:** 0")
	assert.Contains(t, out, "**Simulated Time:** 10.00")
	assert.Contains(t, out, "| euler | euler | 1.0000 -> ")
	assert.Contains(t, out, "| verlet | verlet | 1.0000 -> ")
	assert.Contains(t, out, "- EulerSystem: 1000 executions")
	assert.Contains(t, out, "- VerletSystem: 1000 executions")
}

func TestRunRealtime(t *testing.T) {
	out, err := execute(t, "run", "--realtime", "--steps", "3", "--sample", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "**Requested Steps:** 3 (real time)")
	assert.Contains(t, out, "**Completed Ticks:** 3")
	assert.Contains(t, out, "**Simulated Time:** 0.03")
	assert.Contains(t, out, "- **Step Time:**")
	assert.Contains(t, out, "- VerletSystem: 3 executions")
}

func TestRunRealtimeTinyTimeStep(t *testing.T) {
	sc := orbit.Reference()
	sc.TimeStep = 1e-10
	data, err := sc.YAML()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "tiny.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out, err := execute(t, "run", "--scenario", path, "--realtime", "--steps", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "**Completed Ticks:** 5")
}

func TestRunRejectsBadFlags(t *testing.T) {
	_, err := execute(t, "run", "--steps", "0")
	assert.ErrorContains(t, err, "--steps")

	_, err = execute(t, "run", "--sample", "-1")
	assert.ErrorContains(t, err, "--sample")

	_, err = execute(t, "run", "--policy", "bounce")
	assert.Error(t, err)
}

func TestRunReportsFailedStep(t *testing.T) {
	sc := orbit.Reference()
	sc.Bodies[1].Position = [2]float64{0, 0}
	data, err := sc.YAML()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "degenerate.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out, err := execute(t, "run", "--scenario", path, "--steps", "10")
	require.Error(t, err)
	assert.ErrorIs(t, err, physics.ErrDegenerateGeometry)
	assert.Contains(t, out, "**Completed Ticks:** 0")
	assert.Contains(t, out, "**Failed Ticks:** 1")
	assert.Contains(t, out, "**Stopped:**")
}

func TestRunPropagatePolicyOverride(t *testing.T) {
	sc := orbit.Reference()
	sc.Bodies[1].Position = [2]float64{0, 0}
	data, err := sc.YAML()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "degenerate.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out, err := execute(t, "run", "--scenario", path, "--steps", "10", "--policy", "propagate")
	require.NoError(t, err)
	assert.Contains(t, out, "**Policy:** propagate")
	assert.Contains(t, out, "**Completed Ticks:** 10")
	assert.Contains(t, out, "| euler | euler | 0.0000 -> NaN |")
}

func TestScenarioCommand(t *testing.T) {
	out, err := execute(t, "scenario")
	require.NoError(t, err)

	sc, err := orbit.ParseScenario([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, orbit.Reference(), sc)

	path := filepath.Join(t.TempDir(), "reference.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))

	again, err := execute(t, "scenario", "-f", path)
	require.NoError(t, err)
	assert.Equal(t, out, again)

	_, err = execute(t, "scenario", "-f", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
