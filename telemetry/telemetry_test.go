package telemetry_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/plus3/orbitsim/orbit"
	"github.com/plus3/orbitsim/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := telemetry.NewRecorder(reg)

	sim := orbit.NewReference()
	for range 3 {
		start := time.Now()
		require.NoError(t, sim.Step())
		rec.ObserveStep(time.Since(start))
	}
	rec.ObserveDiagnostics(sim.Diagnostics())
	rec.Failure()

	count, err := testutil.GatherAndCount(reg, "orbitsim_ticks_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = testutil.GatherAndCount(reg, "orbitsim_orbit_radius")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(reg, "orbitsim_specific_orbital_energy")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := telemetry.NewRecorder(reg)

	sim := orbit.NewReference()
	rec.ObserveDiagnostics(sim.Diagnostics())
	rec.ObserveStep(time.Microsecond)

	server := httptest.NewServer(telemetry.Handler(reg))
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `orbitsim_orbit_radius{body="euler",scheme="euler"} 1`)
	assert.Contains(t, string(body), `orbitsim_orbit_radius{body="verlet",scheme="verlet"} 1`)
	assert.Contains(t, string(body), "orbitsim_ticks_total 1")
}

func TestRecorderRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	telemetry.NewRecorder(reg)
	assert.Panics(t, func() { telemetry.NewRecorder(reg) })
}
