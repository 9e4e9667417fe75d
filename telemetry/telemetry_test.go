// SPDX-License-Identifier: MIT

package telemetry_test

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dequad/precision"
	"github.com/katalvlaran/dequad/tanhsinh"
	"github.com/katalvlaran/dequad/telemetry"
)

// family finds a gathered metric family by name.
func family(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("metric %s not gathered", name)

	return nil
}

func labels(m *dto.Metric) map[string]string {
	out := map[string]string{}
	for _, lp := range m.GetLabel() {
		out[lp.GetName()] = lp.GetValue()
	}

	return out
}

func TestCollector_RecordsIntegration(t *testing.T) {
	reg := prometheus.NewRegistry()
	col, err := telemetry.NewCollector(reg)
	require.NoError(t, err)

	res, err := tanhsinh.Integrate(tanhsinh.Func(math.Exp), 0, 1, 1e-10, tanhsinh.WithHooks(col.Hooks()))
	require.NoError(t, err)

	integ := family(t, reg, "dequad_integrations_total")
	require.Len(t, integ.GetMetric(), 1)
	assert.Equal(t, map[string]string{"mode": "fixed", "status": "converged"}, labels(integ.GetMetric()[0]))
	assert.Equal(t, 1.0, integ.GetMetric()[0].GetCounter().GetValue())

	evals := family(t, reg, "dequad_evaluations_total")
	assert.Equal(t, float64(res.Evaluations), evals.GetMetric()[0].GetCounter().GetValue())

	folded := family(t, reg, "dequad_levels_folded_total")
	assert.Equal(t, map[string]string{"mode": "fixed", "half": "whole"}, labels(folded.GetMetric()[0]))
	assert.Equal(t, float64(res.Level+1), folded.GetMetric()[0].GetCounter().GetValue())

	final := family(t, reg, "dequad_final_level")
	assert.Equal(t, uint64(1), final.GetMetric()[0].GetHistogram().GetSampleCount())
	assert.Equal(t, float64(res.Level), final.GetMetric()[0].GetHistogram().GetSampleSum())
}

func TestCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := telemetry.NewCollector(reg)
	require.NoError(t, err)
	_, err = telemetry.NewCollector(reg)
	assert.Error(t, err)
}

func TestStatusLabel(t *testing.T) {
	cases := []struct {
		ev   tanhsinh.DoneEvent
		want string
	}{
		{tanhsinh.DoneEvent{Status: tanhsinh.Converged}, "converged"},
		{tanhsinh.DoneEvent{Status: tanhsinh.MaxLevelReached}, "max_level_reached"},
		{tanhsinh.DoneEvent{Status: tanhsinh.MaxLevelReached, Err: tanhsinh.ErrNonConvergence}, "max_level_reached"},
		{tanhsinh.DoneEvent{Err: errors.New("boom")}, "error"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, telemetry.StatusLabel(&tc.ev))
	}
}

func TestChain(t *testing.T) {
	var order []string
	a := tanhsinh.Hooks{OnDone: func(*tanhsinh.DoneEvent) { order = append(order, "a") }}
	b := tanhsinh.Hooks{
		OnLevel: func(*tanhsinh.LevelEvent) { order = append(order, "level") },
		OnDone:  func(*tanhsinh.DoneEvent) { order = append(order, "b") },
	}
	h := telemetry.Chain(a, b)
	h.OnLevel(&tanhsinh.LevelEvent{})
	h.OnDone(&tanhsinh.DoneEvent{})
	assert.Equal(t, []string{"level", "a", "b"}, order)
}

func TestWriteText(t *testing.T) {
	reg := prometheus.NewRegistry()
	col, err := telemetry.NewCollector(reg)
	require.NoError(t, err)
	col.ObserveDone(&tanhsinh.DoneEvent{Mode: precision.Arbitrary, Status: tanhsinh.Converged, Level: 4, Evaluations: 120})

	var buf bytes.Buffer
	require.NoError(t, telemetry.WriteText(&buf, reg))
	assert.Contains(t, buf.String(), `dequad_integrations_total{mode="arbitrary",status="converged"} 1`)
	assert.Contains(t, buf.String(), `dequad_evaluations_total{mode="arbitrary"} 120`)
}
